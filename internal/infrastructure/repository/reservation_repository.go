package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/OthmanASSAS/slotify/internal/domain"
)

type reservationRepository struct {
	db *sql.DB
}

// NewReservationRepository creates a new reservation repository backed by Postgres
func NewReservationRepository(db *sql.DB) domain.ReservationRepository {
	return &reservationRepository{db: db}
}

// reservationColumns joins the owning email and the slot definition so the
// caller always gets a reservation it can render and cancel.
const reservationColumns = `
	res.id,
	res.allowed_email_id,
	ae.email,
	res.time_slot_id,
	to_char(res.reservation_date, 'YYYY-MM-DD'),
	res.cancellation_code,
	res.created_at,
	res.cancelled_at,
	ts.id,
	ts.day_of_week,
	ts.start_time,
	ts.end_time,
	ts.max_capacity,
	ts.is_active,
	ts.created_at
`

func scanReservation(scanner interface {
	Scan(dest ...interface{}) error
}) (*domain.Reservation, error) {
	reservation := &domain.Reservation{}
	slot := &domain.TimeSlot{}

	err := scanner.Scan(
		&reservation.ID,
		&reservation.AllowedEmailID,
		&reservation.Email,
		&reservation.TimeSlotID,
		&reservation.Date,
		&reservation.CancellationCode,
		&reservation.CreatedAt,
		&reservation.CancelledAt,
		&slot.ID,
		&slot.DayOfWeek,
		&slot.StartTime,
		&slot.EndTime,
		&slot.MaxCapacity,
		&slot.IsActive,
		&slot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	reservation.TimeSlot = slot
	return reservation, nil
}

// Create inserts a reservation. The slot row is locked and the active count
// re-checked inside the same transaction as the insert, so two concurrent
// bookings for the last place cannot both commit.
func (r *reservationRepository) Create(reservation *domain.Reservation) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var maxCapacity int
	err = tx.QueryRow(`
		SELECT max_capacity
		FROM time_slot
		WHERE id = $1 AND is_active = true
		FOR UPDATE
	`, reservation.TimeSlotID).Scan(&maxCapacity)

	if err != nil {
		if err == sql.ErrNoRows {
			return domain.ErrSlotInactiveOrMissing
		}
		return fmt.Errorf("failed to lock time slot: %w", err)
	}

	var count int
	err = tx.QueryRow(`
		SELECT COUNT(*)
		FROM reservation
		WHERE time_slot_id = $1 AND reservation_date = $2 AND cancelled_at IS NULL
	`, reservation.TimeSlotID, reservation.Date).Scan(&count)

	if err != nil {
		return fmt.Errorf("failed to count active reservations: %w", err)
	}

	if count >= maxCapacity {
		return domain.ErrSlotFull
	}

	_, err = tx.Exec(`
		INSERT INTO reservation (id, allowed_email_id, time_slot_id, reservation_date, cancellation_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		reservation.ID,
		reservation.AllowedEmailID,
		reservation.TimeSlotID,
		reservation.Date,
		reservation.CancellationCode,
		reservation.CreatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrAlreadyReserved
		}
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetByID looks up a reservation by ID
func (r *reservationRepository) GetByID(id string) (*domain.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservation res
		INNER JOIN allowed_email ae ON ae.id = res.allowed_email_id
		INNER JOIN time_slot ts ON ts.id = res.time_slot_id
		WHERE res.id = $1
	`

	reservation, err := scanReservation(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}

	return reservation, nil
}

// GetByCancellationCode looks up a reservation by its cancellation code
func (r *reservationRepository) GetByCancellationCode(code string) (*domain.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservation res
		INNER JOIN allowed_email ae ON ae.id = res.allowed_email_id
		INNER JOIN time_slot ts ON ts.id = res.time_slot_id
		WHERE res.cancellation_code = $1
	`

	reservation, err := scanReservation(r.db.QueryRow(query, code))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get reservation by code: %w", err)
	}

	return reservation, nil
}

// HasActive reports whether an active reservation exists for the
// (allowed email, slot, date) triple
func (r *reservationRepository) HasActive(allowedEmailID, timeSlotID, date string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM reservation
			WHERE allowed_email_id = $1
			  AND time_slot_id = $2
			  AND reservation_date = $3
			  AND cancelled_at IS NULL
		)
	`

	var exists bool
	err := r.db.QueryRow(query, allowedEmailID, timeSlotID, date).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check active reservation: %w", err)
	}

	return exists, nil
}

// CountActive counts active reservations for one (slot, date) pair
func (r *reservationRepository) CountActive(timeSlotID, date string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM reservation
		WHERE time_slot_id = $1 AND reservation_date = $2 AND cancelled_at IS NULL
	`

	var count int
	err := r.db.QueryRow(query, timeSlotID, date).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active reservations: %w", err)
	}

	return count, nil
}

// CountActiveByDates counts active reservations grouped by slot and date,
// in a single query over the given dates
func (r *reservationRepository) CountActiveByDates(dates []string) ([]domain.SlotDateCount, error) {
	query := `
		SELECT time_slot_id, to_char(reservation_date, 'YYYY-MM-DD'), COUNT(*)
		FROM reservation
		WHERE reservation_date = ANY($1::date[]) AND cancelled_at IS NULL
		GROUP BY time_slot_id, reservation_date
	`

	rows, err := r.db.Query(query, pq.Array(dates))
	if err != nil {
		return nil, fmt.Errorf("failed to count reservations by date: %w", err)
	}
	defer rows.Close()

	var counts []domain.SlotDateCount
	for rows.Next() {
		var c domain.SlotDateCount
		if err := rows.Scan(&c.TimeSlotID, &c.Date, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan reservation count: %w", err)
		}
		counts = append(counts, c)
	}

	return counts, nil
}

// Cancel sets the cancellation timestamp of a still-active reservation
func (r *reservationRepository) Cancel(id string, at time.Time) error {
	query := `
		UPDATE reservation
		SET cancelled_at = $1
		WHERE id = $2 AND cancelled_at IS NULL
	`

	result, err := r.db.Exec(query, at, id)
	if err != nil {
		return fmt.Errorf("failed to cancel reservation: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}

	if rowsAffected == 0 {
		// Distinguish a missing row from one cancelled earlier.
		var cancelledAt *time.Time
		err := r.db.QueryRow(`SELECT cancelled_at FROM reservation WHERE id = $1`, id).Scan(&cancelledAt)
		if err != nil {
			if err == sql.ErrNoRows {
				return domain.ErrNotFound
			}
			return fmt.Errorf("failed to check reservation: %w", err)
		}
		return domain.ErrAlreadyCancelled
	}

	return nil
}

// ListActiveFromDate returns the active reservations owned by an email with
// date >= from, ascending by date then start time
func (r *reservationRepository) ListActiveFromDate(email, from string) ([]domain.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservation res
		INNER JOIN allowed_email ae ON ae.id = res.allowed_email_id
		INNER JOIN time_slot ts ON ts.id = res.time_slot_id
		WHERE ae.email = $1
		  AND res.cancelled_at IS NULL
		  AND res.reservation_date >= $2
		ORDER BY res.reservation_date, ts.start_time
	`

	return r.queryReservations(query, email, from)
}

// CountActiveByEmail counts the active reservations owned by an allow-list entry
func (r *reservationRepository) CountActiveByEmail(allowedEmailID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM reservation
		WHERE allowed_email_id = $1 AND cancelled_at IS NULL
	`

	var count int
	err := r.db.QueryRow(query, allowedEmailID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count reservations by email: %w", err)
	}

	return count, nil
}

// ListAll returns every reservation, newest date first
func (r *reservationRepository) ListAll() ([]domain.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservation res
		INNER JOIN allowed_email ae ON ae.id = res.allowed_email_id
		INNER JOIN time_slot ts ON ts.id = res.time_slot_id
		ORDER BY res.reservation_date DESC, ts.start_time
	`

	return r.queryReservations(query)
}

func (r *reservationRepository) queryReservations(query string, args ...interface{}) ([]domain.Reservation, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		reservations = append(reservations, *reservation)
	}

	return reservations, nil
}
