package repository

import (
	"database/sql"
	"fmt"

	"github.com/OthmanASSAS/slotify/internal/domain"
)

type timeSlotRepository struct {
	db *sql.DB
}

// NewTimeSlotRepository creates a new slot catalog repository backed by Postgres
func NewTimeSlotRepository(db *sql.DB) domain.TimeSlotRepository {
	return &timeSlotRepository{db: db}
}

// GetByID looks up a slot by ID
func (r *timeSlotRepository) GetByID(id string) (*domain.TimeSlot, error) {
	query := `
		SELECT id, day_of_week, start_time, end_time, max_capacity, is_active, created_at
		FROM time_slot
		WHERE id = $1
	`

	slot := &domain.TimeSlot{}
	err := r.db.QueryRow(query, id).Scan(
		&slot.ID,
		&slot.DayOfWeek,
		&slot.StartTime,
		&slot.EndTime,
		&slot.MaxCapacity,
		&slot.IsActive,
		&slot.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get time slot: %w", err)
	}

	return slot, nil
}

func (r *timeSlotRepository) list(activeOnly bool) ([]domain.TimeSlot, error) {
	query := `
		SELECT id, day_of_week, start_time, end_time, max_capacity, is_active, created_at
		FROM time_slot
	`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY day_of_week, start_time`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list time slots: %w", err)
	}
	defer rows.Close()

	var slots []domain.TimeSlot
	for rows.Next() {
		var slot domain.TimeSlot
		err := rows.Scan(
			&slot.ID,
			&slot.DayOfWeek,
			&slot.StartTime,
			&slot.EndTime,
			&slot.MaxCapacity,
			&slot.IsActive,
			&slot.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time slot: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

// GetActive returns active slots ordered by weekday then start time
func (r *timeSlotRepository) GetActive() ([]domain.TimeSlot, error) {
	return r.list(true)
}

// GetAll returns every slot ordered by weekday then start time
func (r *timeSlotRepository) GetAll() ([]domain.TimeSlot, error) {
	return r.list(false)
}

// WindowExists reports whether a slot already occupies the recurring window
func (r *timeSlotRepository) WindowExists(dayOfWeek int, startTime, endTime string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM time_slot
			WHERE day_of_week = $1 AND start_time = $2 AND end_time = $3
		)
	`

	var exists bool
	err := r.db.QueryRow(query, dayOfWeek, startTime, endTime).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check slot window: %w", err)
	}

	return exists, nil
}

// CreateMany inserts a batch of slots in one transaction
func (r *timeSlotRepository) CreateMany(slots []domain.TimeSlot) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO time_slot (id, day_of_week, start_time, end_time, max_capacity, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for i := range slots {
		_, err = tx.Exec(
			query,
			slots[i].ID,
			slots[i].DayOfWeek,
			slots[i].StartTime,
			slots[i].EndTime,
			slots[i].MaxCapacity,
			slots[i].IsActive,
			slots[i].CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create time slot: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// SetActive flips the active flag of a slot
func (r *timeSlotRepository) SetActive(id string, active bool) error {
	query := `
		UPDATE time_slot
		SET is_active = $1
		WHERE id = $2
	`

	result, err := r.db.Exec(query, active, id)
	if err != nil {
		return fmt.Errorf("failed to update time slot: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// Delete removes a slot unconditionally. Reservations pointing at it go
// with it through the cascade.
func (r *timeSlotRepository) Delete(id string) error {
	query := `
		DELETE FROM time_slot
		WHERE id = $1
	`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete time slot: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}
