package application

import (
	"reflect"
	"testing"
)

func TestSplitSlotRange(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		want    []slotSegment
		wantErr bool
	}{
		{
			name:  "single hour",
			start: "09:00",
			end:   "10:00",
			want:  []slotSegment{{"09:00", "10:00"}},
		},
		{
			name:  "three aligned hours",
			start: "14:00",
			end:   "17:00",
			want:  []slotSegment{{"14:00", "15:00"}, {"15:00", "16:00"}, {"16:00", "17:00"}},
		},
		{
			name:  "half hour lead-in",
			start: "08:30",
			end:   "10:00",
			want:  []slotSegment{{"08:30", "09:00"}, {"09:00", "10:00"}},
		},
		{
			name:  "half hour tail",
			start: "09:00",
			end:   "10:30",
			want:  []slotSegment{{"09:00", "10:00"}, {"10:00", "10:30"}},
		},
		{
			name:  "half hour both ends",
			start: "08:30",
			end:   "09:30",
			want:  []slotSegment{{"08:30", "09:00"}, {"09:00", "09:30"}},
		},
		{
			name:  "single half hour",
			start: "12:30",
			end:   "13:00",
			want:  []slotSegment{{"12:30", "13:00"}},
		},
		{
			name:    "end before start",
			start:   "10:00",
			end:     "09:00",
			wantErr: true,
		},
		{
			name:    "zero length",
			start:   "10:00",
			end:     "10:00",
			wantErr: true,
		},
		{
			name:    "quarter hour boundary",
			start:   "09:15",
			end:     "10:00",
			wantErr: true,
		},
		{
			name:    "malformed time",
			start:   "morning",
			end:     "10:00",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := splitSlotRange(tt.start, tt.end)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("splitSlotRange: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitSlotRange(%s, %s) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestFormatMinutes(t *testing.T) {
	if got := formatMinutes(510); got != "08:30" {
		t.Errorf("formatMinutes(510) = %q, want 08:30", got)
	}
	if got := formatMinutes(0); got != "00:00" {
		t.Errorf("formatMinutes(0) = %q, want 00:00", got)
	}
}
