package dateutil

import (
	"errors"
	"testing"
	"time"
)

// Wednesday, 15 January 2025, 10:30 UTC.
var ref = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

func TestParseDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		got, err := ParseDate("2025-01-15")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2025, 1, 15, 0, 0, 0, 0, time.Local)
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("empty defaults to today", func(t *testing.T) {
		got, err := ParseDate("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		today := TruncateToDay(time.Now())
		if !got.Equal(today) {
			t.Errorf("got %v, want %v", got, today)
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := ParseDate("01-15-2025")
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("got error %v, want %v", err, ErrInvalidDateFormat)
		}
	})
}

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"", ref},
		{"now", ref},
		{"today", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"Tomorrow", time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC)},
		{"friday", time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC)},
		{"wednesday", time.Date(2025, 1, 22, 0, 0, 0, 0, time.UTC)},
		{"14:45", time.Date(2025, 1, 15, 14, 45, 0, 0, time.UTC)},
		{"2025-02-01", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		{"2025-02-01 09:15", time.Date(2025, 2, 1, 9, 15, 0, 0, time.UTC)},
		{"2025-02-01T09:15", time.Date(2025, 2, 1, 9, 15, 0, 0, time.UTC)},
		{"+90m", ref.Add(90 * time.Minute)},
		{"+2d", ref.Add(48 * time.Hour)},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseDateTime(tc.input, ref)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseDateTime_Errors(t *testing.T) {
	tests := []struct {
		input   string
		wantErr error
	}{
		{"yesterday-ish", ErrInvalidDateFormat},
		{"2025-13-01", ErrInvalidDateFormat},
		{"25:00", ErrInvalidDateFormat},
		{"15/01/2025", ErrInvalidDateFormat},
		{"+soon", ErrInvalidDuration},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			_, err := ParseDateTime(tc.input, ref)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("got error %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"90m", 90 * time.Minute},
		{"24h", 24 * time.Hour},
		{"3d", 72 * time.Hour},
		{"1w", 7 * 24 * time.Hour},
		{"1w2d", 9 * 24 * time.Hour},
		{"1d12h", 36 * time.Hour},
		{"0d", 0},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseDuration(tc.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}

	for _, bad := range []string{"", "d", "-1d", "-2h", "3x", "w1"} {
		if _, err := ParseDuration(bad); !errors.Is(err, ErrInvalidDuration) {
			t.Errorf("ParseDuration(%q) error = %v, want %v", bad, err, ErrInvalidDuration)
		}
	}
}

func TestNewRange(t *testing.T) {
	t.Run("explicit ends", func(t *testing.T) {
		r, err := NewRange("2025-01-15 08:00", "2025-01-20", ref)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !r.Start.Equal(time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)) {
			t.Errorf("got start %v", r.Start)
		}
		if !r.End.Equal(time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("got end %v", r.End)
		}
	})

	t.Run("empty end defaults to end of start day", func(t *testing.T) {
		r, err := NewRange("today", "", ref)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2025, 1, 15, 23, 59, 0, 0, time.UTC)
		if !r.End.Equal(want) {
			t.Errorf("got end %v, want %v", r.End, want)
		}
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := NewRange("2025-01-20", "2025-01-15", ref)
		if !errors.Is(err, ErrEndDateBeforeStart) {
			t.Errorf("got error %v, want %v", err, ErrEndDateBeforeStart)
		}
	})

	t.Run("invalid start", func(t *testing.T) {
		_, err := NewRange("not-a-date", "", ref)
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("got error %v, want %v", err, ErrInvalidDateFormat)
		}
	})
}

func TestWeekRange(t *testing.T) {
	tests := []struct {
		name       string
		input      time.Time
		wantMonday time.Time
		wantSunday time.Time
	}{
		{
			name:       "wednesday",
			input:      ref,
			wantMonday: time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC),
			wantSunday: time.Date(2025, 1, 19, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "monday",
			input:      time.Date(2025, 1, 13, 9, 0, 0, 0, time.UTC),
			wantMonday: time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC),
			wantSunday: time.Date(2025, 1, 19, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "sunday",
			input:      time.Date(2025, 1, 19, 23, 0, 0, 0, time.UTC),
			wantMonday: time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC),
			wantSunday: time.Date(2025, 1, 19, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			monday, sunday := WeekRange(tc.input)
			if !monday.Equal(tc.wantMonday) {
				t.Errorf("got monday %v, want %v", monday, tc.wantMonday)
			}
			if !sunday.Equal(tc.wantSunday) {
				t.Errorf("got sunday %v, want %v", sunday, tc.wantSunday)
			}
		})
	}
}

func TestTruncateToDay(t *testing.T) {
	got := TruncateToDay(ref)
	want := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got := EndOfDay(ref); !got.Equal(time.Date(2025, 1, 15, 23, 59, 0, 0, time.UTC)) {
		t.Errorf("EndOfDay = %v", got)
	}
}
