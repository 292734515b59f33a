package cmd

import (
	"testing"
	"time"
)

func TestOverrideRange(t *testing.T) {
	defFrom := time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)
	defTo := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		from, to string
		wantFrom time.Time
		wantTo   time.Time
		wantErr  bool
	}{
		{"defaults kept", "", "", defFrom, defTo, false},
		{"from overridden", "2026-08-01", "", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), defTo, false},
		{"both overridden", "2026-08-01", "2026-08-15", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), false},
		{"bad from", "01.08.2026", "", time.Time{}, time.Time{}, true},
		{"bad to", "", "yesterday", time.Time{}, time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotFrom, gotTo, err := overrideRange(defFrom, defTo, tt.from, tt.to)
			if (err != nil) != tt.wantErr {
				t.Fatalf("overrideRange() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if !gotFrom.Equal(tt.wantFrom) || !gotTo.Equal(tt.wantTo) {
				t.Errorf("overrideRange() = (%v, %v), want (%v, %v)", gotFrom, gotTo, tt.wantFrom, tt.wantTo)
			}
		})
	}
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
		{3 * 1024 * 1024 * 1024, "3.0 GiB"},
	}

	for _, tt := range tests {
		if got := humanSize(tt.n); got != tt.want {
			t.Errorf("humanSize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
