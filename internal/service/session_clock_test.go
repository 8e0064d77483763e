package service

import (
	"testing"
	"time"

	"github.com/SinesysTech/aluminify-sub018/internal/model"
	"github.com/SinesysTech/aluminify-sub018/internal/util"
)

var clockBase = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func pause(startMin, endMin int, kind model.PauseKind) model.PauseInterval {
	return model.PauseInterval{
		Start: clockBase.Add(time.Duration(startMin) * time.Minute),
		End:   clockBase.Add(time.Duration(endMin) * time.Minute),
		Kind:  kind,
	}
}

func TestComputeDurations(t *testing.T) {
	tests := []struct {
		name      string
		end       time.Time
		pauses    model.PauseLog
		wantGross int
		wantNet   int
		wantErr   bool
	}{
		{
			name:      "no pauses",
			end:       clockBase.Add(time.Hour),
			pauses:    model.PauseLog{},
			wantGross: 3600,
			wantNet:   3600,
		},
		{
			name:      "one hour with five minute pause",
			end:       clockBase.Add(time.Hour),
			pauses:    model.PauseLog{pause(20, 25, model.PauseManual)},
			wantGross: 3600,
			wantNet:   3300,
		},
		{
			name: "multiple pauses",
			end:  clockBase.Add(time.Hour),
			pauses: model.PauseLog{
				pause(10, 15, model.PauseManual),
				pause(30, 40, model.PauseDistraction),
			},
			wantGross: 3600,
			wantNet:   2700,
		},
		{
			name:      "zero length session",
			end:       clockBase,
			pauses:    model.PauseLog{},
			wantGross: 0,
			wantNet:   0,
		},
		{
			name:    "end before start",
			end:     clockBase.Add(-time.Minute),
			pauses:  model.PauseLog{},
			wantErr: true,
		},
		{
			name:    "pause before session start",
			end:     clockBase.Add(time.Hour),
			pauses:  model.PauseLog{pause(-5, 5, model.PauseManual)},
			wantErr: true,
		},
		{
			name:    "pause past session end",
			end:     clockBase.Add(time.Hour),
			pauses:  model.PauseLog{pause(55, 65, model.PauseManual)},
			wantErr: true,
		},
		{
			name:    "pause ends before it starts",
			end:     clockBase.Add(time.Hour),
			pauses:  model.PauseLog{pause(20, 10, model.PauseManual)},
			wantErr: true,
		},
		{
			name: "overlapping pauses",
			end:  clockBase.Add(time.Hour),
			pauses: model.PauseLog{
				pause(10, 20, model.PauseManual),
				pause(15, 25, model.PauseDistraction),
			},
			wantErr: true,
		},
		{
			name:    "invalid pause kind",
			end:     clockBase.Add(time.Hour),
			pauses:  model.PauseLog{pause(10, 15, model.PauseKind("coffee"))},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeDurations(clockBase, tt.end, tt.pauses)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				if !util.IsValidation(err) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.GrossSeconds != tt.wantGross {
				t.Errorf("gross = %d, want %d", got.GrossSeconds, tt.wantGross)
			}
			if got.NetSeconds != tt.wantNet {
				t.Errorf("net = %d, want %d", got.NetSeconds, tt.wantNet)
			}
		})
	}
}

func TestComputeDurationsNetFloorsAtZero(t *testing.T) {
	// Adjacent pauses covering the whole session leave zero net time.
	end := clockBase.Add(30 * time.Minute)
	pauses := model.PauseLog{
		pause(0, 15, model.PauseManual),
		pause(15, 30, model.PauseDistraction),
	}

	got, err := ComputeDurations(clockBase, end, pauses)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.GrossSeconds != 1800 {
		t.Errorf("gross = %d, want 1800", got.GrossSeconds)
	}
	if got.NetSeconds != 0 {
		t.Errorf("net = %d, want 0", got.NetSeconds)
	}
}

func TestValidatePauseLogAcceptsUnsortedInput(t *testing.T) {
	end := clockBase.Add(time.Hour)
	pauses := model.PauseLog{
		pause(30, 35, model.PauseManual),
		pause(10, 15, model.PauseManual),
	}
	if err := ValidatePauseLog(clockBase, end, pauses); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
