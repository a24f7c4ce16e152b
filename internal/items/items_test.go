package items

import (
	"testing"

	"hellgrid/internal/config"
)

func TestCollectIsIdempotent(t *testing.T) {
	p := NewPickup(2.5, 3.5, Ammo)
	if !p.Collect() {
		t.Fatal("first collect should succeed")
	}
	if p.Collect() {
		t.Error("second collect should report nothing collected")
	}
	if p.Active {
		t.Error("collected pickup still active")
	}
}

func TestUpdateOnlyAnimatesActive(t *testing.T) {
	p := NewPickup(0, 0, Health)
	p.Update(0.5)
	if p.Phase != 0.5 {
		t.Errorf("phase = %v, want 0.5", p.Phase)
	}
	p.Collect()
	p.Update(0.5)
	if p.Phase != 0.5 {
		t.Error("inactive pickup kept animating")
	}
}

func TestKindAmount(t *testing.T) {
	cfg := config.Default().Pickups
	tests := []struct {
		kind Kind
		want int
	}{
		{Health, cfg.Health},
		{Armor, cfg.Armor},
		{Ammo, cfg.Ammo},
		{Treasure, cfg.Treasure},
		{Key, 0},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.Amount(cfg); got != tt.want {
				t.Errorf("Amount = %d, want %d", got, tt.want)
			}
		})
	}
}
