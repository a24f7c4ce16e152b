package monster

import (
	"testing"

	"hellgrid/internal/config"
)

// scriptedRand replays fixed values, then returns zeros.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v >= n {
		v = n - 1
	}
	return v
}

func testConfig() *config.Config {
	return config.Default()
}

func TestTakeDamage_GruntDiesOnThirdShot(t *testing.T) {
	m := NewMonster3D(1.5, 1.5, Grunt, testConfig(), &scriptedRand{})

	for i, shot := range []int{26, 30} {
		if _, killed := m.TakeDamage(shot); killed {
			t.Fatalf("shot %d killed a grunt with %d hp left", i+1, m.HitPoints)
		}
	}
	if m.HitPoints != 14 {
		t.Fatalf("hp = %d, want 14", m.HitPoints)
	}
	dealt, killed := m.TakeDamage(26)
	if !killed || m.IsAlive() {
		t.Fatal("third shot should kill")
	}
	if dealt != 26 || m.HitPoints != 0 {
		t.Errorf("dealt=%d hp=%d, want 26 and 0", dealt, m.HitPoints)
	}
	if m.State != StateAlerted {
		t.Error("being shot should alert the monster")
	}

	// Death is permanent.
	if dealt, killed := m.TakeDamage(50); dealt != 0 || killed {
		t.Errorf("hit on dead monster returned (%d,%v)", dealt, killed)
	}
	if m.IsAlive() {
		t.Error("monster revived")
	}
}

func TestTakeDamage_BruteReduction(t *testing.T) {
	cfg := testConfig()
	m := NewMonster3D(1.5, 1.5, Brute, cfg, &scriptedRand{})

	dealt, _ := m.TakeDamage(40)
	if dealt != 29 { // round(40 * 0.72)
		t.Errorf("dealt = %d, want 29", dealt)
	}
	if m.HitPoints != cfg.Enemies.Brute.HitPoints-29 {
		t.Errorf("hp = %d", m.HitPoints)
	}
	if m.HitFlash != cfg.Combat.EnemyHitFlash {
		t.Errorf("hit flash = %v", m.HitFlash)
	}
}

func TestGetAttackDamageJitter(t *testing.T) {
	cfg := testConfig()
	m := NewMonster3D(1.5, 1.5, Fiend, cfg, &scriptedRand{})
	j := cfg.AI.DamageJitter
	base := cfg.Enemies.Fiend.Damage

	if got := m.GetAttackDamage(&scriptedRand{ints: []int{0}}); got != base-j {
		t.Errorf("low roll = %d, want %d", got, base-j)
	}
	if got := m.GetAttackDamage(&scriptedRand{ints: []int{2 * j}}); got != base+j {
		t.Errorf("high roll = %d, want %d", got, base+j)
	}
}

func TestKindStats(t *testing.T) {
	cfg := testConfig()
	for _, k := range Kinds {
		if k.Stats(cfg).Name != k.String() {
			t.Errorf("%v: stats name %q", k, k.Stats(cfg).Name)
		}
	}
}
