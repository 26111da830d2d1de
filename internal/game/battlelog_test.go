package game

import (
	"testing"

	"github.com/armanossiloko/tower-defense-netlogo/internal/sim"
)

func TestBattleLogRingBuffer(t *testing.T) {
	bl := NewBattleLog()

	bl.Add(1, "D1", "defender", "first")
	bl.Add(2, "A1", "attacker", "second")

	entries := bl.Recent()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Message != "first" || entries[1].Message != "second" {
		t.Errorf("entries out of order: %+v", entries)
	}
}

func TestBattleLogWrapsAtCapacity(t *testing.T) {
	bl := NewBattleLog()

	for i := 0; i < logMaxEntries+10; i++ {
		bl.Add(i, "A1", "attacker", "msg")
	}

	if bl.Len() != logMaxEntries {
		t.Fatalf("expected %d entries after wrap, got %d", logMaxEntries, bl.Len())
	}
	entries := bl.Recent()
	// Oldest surviving entry is the 11th added (index 10).
	if entries[0].Tick != 10 {
		t.Errorf("expected oldest tick 10 after wrap, got %d", entries[0].Tick)
	}
	if entries[len(entries)-1].Tick != logMaxEntries+9 {
		t.Errorf("expected newest tick %d, got %d", logMaxEntries+9, entries[len(entries)-1].Tick)
	}
}

func TestLogWorthyFiltersNoise(t *testing.T) {
	cases := []struct {
		category string
		key      string
		want     bool
	}{
		{"spawn", "attacker", true},
		{"spawn", "cap_reached", true},
		{"combat", "defender_down", true},
		{"combat", "attacker_down", true},
		{"combat", "fire", false},
		{"combat", "melee_hit", false},
		{"projectile", "hit", false},
		{"outcome", "terminal", true},
		{"setup", "ready", false},
	}
	for _, c := range cases {
		e := sim.SimLogEntry{Category: c.category, Key: c.key}
		if got := logWorthy(e); got != c.want {
			t.Errorf("logWorthy(%s/%s) = %v, want %v", c.category, c.key, got, c.want)
		}
	}
}
