package gamedata

import (
	"math/rand"
	"testing"
)

func TestLoadActors(t *testing.T) {
	file, err := LoadActors()
	if err != nil {
		t.Fatalf("Failed to load actors: %v", err)
	}

	if file.Player.ID != "player" {
		t.Errorf("Player.ID = %q, want %q", file.Player.ID, "player")
	}
	if file.Player.HP <= 0 {
		t.Errorf("Player.HP = %d, want > 0", file.Player.HP)
	}

	expectedIDs := map[string]bool{"orc": false, "troll": false}
	for _, m := range file.Monsters {
		if _, ok := expectedIDs[m.ID]; ok {
			expectedIDs[m.ID] = true
		}
	}
	for id, found := range expectedIDs {
		if !found {
			t.Errorf("Expected monster %q not found", id)
		}
	}
}

func TestMonsterRegistry(t *testing.T) {
	registry, err := LoadMonsterRegistry()
	if err != nil {
		t.Fatalf("Failed to load registry: %v", err)
	}

	if registry.Count() != 2 {
		t.Errorf("Expected 2 monster types, got %d", registry.Count())
	}

	orc := registry.GetByID("orc")
	if orc == nil {
		t.Fatal("Orc not found by ID")
	}
	if orc.Name != "orc" {
		t.Errorf("Expected name 'orc', got %q", orc.Name)
	}
	if registry.GetByID("dragon") != nil {
		t.Error("GetByID(dragon) should return nil")
	}

	// Weighted spawning is deterministic with the same seed
	rng1 := rand.New(rand.NewSource(12345))
	rng2 := rand.New(rand.NewSource(12345))
	for i := 0; i < 10; i++ {
		a, b := registry.SpawnRandom(rng1).ID, registry.SpawnRandom(rng2).ID
		if a != b {
			t.Errorf("Spawn %d mismatch: %s != %s", i, a, b)
		}
	}
}

func TestSpawnRandomEmpty(t *testing.T) {
	registry := NewMonsterRegistry(ActorDef{ID: "player"}, nil)
	if got := registry.SpawnRandom(rand.New(rand.NewSource(1))); got != nil {
		t.Errorf("SpawnRandom() on empty registry = %v, want nil", got)
	}
}

func TestActorDefMethods(t *testing.T) {
	def := ActorDef{
		ID:    "test",
		Name:  "test monster",
		Glyph: "T",
		Color: "#FF0000",
		HP:    10,
	}

	if def.GlyphRune() != 'T' {
		t.Errorf("Expected glyph 'T', got %c", def.GlyphRune())
	}
	if (&ActorDef{}).GlyphRune() != '?' {
		t.Error("Empty glyph should render as '?'")
	}

	if color := def.TCellColor(); color == 0 {
		t.Error("TCellColor returned zero color")
	}
}
