package tracker

import (
	"testing"

	"go.uber.org/zap"

	"github.com/hearthy-oss/hearthproxy/messages"
	"github.com/hearthy-oss/hearthproxy/schema"
)

func mustType(t *testing.T, name string) *schema.MessageType {
	t.Helper()
	typ, ok := messages.Registry.Lookup(name)
	if !ok {
		t.Fatalf("message type %q not registered", name)
	}
	return typ
}

func buildTag(t *testing.T, name, value int64) *schema.MessageValue {
	tag := schema.NewValue(mustType(t, "Tag"))
	tag.Set("Name", name)
	tag.Set("Value", value)
	return tag
}

func TestProcessorCreateGameAddsGameAndPlayers(t *testing.T) {
	p := NewProcessor(zap.NewNop())

	gameEntity := schema.NewValue(mustType(t, "Entity"))
	gameEntity.Set("Id", int64(1))
	gameEntity.SetRepeated("Tags", []any{buildTag(t, TagZone, 1)})

	playerEntity := schema.NewValue(mustType(t, "Entity"))
	playerEntity.Set("Id", int64(2))
	playerEntity.SetRepeated("Tags", []any{buildTag(t, TagController, 1)})

	player := schema.NewValue(mustType(t, "Player"))
	player.Set("Id", int64(1))
	player.Set("Entity", playerEntity)

	start := schema.NewValue(mustType(t, "StartGameState"))
	start.Set("GameEntity", gameEntity)
	start.SetRepeated("Players", []any{player})

	if err := p.Process(start); err != nil {
		t.Fatalf("Process: %v", err)
	}

	if p.World.Len() != 2 {
		t.Fatalf("World.Len() = %d, want 2", p.World.Len())
	}
	game, ok := p.World.Get(1)
	if !ok || game.Label != "TheGame" {
		t.Fatalf("expected game entity labeled TheGame, got %+v ok=%v", game, ok)
	}
	if z := game.Zone(); z != 1 {
		t.Errorf("game zone = %d, want 1", z)
	}
	pe, ok := p.World.Get(2)
	if !ok || pe.Label != "Player1" {
		t.Fatalf("expected player entity labeled Player1, got %+v ok=%v", pe, ok)
	}
}

func TestProcessorPowerHistoryFullEntityAndTagChange(t *testing.T) {
	p := NewProcessor(zap.NewNop())

	full := schema.NewValue(mustType(t, "PowerHistoryEntity"))
	full.Set("Entity", int64(42))
	full.Set("Name", "CS2_042")
	full.SetRepeated("Tags", []any{buildTag(t, TagZone, 1)})

	data := schema.NewValue(mustType(t, "PowerHistoryData"))
	data.Set("FullEntity", full)

	hist := schema.NewValue(mustType(t, "PowerHistory"))
	hist.SetRepeated("List", []any{data})

	if err := p.Process(hist); err != nil {
		t.Fatalf("Process (full entity): %v", err)
	}
	e, ok := p.World.Get(42)
	if !ok || e.Card != "CS2_042" {
		t.Fatalf("expected entity 42 with card CS2_042, got %+v ok=%v", e, ok)
	}

	change := schema.NewValue(mustType(t, "PowerHistoryTagChange"))
	change.Set("Entity", int64(42))
	change.Set("Tag", int64(TagZone))
	change.Set("Value", int64(3))

	data2 := schema.NewValue(mustType(t, "PowerHistoryData"))
	data2.Set("TagChange", change)

	hist2 := schema.NewValue(mustType(t, "PowerHistory"))
	hist2.SetRepeated("List", []any{data2})

	if err := p.Process(hist2); err != nil {
		t.Fatalf("Process (tag change): %v", err)
	}
	e, _ = p.World.Get(42)
	if e.Zone() != 3 {
		t.Errorf("zone after tag change = %d, want 3", e.Zone())
	}
}

func TestProcessorIgnoresUnknownPacketType(t *testing.T) {
	p := NewProcessor(zap.NewNop())
	ping := schema.NewValue(mustType(t, "Ping"))
	if err := p.Process(ping); err != nil {
		t.Fatalf("Process(Ping) should be a no-op, got error: %v", err)
	}
	if p.World.Len() != 0 {
		t.Errorf("expected no entities after an ignored packet, got %d", p.World.Len())
	}
}
