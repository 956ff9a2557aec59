package tracker

import "fmt"

// World is the container for every entity seen so far in one game.
// Grounded on hearthy/tracker/world.py:World.
type World struct {
	entities map[int64]*Entity
}

// NewWorld creates an empty World.
func NewWorld() *World {
	return &World{entities: make(map[int64]*Entity)}
}

// Get looks up an entity by id.
func (w *World) Get(id int64) (*Entity, bool) {
	e, ok := w.entities[id]
	return e, ok
}

// GetOrCreate returns the entity with the given id, creating an empty
// one if it doesn't exist yet. Used for ShowEntity/TagChange events
// that can reference an entity this tracker has not seen a FullEntity
// or CreateGame event for yet (a spectator join mid-game, or a tag
// change the tracker started listening after).
func (w *World) GetOrCreate(id int64) *Entity {
	e, ok := w.entities[id]
	if !ok {
		e = newEntity(id)
		w.entities[id] = e
	}
	return e
}

// Add inserts a freshly created entity, failing if one with the same
// id already exists.
func (w *World) Add(e *Entity) error {
	if _, exists := w.entities[e.ID]; exists {
		return fmt.Errorf("tracker: entity %d already exists", e.ID)
	}
	w.entities[e.ID] = e
	return nil
}

// Len reports how many entities the world currently holds.
func (w *World) Len() int { return len(w.entities) }

// All returns every entity currently tracked, in no particular order.
func (w *World) All() []*Entity {
	out := make([]*Entity, 0, len(w.entities))
	for _, e := range w.entities {
		out = append(out, e)
	}
	return out
}
