package collision

import (
	"fmt"

	"github.com/arloliu/packbuf/errs"
)

// Tracker tracks attribute names and detects ID collisions while a schema is built.
// It maps each ID to the first name that produced it.
type Tracker struct {
	ids          map[uint64]string // ID → first name
	seen         map[string]struct{}
	hasCollision bool
	collisions   [][2]string
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		ids:  make(map[uint64]string),
		seen: make(map[string]struct{}),
	}
}

// Track records name with its id.
//
// It returns errs.ErrInvalidSchema when name is empty or was already tracked. Two
// different names sharing an id are not an error here; the collision is recorded and
// reported by HasCollision and Collisions.
func (t *Tracker) Track(name string, id uint64) error {
	if name == "" {
		return fmt.Errorf("%w: empty attribute name", errs.ErrInvalidSchema)
	}

	if _, dup := t.seen[name]; dup {
		return fmt.Errorf("%w: duplicate attribute %q", errs.ErrInvalidSchema, name)
	}

	if existing, exists := t.ids[id]; exists {
		t.hasCollision = true
		t.collisions = append(t.collisions, [2]string{existing, name})
	} else {
		t.ids[id] = name
	}

	t.seen[name] = struct{}{}

	return nil
}

// HasCollision returns true if two tracked names share an id.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Collisions returns every colliding pair as (first tracked name, later name).
func (t *Tracker) Collisions() [][2]string {
	return t.collisions
}
