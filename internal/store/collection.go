package store

import (
	"context"
	"strings"

	"taskdeck/internal/model"
)

const (
	deadlinesKey = "deadlines"
	routinesKey  = "routines"
)

// Collection is an ordered list persisted as one KV document. Order is kept as a
// dense 0-based rank matching the position in Items.
type Collection[T any, P orderedPtr[T]] struct {
	kv    KV
	key   string
	kind  string
	items []T
}

type Deadlines = Collection[model.Deadline, *model.Deadline]
type Routines = Collection[model.Routine, *model.Routine]

func NewDeadlines(kv KV) *Deadlines {
	return &Deadlines{kv: kv, key: deadlinesKey, kind: "deadline"}
}

func NewRoutines(kv KV) *Routines {
	return &Routines{kv: kv, key: routinesKey, kind: "routine"}
}

// LoadDeadlines opens the deadlines collection and reads it.
func LoadDeadlines(ctx context.Context, kv KV) (*Deadlines, error) {
	c := NewDeadlines(kv)
	return c, c.Load(ctx)
}

func LoadRoutines(ctx context.Context, kv KV) (*Routines, error) {
	c := NewRoutines(kv)
	return c, c.Load(ctx)
}

func (c *Collection[T, P]) Kind() string { return c.kind }

// Load reads the collection, sorts it by order and re-densifies the ranks.
// Items stored without an order keep their stored position.
func (c *Collection[T, P]) Load(ctx context.Context) error {
	items, _, err := getOrdered[T, P](ctx, c.kv, c.key)
	if err != nil {
		return err
	}
	SortByOrder[T, P](items)
	Densify[T, P](items)
	c.items = items
	return nil
}

func (c *Collection[T, P]) Save(ctx context.Context) error {
	items := c.items
	if items == nil {
		items = []T{}
	}
	return putJSON(ctx, c.kv, c.key, items)
}

// Items returns a copy of the items in list order.
func (c *Collection[T, P]) Items() []T {
	return append([]T(nil), c.items...)
}

func (c *Collection[T, P]) Len() int { return len(c.items) }

func (c *Collection[T, P]) IndexOf(id string) int {
	id = strings.TrimSpace(id)
	for i := range c.items {
		if P(&c.items[i]).GetID() == id {
			return i
		}
	}
	return -1
}

func (c *Collection[T, P]) Find(id string) (T, bool) {
	if i := c.IndexOf(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Add appends an item at the end of the list.
func (c *Collection[T, P]) Add(ctx context.Context, item T) error {
	P(&item).SetOrder(len(c.items))
	c.items = append(c.items, item)
	return c.Save(ctx)
}

func (c *Collection[T, P]) Remove(ctx context.Context, id string) error {
	i := c.IndexOf(id)
	if i < 0 {
		return NotFoundError{Kind: c.kind, ID: id}
	}
	c.items = append(c.items[:i:i], c.items[i+1:]...)
	Densify[T, P](c.items)
	return c.Save(ctx)
}

// Update applies fn to the item in place and persists the result.
func (c *Collection[T, P]) Update(ctx context.Context, id string, fn func(P) error) error {
	i := c.IndexOf(id)
	if i < 0 {
		return NotFoundError{Kind: c.kind, ID: id}
	}
	next := c.items[i]
	if err := fn(P(&next)); err != nil {
		return err
	}
	P(&next).SetOrder(i)
	c.items[i] = next
	return c.Save(ctx)
}

// Reorder moves the item at from to position to (counted after removing it) and
// reassigns every order to its new position. from == to is a no-op.
func (c *Collection[T, P]) Reorder(ctx context.Context, from, to int) error {
	n := len(c.items)
	if from < 0 || from >= n {
		return IndexError{Index: from, Len: n}
	}
	if to < 0 || to >= n {
		return IndexError{Index: to, Len: n}
	}
	if from == to {
		return nil
	}
	c.items = Move(c.items, from, to)
	Densify[T, P](c.items)
	return c.Save(ctx)
}

// MoveID reorders by item ID.
func (c *Collection[T, P]) MoveID(ctx context.Context, id string, to int) error {
	from := c.IndexOf(id)
	if from < 0 {
		return NotFoundError{Kind: c.kind, ID: id}
	}
	return c.Reorder(ctx, from, to)
}
