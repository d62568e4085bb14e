package store

import (
	"context"
	"encoding/json"
	"sort"
)

// Ordered is an item with a stable ID and an explicit list position.
type Ordered interface {
	GetID() string
	GetOrder() int
}

// orderedPtr lets generic code set the position through a pointer to T.
type orderedPtr[T any] interface {
	*T
	Ordered
	SetOrder(order int)
}

// SortByOrder sorts by Order. Equal orders keep their current relative position.
func SortByOrder[T any, P orderedPtr[T]](items []T) {
	sort.SliceStable(items, func(i, j int) bool {
		return P(&items[i]).GetOrder() < P(&items[j]).GetOrder()
	})
}

// decodeOrdered decodes a stored list. Items stored without an order field take
// their stored position. missing counts them.
func decodeOrdered[T any, P orderedPtr[T]](b []byte) (items []T, missing int, err error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, 0, err
	}
	items = make([]T, len(raw))
	for i, r := range raw {
		if err := json.Unmarshal(r, &items[i]); err != nil {
			return nil, 0, err
		}
		var pos struct {
			Order *int `json:"order"`
		}
		if err := json.Unmarshal(r, &pos); err != nil {
			return nil, 0, err
		}
		if pos.Order == nil {
			P(&items[i]).SetOrder(i)
			missing++
		}
	}
	return items, missing, nil
}

// getOrdered reads and decodes the list stored under key. A missing key is an empty list.
func getOrdered[T any, P orderedPtr[T]](ctx context.Context, kv KV, key string) ([]T, int, error) {
	b, ok, err := kv.Get(ctx, key)
	if err != nil || !ok {
		return nil, 0, err
	}
	items, missing, err := decodeOrdered[T, P](b)
	if err != nil {
		return nil, 0, &CorruptError{Key: key, Err: err}
	}
	return items, missing, nil
}

// Densify assigns Order = position for every item. It reports whether anything changed.
func Densify[T any, P orderedPtr[T]](items []T) bool {
	changed := false
	for i := range items {
		p := P(&items[i])
		if p.GetOrder() != i {
			p.SetOrder(i)
			changed = true
		}
	}
	return changed
}

// Move removes the element at from and reinserts it at to, where to indexes the
// list after removal. It returns a new slice.
func Move[T any](items []T, from, to int) []T {
	moved := items[from]
	rest := make([]T, 0, len(items))
	rest = append(rest, items[:from]...)
	rest = append(rest, items[from+1:]...)
	out := make([]T, 0, len(items))
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)
	return out
}
