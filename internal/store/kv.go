package store

import (
	"context"
	"encoding/json"
	"regexp"
)

// KV is the persistence collaborator: a flat namespace of JSON documents.
type KV interface {
	// Get returns ok=false when the key does not exist.
	Get(ctx context.Context, key string) (val []byte, ok bool, err error)
	Put(ctx context.Context, key string, val []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

var keyRe = regexp.MustCompile(`^[a-z0-9][a-z0-9_.-]*$`)

func validKey(key string) bool { return keyRe.MatchString(key) }

func getJSON(ctx context.Context, kv KV, key string, v any) (bool, error) {
	b, ok, err := kv.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, &CorruptError{Key: key, Err: err}
	}
	return true, nil
}

func putJSON(ctx context.Context, kv KV, key string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return kv.Put(ctx, key, b)
}
