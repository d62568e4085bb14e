package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

const BackupVersion = 1

// Backup is a portable snapshot of every key in a store. It is also how data
// moves between the sqlite and json backends.
type Backup struct {
	Version    int                        `json:"version"`
	ExportedAt time.Time                  `json:"exportedAt"`
	Entries    map[string]json.RawMessage `json:"entries"`
}

func (b *Backup) Keys() []string {
	keys := make([]string, 0, len(b.Entries))
	for k := range b.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func ExportBackup(ctx context.Context, kv KV, now time.Time) (*Backup, error) {
	keys, err := kv.Keys(ctx)
	if err != nil {
		return nil, err
	}
	b := &Backup{Version: BackupVersion, ExportedAt: now.UTC(), Entries: map[string]json.RawMessage{}}
	for _, k := range keys {
		v, ok, err := kv.Get(ctx, k)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if !json.Valid(v) {
			return nil, &CorruptError{Key: k, Err: fmt.Errorf("not valid JSON")}
		}
		b.Entries[k] = json.RawMessage(v)
	}
	return b, nil
}

// ImportBackup writes every entry of b into kv. With replace, keys missing from
// the backup are deleted first.
func ImportBackup(ctx context.Context, kv KV, b *Backup, replace bool) error {
	if b == nil {
		return fmt.Errorf("empty backup")
	}
	if b.Version != BackupVersion {
		return fmt.Errorf("unsupported backup version %d (expected %d)", b.Version, BackupVersion)
	}
	for _, k := range b.Keys() {
		if !validKey(k) {
			return fmt.Errorf("invalid key in backup: %q", k)
		}
		if !json.Valid(b.Entries[k]) {
			return &CorruptError{Key: k, Err: fmt.Errorf("not valid JSON")}
		}
	}

	if replace {
		existing, err := kv.Keys(ctx)
		if err != nil {
			return err
		}
		for _, k := range existing {
			if _, ok := b.Entries[k]; ok {
				continue
			}
			if err := kv.Delete(ctx, k); err != nil {
				return err
			}
		}
	}
	for _, k := range b.Keys() {
		if err := kv.Put(ctx, k, b.Entries[k]); err != nil {
			return fmt.Errorf("import %s: %w", k, err)
		}
	}
	return nil
}
