package store

import (
	"context"
	"errors"
)

const tuiStateKey = "tui_state"

// TUIState stores small, user-facing UI state for restoring the last screen on relaunch.
//
// It lives in the store's KV so state is naturally scoped per data directory.
// It is "best effort": callers should tolerate missing/invalid data.
type TUIState struct {
	Version int `json:"version"`

	// Tab is one of: deadlines|routines
	Tab string `json:"tab,omitempty"`

	// Selected maps tab -> selected item ID.
	Selected map[string]string `json:"selected,omitempty"`

	// Strategy is the last drag feedback strategy toggled in the TUI (indicator|displace).
	Strategy string `json:"strategy,omitempty"`
}

func LoadTUIState(ctx context.Context, kv KV) (*TUIState, error) {
	var st TUIState
	ok, err := getJSON(ctx, kv, tuiStateKey, &st)
	if err != nil {
		var ce *CorruptError
		if errors.As(err, &ce) {
			// Best-effort; if corrupted, treat as missing.
			return &TUIState{Version: 1}, nil
		}
		return nil, err
	}
	if !ok {
		return &TUIState{Version: 1}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st, nil
}

func SaveTUIState(ctx context.Context, kv KV, st *TUIState) error {
	if st == nil {
		return nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return putJSON(ctx, kv, tuiStateKey, st)
}
