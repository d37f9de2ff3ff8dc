package core

import (
	"encoding/json"
	"log/slog"

	"gwi.com/room-redesign/internal/store"
)

// Write failures are logged and dropped: in-memory state stays authoritative
// for the rest of the session.

func persistString(kv store.KV, key, value string) {
	if err := kv.Set(key, value); err != nil {
		slog.Error("Failed to persist client state", "key", key, "error", err)
	}
}

func persistJSON(kv store.KV, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		slog.Error("Failed to encode client state", "key", key, "error", err)
		return
	}
	persistString(kv, key, string(b))
}

// loadJSON decodes key into v. Missing or unreadable records leave v untouched.
func loadJSON(kv store.KV, key string, v any) bool {
	raw, ok, err := kv.Get(key)
	if err != nil {
		slog.Error("Failed to read client state", "key", key, "error", err)
		return false
	}
	if !ok || raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		slog.Warn("Discarding unreadable client state", "key", key, "error", err)
		return false
	}
	return true
}
