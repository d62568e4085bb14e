package store

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

const (
	DeadlineIDPrefix = "dl"
	RoutineIDPrefix  = "rt"
)

// newRandomID returns prefix-<suffix> where suffix is 8 chars of base32 (lowercase, no padding).
func newRandomID(prefix string) (string, error) {
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return prefix + "-" + suffix, nil
}

func NewDeadlineID() (string, error) { return newRandomID(DeadlineIDPrefix) }

func NewRoutineID() (string, error) { return newRandomID(RoutineIDPrefix) }

// IDKind reports which collection an ID belongs to ("deadline", "routine" or "").
func IDKind(id string) string {
	id = strings.TrimSpace(id)
	switch {
	case strings.HasPrefix(id, DeadlineIDPrefix+"-") && len(id) > len(DeadlineIDPrefix)+1:
		return "deadline"
	case strings.HasPrefix(id, RoutineIDPrefix+"-") && len(id) > len(RoutineIDPrefix)+1:
		return "routine"
	default:
		return ""
	}
}
