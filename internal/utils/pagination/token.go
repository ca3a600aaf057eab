package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const tokenSep = "|"

// EncodeToken packs a (entry_date, created_at) cursor into an opaque
// page token.
func EncodeToken(entryDate, createdAt time.Time) string {
	raw := entryDate.UTC().Format(time.RFC3339Nano) + tokenSep + createdAt.UTC().Format(time.RFC3339Nano)
	return base64.URLEncoding.EncodeToString([]byte(raw))
}

// DecodeToken unpacks a page token produced by EncodeToken.
func DecodeToken(token string) (entryDate, createdAt time.Time, err error) {
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid page token: %w", err)
	}
	parts := strings.SplitN(string(raw), tokenSep, 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid page token format")
	}
	entryDate, err = time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid page token date: %w", err)
	}
	createdAt, err = time.Parse(time.RFC3339Nano, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid page token timestamp: %w", err)
	}
	return entryDate, createdAt, nil
}
