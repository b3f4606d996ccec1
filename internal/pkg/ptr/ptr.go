package ptr

import (
	"database/sql"
	"time"
)

func Of[T any](v T) *T {
	return &v
}

func IntFromNull(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func IntToNull(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

// FormatTime renders t as an ISO-8601 UTC timestamp with millisecond precision,
// or nil when t is nil.
func FormatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(ISO8601Millis)
	return &s
}

const ISO8601Millis = "2006-01-02T15:04:05.000Z07:00"
