package sqlite

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Timestamps are stored as RFC3339 text; extracted_at keeps nanoseconds.

func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// appendPagination adds LIMIT and OFFSET for positive values. SQLite only
// accepts OFFSET after a LIMIT, so an offset alone uses LIMIT -1.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	switch {
	case limit > 0:
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	case offset > 0:
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}

// JSON text columns: metadata is an object, contact fields are arrays.
// Empty values are written as "{}" and "[]" so the NOT NULL defaults hold.

func encodeMetadata(metadata map[string]any) (string, error) {
	if len(metadata) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(metadata)
	if err != nil {
		return "", fmt.Errorf("failed to encode metadata: %w", err)
	}
	return string(b), nil
}

func encodeStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeStrings(value, fieldName string) ([]string, error) {
	values := []string{}
	if err := json.Unmarshal([]byte(value), &values); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", fieldName, err)
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}
