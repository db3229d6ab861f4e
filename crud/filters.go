package crud

import "strings"

// Filter keeps the records it returns true for. A nil Filter keeps everything.
type Filter[T any] func(T) bool

// Apply returns the records passing every filter, in their original order.
func Apply[T any](records []T, filters ...Filter[T]) []T {
	out := make([]T, 0, len(records))
next:
	for _, r := range records {
		for _, f := range filters {
			if f != nil && !f(r) {
				continue next
			}
		}
		out = append(out, r)
	}
	return out
}

// NameContains is a case-insensitive substring match on the record name.
func NameContains[T Record](query string) Filter[T] {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	return func(r T) bool {
		return strings.Contains(strings.ToLower(r.RecordName()), query)
	}
}

// Activatable records carry an is_active flag.
type Activatable interface {
	Active() bool
}

const (
	StatusAll      = "All"
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Status matches "Active" or "Inactive"; anything else keeps every record.
func Status[T Activatable](status string) Filter[T] {
	switch status {
	case StatusActive:
		return func(r T) bool { return r.Active() }
	case StatusInactive:
		return func(r T) bool { return !r.Active() }
	default:
		return nil
	}
}

// Equals keeps records whose key equals want. An empty want or "All" keeps everything.
func Equals[T any](want string, key func(T) string) Filter[T] {
	if want == "" || want == StatusAll {
		return nil
	}
	return func(r T) bool { return key(r) == want }
}
