// Package ptr holds small pointer helpers for building partial updates.
package ptr

// To returns a pointer to v.
func To[T any](v T) *T {
	return &v
}

// IfNonEmpty returns a pointer to s, or nil when s is empty. Partial update
// builders use it to skip fields the caller did not set.
func IfNonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
