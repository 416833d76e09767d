package utils

// Ptr returns a pointer to v, for optional request fields such as
// temperature or pitch that are nil when unset.
//
//	config := ai.GenerationConfig{Temperature: utils.Ptr(0.2)}
func Ptr[T any](v T) *T {
	return &v
}
