package models

// Page is one fetched batch of records and its 1-based server page number
type Page[T any] struct {
	Number int
	Items  []T
}

// Len returns the number of items on the page
func (p Page[T]) Len() int {
	return len(p.Items)
}
