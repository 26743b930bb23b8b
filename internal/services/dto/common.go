package dto

import "time"

// ListResult is the shape every listing service returns; handlers unpack it
// into the {<collection>, total, page, pages} envelope.
type ListResult[T any] struct {
	Items []T
	Total int64
	Page  int
	Pages int
}

// isoTime renders timestamps as ISO-8601 strings so no storage-native date
// representation reaches the wire.
func isoTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
