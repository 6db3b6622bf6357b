package domain

// PageRequest addresses a page of results in the persistence layer.
type PageRequest struct {
	Page  int
	Limit int
}

// Default list-slicing parameters applied when the caller omits them.
const (
	DefaultFrom  = 0
	DefaultLimit = 10
)

// NewPageRequest translates an offset-in-items ("from") and a page size into a
// page index for the store. The index is from/limit with integer division, so
// a "from" that is not an exact multiple of "limit" lands on the page
// containing that offset rather than on an exact record boundary. Callers
// rely on this translation with the default values; keep it as is.
func NewPageRequest(from, limit int) (PageRequest, error) {
	if from < 0 {
		return PageRequest{}, NewValidationError("from must not be negative")
	}
	if limit <= 0 {
		return PageRequest{}, NewValidationError("limit must be positive")
	}
	return PageRequest{Page: from / limit, Limit: limit}, nil
}

// Offset returns the row offset for the underlying store.
func (p PageRequest) Offset() int {
	return p.Page * p.Limit
}
