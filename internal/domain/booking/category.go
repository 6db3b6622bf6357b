package booking

import "strings"

// Category classifies booking list queries by temporal position or status.
type Category string

const (
	CategoryAll      Category = "all"
	CategoryCurrent  Category = "current"
	CategoryFuture   Category = "future"
	CategoryPast     Category = "past"
	CategoryWaiting  Category = "waiting"
	CategoryRejected Category = "rejected"

	// CategoryUnknown is the sentinel for unrecognized input. It is only
	// used for validation and is never persisted.
	CategoryUnknown Category = ""
)

// categories is the closed registration set. Adding a category requires both
// a new constant here and a matching search strategy.
var categories = map[string]Category{
	"all":      CategoryAll,
	"current":  CategoryCurrent,
	"future":   CategoryFuture,
	"past":     CategoryPast,
	"waiting":  CategoryWaiting,
	"rejected": CategoryRejected,
}

// ParseCategory resolves a category by its lower-cased name. Unrecognized
// names yield CategoryUnknown.
func ParseCategory(s string) Category {
	c, ok := categories[strings.ToLower(s)]
	if !ok {
		return CategoryUnknown
	}
	return c
}

// String returns the lower-cased category name.
func (c Category) String() string {
	return string(c)
}
