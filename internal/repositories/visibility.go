package repositories

import "gorm.io/gorm"

// Visibility controls whether a read sees soft-deleted rows. The default,
// ActiveOnly, hides any row with a deletion timestamp. IncludeDeleted is the
// single escape hatch, reserved for administrative tooling.
type Visibility int

const (
	ActiveOnly Visibility = iota
	IncludeDeleted
)

// withVisibility applies the deletion-visibility rule to a query. Every
// top-level read in this package is routed through here so that no call site
// has to remember to filter. It only widens visibility; it never touches any
// other predicate on the query.
func withVisibility(db *gorm.DB, v Visibility) *gorm.DB {
	if v == IncludeDeleted {
		return db.Unscoped()
	}
	return db
}
