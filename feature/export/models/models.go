package models

import "strconv"

// MergedFieldCount is the exact number of fields every output row carries.
const MergedFieldCount = 7

// CountUnavailable marks an author record count the channel could not produce.
const CountUnavailable = -1

// Columns returns the seven output column names in their fixed order.
func Columns() []string {
	return []string{"ID", "Title", "Slug", "Override", "Date", "Status", "Category"}
}

// ContentRecord is one primary record fetched from the backend.
type ContentRecord struct {
	// ID is the unique positive identifier of the record.
	ID int64
	// Title is free text and may contain delimiter characters.
	Title string
	// Slug is the URL-safe name of the record.
	Slug string
	// Date is the backend-native date string, carried opaque.
	Date string
	// Status is the backend status token (publish, draft, ...).
	Status string
	// Category is the content type the record belongs to.
	Category string
}

// OverrideRecord supplies a replacement path for a primary record.
type OverrideRecord struct {
	// ID is the identifier of the primary record this override applies to.
	ID int64
	// Path is the replacement path. Empty means no override.
	Path string
}

// MergedRow is one reconciled output row in the fixed order
// ID, Title, Slug, Override, Date, Status, Category.
type MergedRow []string

// Valid reports whether the row has exactly the required field count.
func (r MergedRow) Valid() bool {
	return len(r) == MergedFieldCount
}

// AuthorRecord is one author exported from the backend.
type AuthorRecord struct {
	// ID is the author's identifier.
	ID int64
	// Login is the author's login name.
	Login string
	// Email is the author's email address.
	Email string
	// FirstName is the author's first name.
	FirstName string
	// LastName is the author's last name.
	LastName string
	// DisplayName is the author's public display name.
	DisplayName string
	// Roles is the backend's role token set, carried opaque.
	Roles string
	// RecordCount is the number of records the author owns across the
	// exported categories, or CountUnavailable.
	RecordCount int
}

// CountLabel renders the record count for display, mapping the sentinel to
// "unavailable".
func (a AuthorRecord) CountLabel() string {
	if a.RecordCount == CountUnavailable {
		return "unavailable"
	}
	return strconv.Itoa(a.RecordCount)
}
