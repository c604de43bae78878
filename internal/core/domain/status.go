package domain

// Status tells whether a record keyed by a derived address denotes an active
// intent or a retired one. Retired records may be re-created.
type Status int

const (
	StatusActive Status = iota
	StatusRetired
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusRetired:
		return "Retired"
	default:
		return "Unknown"
	}
}
