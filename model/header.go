package model

// HeaderState classifies a table cell as plain, row header, column header,
// or both. It is a two-element set over {HeaderRow, HeaderColumn}; the
// zero value is the empty set.
type HeaderState uint8

const (
	HeaderNone   HeaderState = 0
	HeaderRow    HeaderState = 1 << 0
	HeaderColumn HeaderState = 1 << 1
	HeaderBoth               = HeaderRow | HeaderColumn
)

// Has reports whether the given part is in the set.
func (s HeaderState) Has(part HeaderState) bool {
	return s&part != 0
}

// Toggle returns the symmetric difference with part: exactly that part is
// flipped, the other is untouched. Toggling twice restores the original.
func (s HeaderState) Toggle(part HeaderState) HeaderState {
	return (s ^ part) & HeaderBoth
}

// Valid reports whether the state is one of the four defined values.
func (s HeaderState) Valid() bool {
	return s <= HeaderBoth
}

func (s HeaderState) String() string {
	switch s {
	case HeaderNone:
		return "none"
	case HeaderRow:
		return "row"
	case HeaderColumn:
		return "column"
	case HeaderBoth:
		return "both"
	default:
		return "invalid"
	}
}
