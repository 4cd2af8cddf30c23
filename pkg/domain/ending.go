package domain

// EndingKind classifies a terminal outcome of a story (e.g. "flight").
// The zero value means no ending.
type EndingKind string

// NoEnding is the absent ending kind.
const NoEnding EndingKind = ""

// IsZero reports whether the kind is absent.
func (k EndingKind) IsZero() bool {
	return k == NoEnding
}

func (k EndingKind) String() string {
	return string(k)
}
