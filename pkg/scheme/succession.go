package scheme

// Succession is the outcome of asking whether one label can follow another.
type Succession int

const (
	// NotNext means the label cannot directly follow the other.
	NotNext Succession = iota
	// Equal means both labels have the same text.
	Equal
	// Consecutive means the label is the next member of a shared scheme.
	Consecutive
)

func (s Succession) String() string {
	switch s {
	case Equal:
		return "equal"
	case Consecutive:
		return "consecutive"
	default:
		return "not-next"
	}
}
