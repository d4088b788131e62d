package portfolio

// Standing says whether an open holding is up or down against the cash the
// player had when it was opened.
type Standing int

const (
	Flat Standing = iota
	Ahead
	Behind
)

func (s Standing) String() string {
	switch s {
	case Ahead:
		return "ahead"
	case Behind:
		return "behind"
	default:
		return "flat"
	}
}

// MarshalText lets Standing appear as a word in JSON.
func (s Standing) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
