package c4

// Status represents the lifecycle of a match.
type Status int

const (
	// StatusPlaying means the match accepts moves.
	StatusPlaying Status = iota

	// StatusClosed means the match ended without a winner (draw or cancelled).
	StatusClosed

	// StatusWon means one player connected four or more.
	StatusWon
)

func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusClosed:
		return "closed"
	case StatusWon:
		return "won"
	default:
		return "unknown"
	}
}
