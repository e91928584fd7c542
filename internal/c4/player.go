package c4

// Player identifies which side a token belongs to.
type Player int

const (
	Red Player = iota
	Blue
)

// Other returns the opposing player.
func (p Player) Other() Player {
	if p == Red {
		return Blue
	}
	return Red
}

func (p Player) String() string {
	if p == Red {
		return "R"
	}
	return "B"
}
