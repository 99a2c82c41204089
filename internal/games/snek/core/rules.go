package core

// Points awarded by the rule table.
const (
	ApplePoints = 1
	BonusPoints = 3 // apple while reversed, or lemon while already reversed
)

// Outcome says whether the session carries on after a move.
type Outcome int

const (
	OutcomeContinue Outcome = iota
	OutcomeGameOver
)

func (o Outcome) String() string {
	if o == OutcomeGameOver {
		return "game_over"
	}
	return "continue"
}

// Resolution is what the rule table decides for one attempted move.
type Resolution struct {
	Outcome    Outcome
	ScoreDelta int
	Grow       bool

	// TriggerAnimation asks the driver to replace the target with the
	// finite explosion animation.
	TriggerAnimation bool

	// ConsumesItem is set when the target tile is a tracked item that must
	// be dropped from the spawner.
	ConsumesItem bool

	// Reversed is the value of the reversed-controls flag after the move.
	Reversed bool
}

// Resolve is the stateless rule table: given the tile type the head is about
// to enter and the current reversed-controls flag, it decides the move's
// consequences. It never mutates anything.
func Resolve(target TileType, reversed bool) Resolution {
	switch target {
	case TileEmpty, TileStartMarker:
		return Resolution{Outcome: OutcomeContinue, Reversed: reversed}

	case TileApple:
		r := Resolution{
			Outcome:      OutcomeContinue,
			Grow:         true,
			ConsumesItem: true,
			ScoreDelta:   ApplePoints,
		}
		if reversed {
			r.ScoreDelta = BonusPoints
		}
		return r

	case TileLemon:
		r := Resolution{
			Outcome:      OutcomeContinue,
			Grow:         true,
			ConsumesItem: true,
			Reversed:     true,
		}
		if reversed {
			r.ScoreDelta = BonusPoints
		}
		return r

	case TileBomb:
		return Resolution{
			Outcome:          OutcomeGameOver,
			TriggerAnimation: true,
			ConsumesItem:     true,
			Reversed:         reversed,
		}
	}

	// Snake segments, walls, a running explosion and anything unknown
	return Resolution{Outcome: OutcomeGameOver, Reversed: reversed}
}
