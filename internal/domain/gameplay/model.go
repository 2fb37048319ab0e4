package gameplay

import "strings"

// Play is one charted play-participation row. The full set for a game is
// replaced on every (re)import of that game's stats file.
type Play struct {
	GameID       int64
	PlayNo       int
	PlayerID     string
	TeamID       int64
	StatType     *string
	StatActionID int64
	Yards        string
	IsTouchdown  bool
	IsSafety     bool
	SackWeight   float64
	SourceFile   string
	Notes        *string
}

// SackWeightFor derives defensive sack credit from the action name alone:
// a solo sack counts 1.0, an assist 0.5.
func SackWeightFor(actionName string) float64 {
	switch strings.ToLower(strings.TrimSpace(actionName)) {
	case "sack":
		return 1.0
	case "sack assist", "sackassist":
		return 0.5
	default:
		return 0.0
	}
}
