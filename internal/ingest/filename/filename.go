// Package filename extracts identity metadata from object keys. Filenames
// are the only reliable identity channel for uploads: sheet content layout
// varies, so every grammar here is strict and fails fast.
package filename

import (
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"
)

var ErrBadFilename = errors.New("bad filename")

// Kind selects the grammar, alias table, and merge policy for one upload.
type Kind string

const (
	KindSchedule  Kind = "schedule"
	KindRoster    Kind = "roster"
	KindGameStats Kind = "game-stats"
)

// Directory prefixes the trigger bucket routes by kind.
const (
	PrefixSchedule  = "schedule/"
	PrefixRoster    = "roster/"
	PrefixGameStats = "game-stats/"
)

const (
	minSeasonYear = 2000
	maxSeasonYear = 2100
)

// KindForKey maps an object key to its kind by directory prefix.
func KindForKey(key string) (Kind, bool) {
	switch {
	case strings.HasPrefix(key, PrefixSchedule):
		return KindSchedule, true
	case strings.HasPrefix(key, PrefixRoster):
		return KindRoster, true
	case strings.HasPrefix(key, PrefixGameStats):
		return KindGameStats, true
	default:
		return "", false
	}
}

type ScheduleMeta struct {
	SeasonYear int
}

type RosterMeta struct {
	SeasonYear int
	TeamName   string
}

type GameStatsMeta struct {
	GameID   int64
	TeamName string
}

// ParseSchedule expects YYYY_..._Schedule.(csv|xlsx), e.g.
// schedule/2025_Schedule.xlsx or schedule/2025_South_Broward_Schedule.csv.
func ParseSchedule(key string) (ScheduleMeta, error) {
	parts := baseTokens(key)
	year, err := seasonYearToken(parts)
	if err != nil {
		return ScheduleMeta{}, err
	}

	marker := false
	for _, p := range parts[1:] {
		if strings.EqualFold(p, "schedule") {
			marker = true
			break
		}
	}
	if !marker {
		return ScheduleMeta{}, fmt.Errorf(`%w: must include a trailing "_Schedule" segment`, ErrBadFilename)
	}

	return ScheduleMeta{SeasonYear: year}, nil
}

// ParseRoster expects YYYY_<Team_Tokens>_Roster.(csv|xlsx), e.g.
// roster/2025_South-Broward_Roster.xlsx. Hyphens inside team tokens become
// spaces.
func ParseRoster(key string) (RosterMeta, error) {
	parts := baseTokens(key)
	year, err := seasonYearToken(parts)
	if err != nil {
		return RosterMeta{}, err
	}

	markerIdx := -1
	for i, p := range parts {
		if strings.EqualFold(p, "roster") {
			markerIdx = i
		}
	}
	if markerIdx <= 1 {
		return RosterMeta{}, fmt.Errorf(`%w: must include a final "_Roster" segment`, ErrBadFilename)
	}

	team := joinTeamTokens(parts[1:markerIdx])
	if team == "" {
		return RosterMeta{}, fmt.Errorf("%w: team name missing between year and _Roster", ErrBadFilename)
	}

	return RosterMeta{SeasonYear: year, TeamName: team}, nil
}

// ParseGameStats expects <GameID>_<Team_Tokens>_GameStats.xlsx (or the
// split trailing form _Game_Stats), e.g.
// game-stats/42_South_Broward_GameStats.xlsx.
func ParseGameStats(key string) (GameStatsMeta, error) {
	parts := baseTokens(key)
	if len(parts) == 0 || parts[0] == "" {
		return GameStatsMeta{}, fmt.Errorf("%w: empty name", ErrBadFilename)
	}

	gameID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return GameStatsMeta{}, fmt.Errorf("%w: first token must be an integer game id (e.g. '42_..._GameStats.xlsx')", ErrBadFilename)
	}

	var teamTokens []string
	last := len(parts) - 1
	switch {
	case strings.EqualFold(parts[last], "gamestats"):
		teamTokens = parts[1:last]
	case len(parts) >= 3 && strings.EqualFold(parts[last-1], "game") && strings.EqualFold(parts[last], "stats"):
		teamTokens = parts[1 : last-1]
	default:
		return GameStatsMeta{}, fmt.Errorf("%w: must end with '_GameStats' (or '_Game_Stats')", ErrBadFilename)
	}

	team := joinTeamTokens(teamTokens)
	if team == "" {
		return GameStatsMeta{}, fmt.Errorf("%w: team name missing between game id and _GameStats", ErrBadFilename)
	}

	return GameStatsMeta{GameID: gameID, TeamName: team}, nil
}

func baseTokens(key string) []string {
	base := path.Base(key)
	if ext := path.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return strings.Split(base, "_")
}

func seasonYearToken(parts []string) (int, error) {
	if len(parts) == 0 || len(parts[0]) != 4 || !allDigits(parts[0]) {
		return 0, fmt.Errorf("%w: must start with a 4-digit year (e.g. 2025_...)", ErrBadFilename)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: must start with a 4-digit year (e.g. 2025_...)", ErrBadFilename)
	}
	if year < minSeasonYear || year > maxSeasonYear {
		return 0, fmt.Errorf("%w: season year %d out of range (%d-%d)", ErrBadFilename, year, minSeasonYear, maxSeasonYear)
	}
	return year, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func joinTeamTokens(tokens []string) string {
	joined := strings.ReplaceAll(strings.Join(tokens, " "), "-", " ")
	return strings.Join(strings.Fields(joined), " ")
}
