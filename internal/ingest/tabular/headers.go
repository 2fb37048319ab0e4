package tabular

import "strings"

// Canonical field names the downstream row parsers bind against.
const (
	FieldPlayNo     = "play_no"
	FieldPlayerNo   = "player_no"
	FieldStatAction = "stat_action"
	FieldStatType   = "stat_type"
	FieldIsTD       = "is_td"
	FieldIsSafety   = "is_safety"
	FieldYardsA     = "yards_a"
	FieldYardsB     = "yards_b"
	FieldYardsC     = "yards_c"
	FieldNotes      = "notes"

	FieldJerseyNumber   = "jersey_number"
	FieldFirstName      = "first_name"
	FieldLastName       = "last_name"
	FieldGraduationYear = "graduation_year"
	FieldHeight         = "height"
	FieldWeight         = "weight"
	FieldPosition1      = "position1"
	FieldPosition2      = "position2"
	FieldPosition3      = "position3"
	FieldPlayerID       = "player_id"

	FieldWeekNo    = "week_no"
	FieldDate      = "date"
	FieldLocation  = "location"
	FieldAwayTeam  = "away_team"
	FieldHomeTeam  = "home_team"
	FieldAwayScore = "away_score"
	FieldHomeScore = "home_score"
)

// Alias tables key collapsed header forms (see CanonicalKey) to canonical
// field names. Exports vary header spelling per school and per season, so
// the tables carry every spelling seen in practice.
var gameStatsAliases = map[string]string{
	"playno":     FieldPlayNo,
	"play":       FieldPlayNo,
	"playerno":   FieldPlayerNo,
	"player":     FieldPlayerNo,
	"stataction": FieldStatAction,
	"action":     FieldStatAction,
	"actionname": FieldStatAction,
	"stattype":   FieldStatType,
	"type":       FieldStatType,
	"istd":       FieldIsTD,
	"td":         FieldIsTD,
	"issafety":   FieldIsSafety,
	"safety":     FieldIsSafety,
	"yardsa":     FieldYardsA,
	"yarda":      FieldYardsA,
	"ga":         FieldYardsA,
	"yardsb":     FieldYardsB,
	"yardb":      FieldYardsB,
	"gb":         FieldYardsB,
	"yardsc":     FieldYardsC,
	"yardc":      FieldYardsC,
	"gc":         FieldYardsC,
	"sign":       FieldYardsC,
	"notes":      FieldNotes,
	"remark":     FieldNotes,
	"comments":   FieldNotes,
}

var rosterAliases = map[string]string{
	"no":             FieldJerseyNumber,
	"number":         FieldJerseyNumber,
	"jersey":         FieldJerseyNumber,
	"jerseynumber":   FieldJerseyNumber,
	"uniform":        FieldJerseyNumber,
	"firstname":      FieldFirstName,
	"first":          FieldFirstName,
	"lastname":       FieldLastName,
	"last":           FieldLastName,
	"surname":        FieldLastName,
	"class":          FieldGraduationYear,
	"gradyear":       FieldGraduationYear,
	"graduationyear": FieldGraduationYear,
	"height":         FieldHeight,
	"heightin":       FieldHeight,
	"heightinches":   FieldHeight,
	"ht":             FieldHeight,
	"weight":         FieldWeight,
	"wt":             FieldWeight,
	"position1":      FieldPosition1,
	"pos1":           FieldPosition1,
	"position":       FieldPosition1,
	"pos":            FieldPosition1,
	"positionid":     FieldPosition1,
	"position2":      FieldPosition2,
	"pos2":           FieldPosition2,
	"position3":      FieldPosition3,
	"pos3":           FieldPosition3,
	"playerid":       FieldPlayerID,
}

var scheduleAliases = map[string]string{
	"weekno":    FieldWeekNo,
	"week":      FieldWeekNo,
	"wk":        FieldWeekNo,
	"date":      FieldDate,
	"gamedate":  FieldDate,
	"location":  FieldLocation,
	"venue":     FieldLocation,
	"field":     FieldLocation,
	"awayteam":  FieldAwayTeam,
	"away":      FieldAwayTeam,
	"visitor":   FieldAwayTeam,
	"hometeam":  FieldHomeTeam,
	"home":      FieldHomeTeam,
	"awayscore": FieldAwayScore,
	"homescore": FieldHomeScore,
}

// CanonicalKey collapses a header label for alias lookup: lowercase with
// every non-alphanumeric rune stripped, so "Play #", "play_no" and "PlayNo"
// compare equal.
func CanonicalKey(header string) string {
	var b strings.Builder
	b.Grow(len(header))
	for _, r := range strings.ToLower(header) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CanonicalizeGameStatsHeaders rewrites record keys to the game-stats
// canonical fields. Headers with no alias pass through unchanged.
func CanonicalizeGameStatsHeaders(rows []Record) []Record {
	return canonicalize(rows, gameStatsAliases)
}

// CanonicalizeRosterHeaders rewrites record keys to the roster canonical
// fields.
func CanonicalizeRosterHeaders(rows []Record) []Record {
	return canonicalize(rows, rosterAliases)
}

// CanonicalizeScheduleHeaders rewrites record keys to the schedule canonical
// fields.
func CanonicalizeScheduleHeaders(rows []Record) []Record {
	return canonicalize(rows, scheduleAliases)
}

// canonicalize derives the header mapping from the first record and applies
// it uniformly, so every row of a file uses the same key set.
func canonicalize(rows []Record, aliases map[string]string) []Record {
	if len(rows) == 0 {
		return rows
	}

	mapping := make(map[string]string, len(rows[0]))
	for header := range rows[0] {
		if canonical, ok := aliases[CanonicalKey(header)]; ok {
			mapping[header] = canonical
		} else {
			mapping[header] = header
		}
	}

	out := make([]Record, len(rows))
	for i, row := range rows {
		rec := make(Record, len(row))
		for header, value := range row {
			key, ok := mapping[header]
			if !ok {
				if canonical, found := aliases[CanonicalKey(header)]; found {
					key = canonical
				} else {
					key = header
				}
				mapping[header] = key
			}
			rec[key] = value
		}
		out[i] = rec
	}
	return out
}
