package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/sbathletics/gridiron-ingest/internal/domain/game"
	"github.com/sbathletics/gridiron-ingest/internal/domain/gameplay"
	"github.com/sbathletics/gridiron-ingest/internal/domain/player"
	"github.com/sbathletics/gridiron-ingest/internal/domain/roster"
	"github.com/sbathletics/gridiron-ingest/internal/domain/season"
	"github.com/sbathletics/gridiron-ingest/internal/domain/stataction"
	"github.com/sbathletics/gridiron-ingest/internal/domain/team"
	"github.com/sbathletics/gridiron-ingest/internal/platform/logging"
)

type memData struct {
	seasons      map[int]season.Season
	teams        []team.Team
	nextTeamID   int64
	players      map[string]player.Player
	roster       []roster.Entry
	nextRosterID int64
	games        []game.Game
	nextGameID   int64
	actions      []stataction.StatAction
	plays        []gameplay.Play
	positions    map[string]struct{}
}

func newMemData() *memData {
	return &memData{
		seasons:      map[int]season.Season{},
		players:      map[string]player.Player{},
		positions:    map[string]struct{}{},
		nextTeamID:   1,
		nextRosterID: 1,
		nextGameID:   1,
	}
}

type memStore struct{ data *memData }

func (s memStore) RunInTx(ctx context.Context, fn func(ctx context.Context, r Repos) error) error {
	return fn(ctx, Repos{
		Teams:       memTeams{s.data},
		Seasons:     memSeasons{s.data},
		Players:     memPlayers{s.data},
		Roster:      memRoster{s.data},
		Games:       memGames{s.data},
		StatActions: memActions{s.data},
		GamePlays:   memPlays{s.data},
		Positions:   memPositions{s.data},
	})
}

type memSeasons struct{ data *memData }

func (m memSeasons) GetByYear(_ context.Context, year int) (season.Season, error) {
	if s, ok := m.data.seasons[year]; ok {
		return s, nil
	}
	return season.Season{}, season.ErrNotFound
}

type memTeams struct{ data *memData }

func (m memTeams) GetByName(_ context.Context, name string) (team.Team, error) {
	for _, t := range m.data.teams {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	return team.Team{}, team.ErrNotFound
}

func (m memTeams) GetByID(_ context.Context, id int64) (team.Team, error) {
	for _, t := range m.data.teams {
		if t.ID == id {
			return t, nil
		}
	}
	return team.Team{}, team.ErrNotFound
}

func (m memTeams) ListAll(_ context.Context) ([]team.Team, error) {
	return append([]team.Team(nil), m.data.teams...), nil
}

func (m memTeams) Create(_ context.Context, name string) (team.Team, error) {
	t := team.Team{ID: m.data.nextTeamID, Name: name}
	m.data.nextTeamID++
	m.data.teams = append(m.data.teams, t)
	return t, nil
}

type memPlayers struct{ data *memData }

func (m memPlayers) ListByName(_ context.Context, firstName, lastName string) ([]player.Player, error) {
	var out []player.Player
	for _, p := range m.data.players {
		if strings.EqualFold(p.FirstName, firstName) && strings.EqualFold(p.LastName, lastName) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m memPlayers) ListIDsByBase(_ context.Context, base string) ([]string, error) {
	var out []string
	for id := range m.data.players {
		if strings.HasPrefix(id, base) {
			out = append(out, id)
		}
	}
	return out, nil
}

func (m memPlayers) Upsert(_ context.Context, p player.Player) error {
	m.data.players[p.ID] = p
	return nil
}

type memRoster struct{ data *memData }

func (m memRoster) GetOpen(_ context.Context, teamID, seasonID int64, playerID string) (roster.Entry, error) {
	for _, e := range m.data.roster {
		if e.TeamID == teamID && e.SeasonID == seasonID && e.PlayerID == playerID && e.Open() {
			return e, nil
		}
	}
	return roster.Entry{}, roster.ErrNotFound
}

func (m memRoster) UpdateOpen(_ context.Context, id int64, pos1, pos2, pos3, jersey *string) error {
	for i := range m.data.roster {
		if m.data.roster[i].ID == id {
			m.data.roster[i].Position1 = pos1
			m.data.roster[i].Position2 = pos2
			m.data.roster[i].Position3 = pos3
			m.data.roster[i].JerseyNumber = jersey
			return nil
		}
	}
	return roster.ErrNotFound
}

func (m memRoster) Insert(_ context.Context, e roster.Entry) error {
	e.ID = m.data.nextRosterID
	m.data.nextRosterID++
	m.data.roster = append(m.data.roster, e)
	return nil
}

func (m memRoster) ListOpenByTeam(_ context.Context, teamID int64) ([]roster.Entry, error) {
	var out []roster.Entry
	for _, e := range m.data.roster {
		if e.TeamID == teamID && e.Open() {
			out = append(out, e)
		}
	}
	return out, nil
}

type memGames struct{ data *memData }

func (m memGames) GetByID(_ context.Context, id int64) (game.Game, error) {
	for _, g := range m.data.games {
		if g.ID == id {
			return g, nil
		}
	}
	return game.Game{}, game.ErrNotFound
}

func (m memGames) GetByNaturalKey(_ context.Context, seasonID int64, date time.Time, homeTeamID, awayTeamID int64) (game.Game, error) {
	for _, g := range m.data.games {
		if g.SeasonID == seasonID && g.Date.Equal(date) && g.HomeTeamID == homeTeamID && g.AwayTeamID == awayTeamID {
			return g, nil
		}
	}
	return game.Game{}, game.ErrNotFound
}

func (m memGames) UpdateSchedule(_ context.Context, id int64, weekNumber *int, location *string) error {
	for i := range m.data.games {
		if m.data.games[i].ID == id {
			if weekNumber != nil {
				m.data.games[i].WeekNumber = weekNumber
			}
			if location != nil {
				m.data.games[i].Location = location
			}
			return nil
		}
	}
	return game.ErrNotFound
}

func (m memGames) Insert(_ context.Context, g game.Game) error {
	g.ID = m.data.nextGameID
	m.data.nextGameID++
	m.data.games = append(m.data.games, g)
	return nil
}

type memActions struct{ data *memData }

func (m memActions) ListAll(_ context.Context) ([]stataction.StatAction, error) {
	return append([]stataction.StatAction(nil), m.data.actions...), nil
}

type memPlays struct{ data *memData }

func (m memPlays) DeleteByGame(_ context.Context, gameID int64) (int64, error) {
	kept := m.data.plays[:0]
	var deleted int64
	for _, p := range m.data.plays {
		if p.GameID == gameID {
			deleted++
			continue
		}
		kept = append(kept, p)
	}
	m.data.plays = kept
	return deleted, nil
}

func (m memPlays) InsertMany(_ context.Context, plays []gameplay.Play) error {
	m.data.plays = append(m.data.plays, plays...)
	return nil
}

type memPositions struct{ data *memData }

func (m memPositions) Exists(_ context.Context, id string) (bool, error) {
	_, ok := m.data.positions[id]
	return ok, nil
}

type mapFetcher map[string][]byte

func (f mapFetcher) Fetch(_ context.Context, _, key string) ([]byte, error) {
	data, ok := f[key]
	if !ok {
		return nil, fmt.Errorf("no object %s", key)
	}
	return data, nil
}

type failFetcher struct{}

func (failFetcher) Fetch(_ context.Context, _, _ string) ([]byte, error) {
	return nil, errors.New("fetch should not be called")
}

func newService(data *memData, objects mapFetcher) *IngestionService {
	svc := NewIngestionService(memStore{data}, objects, logging.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 8, 20, 15, 0, 0, 0, time.UTC) }
	return svc
}

func TestIngestObjectSkipsForeignPrefix(t *testing.T) {
	t.Parallel()

	svc := NewIngestionService(memStore{newMemData()}, failFetcher{}, logging.NewNop())
	res, err := svc.IngestObject(context.Background(), "uploads", "attendance/2025_list.csv")
	if err != nil {
		t.Fatalf("IngestObject: %v", err)
	}
	if !res.Skipped || res.SkipReason == "" {
		t.Fatalf("expected skip, got %+v", res)
	}
}

func TestIngestScheduleConverges(t *testing.T) {
	t.Parallel()

	data := newMemData()
	data.seasons[2025] = season.Season{ID: 1, Year: 2025}
	data.teams = append(data.teams, team.Team{ID: 1, Name: "South Broward"})
	data.nextTeamID = 2

	key := "schedule/2025_Schedule.csv"
	file := "Week,Date,Home,Visitor,Location\n" +
		"1,2025-08-22,South Broward,McArthur,Home Field\n" +
		"2,2025-08-29,Miramar,South Broward,Away\n"
	svc := newService(data, mapFetcher{key: []byte(file)})

	res, err := svc.IngestObject(context.Background(), "uploads", key)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if res.Writes.Inserted != 2 || res.Rows.Kept != 2 {
		t.Fatalf("first run result: %+v", res)
	}
	if len(data.games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(data.games))
	}
	if len(data.teams) != 3 {
		t.Fatalf("expected opponents created once, got %d teams", len(data.teams))
	}

	res, err = svc.IngestObject(context.Background(), "uploads", key)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if res.Writes.Inserted != 0 || res.Writes.Updated != 2 {
		t.Fatalf("second run should only update: %+v", res)
	}
	if len(data.games) != 2 || len(data.teams) != 3 {
		t.Fatalf("second run changed entity counts: %d games, %d teams", len(data.games), len(data.teams))
	}
}

func TestIngestScheduleRejectsUnknownNumericTeam(t *testing.T) {
	t.Parallel()

	data := newMemData()
	data.seasons[2025] = season.Season{ID: 1, Year: 2025}

	key := "schedule/2025_Schedule.csv"
	file := "Week,Date,Home,Visitor\n1,2025-08-22,77,McArthur\n"
	svc := newService(data, mapFetcher{key: []byte(file)})

	res, err := svc.IngestObject(context.Background(), "uploads", key)
	if err != nil {
		t.Fatalf("IngestObject: %v", err)
	}
	if res.Rows.Dropped != 1 || len(res.Rejects) != 1 {
		t.Fatalf("expected one rejected row: %+v", res)
	}
	if len(data.games) != 0 {
		t.Fatal("rejected row must not produce a game")
	}
}

func TestIngestScheduleBlankWeekKeepsStoredValue(t *testing.T) {
	t.Parallel()

	data := newMemData()
	data.seasons[2025] = season.Season{ID: 1, Year: 2025}
	data.teams = append(data.teams, team.Team{ID: 1, Name: "South Broward"}, team.Team{ID: 2, Name: "McArthur"})
	data.nextTeamID = 3
	week3 := 3
	data.games = append(data.games, game.Game{
		ID:         1,
		SeasonID:   1,
		Date:       time.Date(2025, 8, 22, 0, 0, 0, 0, time.UTC),
		HomeTeamID: 1,
		AwayTeamID: 2,
		WeekNumber: &week3,
	})
	data.nextGameID = 2

	key := "schedule/2025_Schedule.csv"
	file := "Week,Date,Home,Visitor,Location\n,2025-08-22,South Broward,McArthur,Home Field\n"
	svc := newService(data, mapFetcher{key: []byte(file)})

	res, err := svc.IngestObject(context.Background(), "uploads", key)
	if err != nil {
		t.Fatalf("IngestObject: %v", err)
	}
	if res.Writes.Updated != 1 {
		t.Fatalf("expected one update: %+v", res)
	}
	if data.games[0].WeekNumber == nil || *data.games[0].WeekNumber != 3 {
		t.Fatalf("blank week cell erased stored week: %+v", data.games[0])
	}
	if data.games[0].Location == nil || *data.games[0].Location != "Home Field" {
		t.Fatalf("location not updated: %+v", data.games[0])
	}
}

func TestIngestScheduleInsertsZeroScores(t *testing.T) {
	t.Parallel()

	data := newMemData()
	data.seasons[2025] = season.Season{ID: 1, Year: 2025}

	key := "schedule/2025_Schedule.csv"
	file := "Date,Home,Visitor,Home Score,Away Score\n2025-08-22,South Broward,McArthur,21,14\n"
	svc := newService(data, mapFetcher{key: []byte(file)})

	if _, err := svc.IngestObject(context.Background(), "uploads", key); err != nil {
		t.Fatalf("IngestObject: %v", err)
	}
	if len(data.games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(data.games))
	}
	if data.games[0].HomeScore != 0 || data.games[0].AwayScore != 0 {
		t.Fatalf("new games carry zero scores, got %+v", data.games[0])
	}
}

func TestIngestScheduleEmptyFileFails(t *testing.T) {
	t.Parallel()

	data := newMemData()
	data.seasons[2025] = season.Season{ID: 1, Year: 2025}

	key := "schedule/2025_Schedule.csv"
	file := "Week,Date,Home,Visitor\n"
	svc := newService(data, mapFetcher{key: []byte(file)})

	_, err := svc.IngestObject(context.Background(), "uploads", key)
	if !errors.Is(err, ErrNoUsableRows) {
		t.Fatalf("expected ErrNoUsableRows, got %v", err)
	}
}

func TestIngestScheduleMissingSeasonAborts(t *testing.T) {
	t.Parallel()

	key := "schedule/2025_Schedule.csv"
	file := "Week,Date,Home,Visitor\n1,2025-08-22,South Broward,McArthur\n"
	svc := newService(newMemData(), mapFetcher{key: []byte(file)})

	_, err := svc.IngestObject(context.Background(), "uploads", key)
	if !errors.Is(err, ErrMissingReference) {
		t.Fatalf("expected ErrMissingReference, got %v", err)
	}
}

func TestIngestRosterCreatesAndConverges(t *testing.T) {
	t.Parallel()

	data := newMemData()
	data.seasons[2025] = season.Season{ID: 1, Year: 2025}
	data.teams = append(data.teams, team.Team{ID: 1, Name: "South Broward"})
	data.nextTeamID = 2
	data.positions["QB"] = struct{}{}
	data.positions["WR"] = struct{}{}

	key := "roster/2025_South-Broward_Roster.csv"
	file := "No,First Name,Last Name,Class,Pos1,Pos2\n" +
		"12,John,Smith,2027,QB,XX\n" +
		"81,Marcus,Reed,2026.0,WR,\n"
	svc := newService(data, mapFetcher{key: []byte(file)})

	res, err := svc.IngestObject(context.Background(), "uploads", key)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if res.Writes.Inserted != 2 {
		t.Fatalf("first run result: %+v", res)
	}

	smith, ok := data.players["SMITJO01"]
	if !ok {
		t.Fatalf("expected synthesized id SMITJO01, players: %v", data.players)
	}
	if smith.GraduationYear == nil || *smith.GraduationYear != 2027 {
		t.Fatalf("profile not stored: %+v", smith)
	}

	var smithEntry roster.Entry
	for _, e := range data.roster {
		if e.PlayerID == "SMITJO01" {
			smithEntry = e
		}
	}
	if smithEntry.Position1 == nil || *smithEntry.Position1 != "QB" {
		t.Fatalf("position1 not kept: %+v", smithEntry)
	}
	if smithEntry.Position2 != nil {
		t.Fatalf("unknown position code must be nulled: %+v", smithEntry)
	}
	if !smithEntry.EndDate.Equal(roster.OpenEndDate) {
		t.Fatalf("new entry must be open: %+v", smithEntry)
	}

	res, err = svc.IngestObject(context.Background(), "uploads", key)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if res.Writes.Inserted != 0 || res.Writes.Updated != 2 {
		t.Fatalf("second run should only update: %+v", res)
	}
	if len(data.players) != 2 || len(data.roster) != 2 {
		t.Fatalf("second run changed entity counts: %d players, %d entries", len(data.players), len(data.roster))
	}
}

func TestIngestRosterAllocatesNextSuffix(t *testing.T) {
	t.Parallel()

	data := newMemData()
	data.seasons[2025] = season.Season{ID: 1, Year: 2025}
	data.teams = append(data.teams, team.Team{ID: 1, Name: "South Broward"})
	data.nextTeamID = 2
	data.players["SMITJO01"] = player.Player{ID: "SMITJO01", FirstName: "Jane", LastName: "Smithers"}

	key := "roster/2025_South-Broward_Roster.csv"
	file := "No,First Name,Last Name\n12,John,Smith\n"
	svc := newService(data, mapFetcher{key: []byte(file)})

	if _, err := svc.IngestObject(context.Background(), "uploads", key); err != nil {
		t.Fatalf("IngestObject: %v", err)
	}
	if _, ok := data.players["SMITJO02"]; !ok {
		t.Fatalf("expected suffix 02, players: %v", data.players)
	}
}

func TestIngestRosterAmbiguousNameAllocatesFreshID(t *testing.T) {
	t.Parallel()

	data := newMemData()
	data.seasons[2025] = season.Season{ID: 1, Year: 2025}
	data.teams = append(data.teams, team.Team{ID: 1, Name: "South Broward"})
	data.nextTeamID = 2
	data.players["SMITJO01"] = player.Player{ID: "SMITJO01", FirstName: "John", LastName: "Smith"}
	data.players["SMITJO02"] = player.Player{ID: "SMITJO02", FirstName: "John", LastName: "Smith"}

	key := "roster/2025_South-Broward_Roster.csv"
	file := "No,First Name,Last Name\n12,John,Smith\n"
	svc := newService(data, mapFetcher{key: []byte(file)})

	res, err := svc.IngestObject(context.Background(), "uploads", key)
	if err != nil {
		t.Fatalf("IngestObject: %v", err)
	}
	if res.Rows.Dropped != 0 || res.Rows.Kept != 1 {
		t.Fatalf("ambiguous name must not reject the row: %+v", res)
	}
	if _, ok := data.players["SMITJO03"]; !ok {
		t.Fatalf("expected fresh suffix 03, players: %v", data.players)
	}
}

func TestIngestRosterEmptyFileFails(t *testing.T) {
	t.Parallel()

	data := newMemData()
	data.seasons[2025] = season.Season{ID: 1, Year: 2025}
	data.teams = append(data.teams, team.Team{ID: 1, Name: "South Broward"})
	data.nextTeamID = 2

	key := "roster/2025_South-Broward_Roster.csv"
	file := "No,First Name,Last Name\n"
	svc := newService(data, mapFetcher{key: []byte(file)})

	_, err := svc.IngestObject(context.Background(), "uploads", key)
	if !errors.Is(err, ErrNoUsableRows) {
		t.Fatalf("expected ErrNoUsableRows, got %v", err)
	}
	if len(data.players) != 0 || len(data.roster) != 0 {
		t.Fatal("empty import must not write")
	}
}

func TestIngestRosterPlayerIDColumnWins(t *testing.T) {
	t.Parallel()

	data := newMemData()
	data.seasons[2025] = season.Season{ID: 1, Year: 2025}
	data.teams = append(data.teams, team.Team{ID: 1, Name: "South Broward"})
	data.nextTeamID = 2

	key := "roster/2025_South-Broward_Roster.csv"
	file := "No,First Name,Last Name,Player ID\n12,John,Smith,smitjo07\n"
	svc := newService(data, mapFetcher{key: []byte(file)})

	if _, err := svc.IngestObject(context.Background(), "uploads", key); err != nil {
		t.Fatalf("IngestObject: %v", err)
	}
	if _, ok := data.players["SMITJO07"]; !ok {
		t.Fatalf("explicit id not honored, players: %v", data.players)
	}
}

func TestIngestRosterMissingTeamAborts(t *testing.T) {
	t.Parallel()

	data := newMemData()
	data.seasons[2025] = season.Season{ID: 1, Year: 2025}

	key := "roster/2025_South-Broward_Roster.csv"
	file := "No,First Name,Last Name\n12,John,Smith\n"
	svc := newService(data, mapFetcher{key: []byte(file)})

	_, err := svc.IngestObject(context.Background(), "uploads", key)
	if !errors.Is(err, ErrMissingReference) {
		t.Fatalf("expected ErrMissingReference, got %v", err)
	}
	if len(data.players) != 0 || len(data.roster) != 0 {
		t.Fatal("aborted run must not write")
	}
}

func TestIngestGameStatsReplacesPlaySet(t *testing.T) {
	t.Parallel()

	data := newMemData()
	data.teams = append(data.teams, team.Team{ID: 1, Name: "South Broward"})
	data.nextTeamID = 2
	data.games = append(data.games, game.Game{ID: 42, SeasonID: 1, HomeTeamID: 1, AwayTeamID: 2})
	data.actions = []stataction.StatAction{{ID: 1, Name: "Rush"}, {ID: 2, Name: "Sack"}}
	jersey7, jersey22 := "07", "22"
	data.roster = []roster.Entry{
		{ID: 1, TeamID: 1, SeasonID: 1, PlayerID: "SMITJO01", JerseyNumber: &jersey7, EndDate: roster.OpenEndDate},
		{ID: 2, TeamID: 1, SeasonID: 1, PlayerID: "REEDMA01", JerseyNumber: &jersey22, EndDate: roster.OpenEndDate},
	}

	key := "game-stats/42_South_Broward_GameStats.xlsx"
	book := statsWorkbook(t, [][]any{
		{"Play #", "Player #", "Action", "GA", "GB", "GC", "TD"},
		{1, 7, "Rush", 12, "", "", ""},
		{2, 22, "Sack", "", "", "", ""},
		{"", 22, "Rush", 3, "", "", ""},
	})
	svc := newService(data, mapFetcher{key: book})

	res, err := svc.IngestObject(context.Background(), "uploads", key)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if res.Rows.Total != 3 || res.Rows.Kept != 2 || res.Rows.Dropped != 1 {
		t.Fatalf("first run rows: %+v", res.Rows)
	}
	if len(data.plays) != 2 {
		t.Fatalf("expected 2 plays, got %d", len(data.plays))
	}
	for _, p := range data.plays {
		if p.PlayerID == "SMITJO01" && p.Yards != "12" {
			t.Fatalf("yards not carried: %+v", p)
		}
		if p.PlayerID == "REEDMA01" && p.SackWeight != 1.0 {
			t.Fatalf("sack weight not derived: %+v", p)
		}
	}

	res, err = svc.IngestObject(context.Background(), "uploads", key)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if res.PlaysDeleted != 2 || res.Writes.Inserted != 2 {
		t.Fatalf("second run should replace in full: %+v", res)
	}
	if len(data.plays) != 2 {
		t.Fatalf("replay changed play count: %d", len(data.plays))
	}
}

func TestIngestGameStatsMatchesTextJersey(t *testing.T) {
	t.Parallel()

	data := newMemData()
	data.teams = append(data.teams, team.Team{ID: 1, Name: "South Broward"})
	data.nextTeamID = 2
	data.games = append(data.games, game.Game{ID: 42, SeasonID: 1, HomeTeamID: 1, AwayTeamID: 2})
	data.actions = []stataction.StatAction{{ID: 1, Name: "Rush"}}
	jerseyA1 := "A1"
	data.roster = []roster.Entry{
		{ID: 1, TeamID: 1, SeasonID: 1, PlayerID: "SMITJO01", JerseyNumber: &jerseyA1, EndDate: roster.OpenEndDate},
	}

	key := "game-stats/42_South_Broward_GameStats.xlsx"
	book := statsWorkbook(t, [][]any{
		{"Play #", "Player #", "Action"},
		{1, "A1", "Rush"},
	})
	svc := newService(data, mapFetcher{key: book})

	res, err := svc.IngestObject(context.Background(), "uploads", key)
	if err != nil {
		t.Fatalf("IngestObject: %v", err)
	}
	if res.Rows.Kept != 1 || res.Rows.Dropped != 0 {
		t.Fatalf("text jersey must reach the roster lookup: %+v", res)
	}
	if len(data.plays) != 1 || data.plays[0].PlayerID != "SMITJO01" {
		t.Fatalf("play not resolved: %+v", data.plays)
	}
}

func TestIngestGameStatsNoUsableRows(t *testing.T) {
	t.Parallel()

	data := newMemData()
	data.plays = []gameplay.Play{{GameID: 42, PlayNo: 1, PlayerID: "SMITJO01", TeamID: 1}}

	key := "game-stats/42_South_Broward_GameStats.xlsx"
	book := statsWorkbook(t, [][]any{
		{"Play #", "Player #", "Action"},
		{0, 7, "Rush"},
		{"", 22, "Sack"},
	})
	svc := newService(data, mapFetcher{key: book})

	_, err := svc.IngestObject(context.Background(), "uploads", key)
	if !errors.Is(err, ErrNoUsableRows) {
		t.Fatalf("expected ErrNoUsableRows, got %v", err)
	}
	if len(data.plays) != 1 {
		t.Fatal("existing plays must survive an empty import")
	}
}

func TestIngestGameStatsMissingGameAborts(t *testing.T) {
	t.Parallel()

	data := newMemData()
	data.teams = append(data.teams, team.Team{ID: 1, Name: "South Broward"})
	data.nextTeamID = 2

	key := "game-stats/42_South_Broward_GameStats.xlsx"
	book := statsWorkbook(t, [][]any{
		{"Play #", "Player #", "Action"},
		{1, 7, "Rush"},
	})
	svc := newService(data, mapFetcher{key: book})

	_, err := svc.IngestObject(context.Background(), "uploads", key)
	if !errors.Is(err, ErrMissingReference) {
		t.Fatalf("expected ErrMissingReference, got %v", err)
	}
}

func statsWorkbook(t *testing.T, rows [][]any) []byte {
	t.Helper()

	book := excelize.NewFile()
	defer book.Close()

	if err := book.SetSheetName("Sheet1", "Game Stats"); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := book.SetSheetRow("Game Stats", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	buf, err := book.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}
