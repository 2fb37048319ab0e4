package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sbathletics/gridiron-ingest/internal/domain/game"
	"github.com/sbathletics/gridiron-ingest/internal/domain/gameplay"
	"github.com/sbathletics/gridiron-ingest/internal/domain/player"
	"github.com/sbathletics/gridiron-ingest/internal/domain/roster"
	"github.com/sbathletics/gridiron-ingest/internal/domain/season"
	"github.com/sbathletics/gridiron-ingest/internal/domain/team"
	"github.com/sbathletics/gridiron-ingest/internal/ingest/filename"
	"github.com/sbathletics/gridiron-ingest/internal/ingest/rowparse"
	"github.com/sbathletics/gridiron-ingest/internal/ingest/tabular"
	"github.com/sbathletics/gridiron-ingest/internal/platform/logging"
)

// IngestionService turns one uploaded file into one transactional merge
// against the store. Re-running any file converges to the same state.
type IngestionService struct {
	store   Store
	fetcher ObjectFetcher
	log     *logging.Logger
	now     func() time.Time
}

func NewIngestionService(store Store, fetcher ObjectFetcher, log *logging.Logger) *IngestionService {
	if log == nil {
		log = logging.Default()
	}
	return &IngestionService{
		store:   store,
		fetcher: fetcher,
		log:     log,
		now:     time.Now,
	}
}

// IngestObject routes an object key by its directory prefix and runs the
// matching import. Keys outside the known prefixes are skipped, not failed:
// trigger buckets routinely carry unrelated uploads.
func (s *IngestionService) IngestObject(ctx context.Context, bucket, key string) (Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.IngestObject")
	defer span.End()

	result := Result{Bucket: bucket, Key: key}

	kind, ok := filename.KindForKey(key)
	if !ok {
		result.Skipped = true
		result.SkipReason = "unrecognized key prefix"
		s.log.InfoContext(ctx, "skipping object outside known prefixes", "bucket", bucket, "key", key)
		return result, nil
	}
	result.Kind = string(kind)

	data, err := s.fetcher.Fetch(ctx, bucket, key)
	if err != nil {
		return result, fmt.Errorf("fetch object %s/%s: %w", bucket, key, err)
	}

	switch kind {
	case filename.KindSchedule:
		err = s.importSchedule(ctx, key, data, &result)
	case filename.KindRoster:
		err = s.importRoster(ctx, key, data, &result)
	case filename.KindGameStats:
		err = s.importGameStats(ctx, key, data, &result)
	}
	if err != nil {
		return result, err
	}

	s.log.InfoContext(ctx, "ingestion complete",
		"key", key,
		"kind", result.Kind,
		"rows_total", result.Rows.Total,
		"rows_kept", result.Rows.Kept,
		"rows_dropped", result.Rows.Dropped,
		"inserted", result.Writes.Inserted,
		"updated", result.Writes.Updated,
	)
	return result, nil
}

func (s *IngestionService) importSchedule(ctx context.Context, key string, data []byte, result *Result) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.importSchedule")
	defer span.End()

	meta, err := filename.ParseSchedule(key)
	if err != nil {
		return err
	}

	records, err := tabular.Rows(data, key)
	if err != nil {
		return err
	}
	records = tabular.CanonicalizeScheduleHeaders(records)
	result.Rows.Total = len(records)

	type scheduleItem struct {
		row    int
		parsed rowparse.ScheduleRow
	}
	items := make([]scheduleItem, 0, len(records))
	for i, rec := range records {
		parsed, err := rowparse.BindScheduleRow(ctx, rec)
		if err != nil {
			result.reject(i+1, err.Error())
			continue
		}
		items = append(items, scheduleItem{row: i + 1, parsed: parsed})
	}
	if len(items) == 0 {
		return fmt.Errorf("%w: %s", ErrNoUsableRows, key)
	}

	return s.store.RunInTx(ctx, func(ctx context.Context, r Repos) error {
		seasonRow, err := r.Seasons.GetByYear(ctx, meta.SeasonYear)
		if err != nil {
			if errors.Is(err, season.ErrNotFound) {
				return fmt.Errorf("%w: season %d", ErrMissingReference, meta.SeasonYear)
			}
			return fmt.Errorf("load season %d: %w", meta.SeasonYear, err)
		}

		teams := newTeamResolver(r.Teams)
		for _, item := range items {
			homeTeam, err := teams.resolve(ctx, item.parsed.HomeTeam)
			if err != nil {
				if rejectable(err) {
					result.reject(item.row, err.Error())
					continue
				}
				return err
			}
			awayTeam, err := teams.resolve(ctx, item.parsed.AwayTeam)
			if err != nil {
				if rejectable(err) {
					result.reject(item.row, err.Error())
					continue
				}
				return err
			}
			result.Rows.Kept++

			existing, err := r.Games.GetByNaturalKey(ctx, seasonRow.ID, item.parsed.Date, homeTeam.ID, awayTeam.ID)
			switch {
			case err == nil:
				if item.parsed.WeekNo == nil && item.parsed.Location == nil {
					result.Writes.Skipped++
					continue
				}
				if err := r.Games.UpdateSchedule(ctx, existing.ID, item.parsed.WeekNo, item.parsed.Location); err != nil {
					return fmt.Errorf("update game %d: %w", existing.ID, err)
				}
				result.Writes.Updated++
			case errors.Is(err, game.ErrNotFound):
				// Scores stay zero on insert; the stats kind owns them.
				next := game.Game{
					SeasonID:   seasonRow.ID,
					Date:       item.parsed.Date,
					HomeTeamID: homeTeam.ID,
					AwayTeamID: awayTeam.ID,
					WeekNumber: item.parsed.WeekNo,
					Location:   item.parsed.Location,
				}
				if err := r.Games.Insert(ctx, next); err != nil {
					return fmt.Errorf("insert game: %w", err)
				}
				result.Writes.Inserted++
			default:
				return fmt.Errorf("find game: %w", err)
			}
		}
		return nil
	})
}

func (s *IngestionService) importRoster(ctx context.Context, key string, data []byte, result *Result) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.importRoster")
	defer span.End()

	meta, err := filename.ParseRoster(key)
	if err != nil {
		return err
	}

	records, err := tabular.Rows(data, key)
	if err != nil {
		return err
	}
	records = tabular.CanonicalizeRosterHeaders(records)
	result.Rows.Total = len(records)

	type rosterItem struct {
		row    int
		parsed rowparse.RosterRow
	}
	items := make([]rosterItem, 0, len(records))
	for i, rec := range records {
		parsed, err := rowparse.BindRosterRow(ctx, rec)
		if err != nil {
			result.reject(i+1, err.Error())
			continue
		}
		items = append(items, rosterItem{row: i + 1, parsed: parsed})
	}
	if len(items) == 0 {
		return fmt.Errorf("%w: %s", ErrNoUsableRows, key)
	}

	startDate := s.now().UTC().Truncate(24 * time.Hour)

	return s.store.RunInTx(ctx, func(ctx context.Context, r Repos) error {
		seasonRow, err := r.Seasons.GetByYear(ctx, meta.SeasonYear)
		if err != nil {
			if errors.Is(err, season.ErrNotFound) {
				return fmt.Errorf("%w: season %d", ErrMissingReference, meta.SeasonYear)
			}
			return fmt.Errorf("load season %d: %w", meta.SeasonYear, err)
		}
		teamRow, err := r.Teams.GetByName(ctx, meta.TeamName)
		if err != nil {
			if errors.Is(err, team.ErrNotFound) {
				return fmt.Errorf("%w: team %q", ErrMissingReference, meta.TeamName)
			}
			return fmt.Errorf("load team %q: %w", meta.TeamName, err)
		}

		for _, item := range items {
			playerID, err := s.resolvePlayerID(ctx, r, item.parsed)
			if err != nil {
				return err
			}
			result.Rows.Kept++

			profile := player.Player{
				ID:             playerID,
				FirstName:      item.parsed.FirstName,
				LastName:       item.parsed.LastName,
				Height:         item.parsed.Height,
				Weight:         item.parsed.Weight,
				GraduationYear: item.parsed.GraduationYear,
			}
			if err := r.Players.Upsert(ctx, profile); err != nil {
				return fmt.Errorf("upsert player %s: %w", playerID, err)
			}

			pos1, err := validPosition(ctx, r, item.parsed.Position1)
			if err != nil {
				return err
			}
			pos2, err := validPosition(ctx, r, item.parsed.Position2)
			if err != nil {
				return err
			}
			pos3, err := validPosition(ctx, r, item.parsed.Position3)
			if err != nil {
				return err
			}

			open, err := r.Roster.GetOpen(ctx, teamRow.ID, seasonRow.ID, playerID)
			switch {
			case err == nil:
				if err := r.Roster.UpdateOpen(ctx, open.ID, pos1, pos2, pos3, item.parsed.JerseyNumber); err != nil {
					return fmt.Errorf("update roster entry %d: %w", open.ID, err)
				}
				result.Writes.Updated++
			case errors.Is(err, roster.ErrNotFound):
				entry := roster.Entry{
					TeamID:       teamRow.ID,
					PlayerID:     playerID,
					SeasonID:     seasonRow.ID,
					Position1:    pos1,
					Position2:    pos2,
					Position3:    pos3,
					JerseyNumber: item.parsed.JerseyNumber,
					StartDate:    startDate,
					EndDate:      roster.OpenEndDate,
				}
				if err := r.Roster.Insert(ctx, entry); err != nil {
					return fmt.Errorf("insert roster entry for %s: %w", playerID, err)
				}
				result.Writes.Inserted++
			default:
				return fmt.Errorf("find roster entry for %s: %w", playerID, err)
			}
		}
		return nil
	})
}

func (s *IngestionService) importGameStats(ctx context.Context, key string, data []byte, result *Result) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.importGameStats")
	defer span.End()

	meta, err := filename.ParseGameStats(key)
	if err != nil {
		return err
	}

	records, err := tabular.GameStatsRows(data, key)
	if err != nil {
		return err
	}
	records = tabular.CanonicalizeGameStatsHeaders(records)
	result.Rows.Total = len(records)

	type statsItem struct {
		row    int
		parsed rowparse.StatsRow
	}
	items := make([]statsItem, 0, len(records))
	for i, rec := range records {
		parsed, err := rowparse.BindStatsRow(ctx, rec)
		if err != nil {
			result.reject(i+1, err.Error())
			continue
		}
		items = append(items, statsItem{row: i + 1, parsed: parsed})
	}
	if len(items) == 0 {
		return fmt.Errorf("%w: %s", ErrNoUsableRows, key)
	}

	return s.store.RunInTx(ctx, func(ctx context.Context, r Repos) error {
		if _, err := r.Games.GetByID(ctx, meta.GameID); err != nil {
			if errors.Is(err, game.ErrNotFound) {
				return fmt.Errorf("%w: game %d", ErrMissingReference, meta.GameID)
			}
			return fmt.Errorf("load game %d: %w", meta.GameID, err)
		}
		teamRow, err := r.Teams.GetByName(ctx, meta.TeamName)
		if err != nil {
			if errors.Is(err, team.ErrNotFound) {
				return fmt.Errorf("%w: team %q", ErrMissingReference, meta.TeamName)
			}
			return fmt.Errorf("load team %q: %w", meta.TeamName, err)
		}

		entries, err := r.Roster.ListOpenByTeam(ctx, teamRow.ID)
		if err != nil {
			return fmt.Errorf("list open roster for team %d: %w", teamRow.ID, err)
		}
		byJersey := make(map[string]string, len(entries))
		for _, e := range entries {
			if e.JerseyNumber == nil {
				continue
			}
			jersey := normalizeJersey(*e.JerseyNumber)
			if _, taken := byJersey[jersey]; !taken {
				byJersey[jersey] = e.PlayerID
			}
		}

		actions, err := r.StatActions.ListAll(ctx)
		if err != nil {
			return fmt.Errorf("list stat actions: %w", err)
		}
		actionByName := make(map[string]int64, len(actions))
		for _, a := range actions {
			actionByName[strings.ToLower(a.Name)] = a.ID
		}

		plays := make([]gameplay.Play, 0, len(items))
		for _, item := range items {
			playerID, ok := byJersey[normalizeJersey(item.parsed.Jersey)]
			if !ok {
				result.reject(item.row, fmt.Sprintf("no rostered player wears %s", item.parsed.Jersey))
				continue
			}
			actionID, ok := actionByName[strings.ToLower(item.parsed.StatAction)]
			if !ok {
				result.reject(item.row, fmt.Sprintf("unknown stat action %q", item.parsed.StatAction))
				continue
			}
			result.Rows.Kept++
			plays = append(plays, gameplay.Play{
				GameID:       meta.GameID,
				PlayNo:       item.parsed.PlayNo,
				PlayerID:     playerID,
				TeamID:       teamRow.ID,
				StatType:     item.parsed.StatType,
				StatActionID: actionID,
				Yards:        item.parsed.Yards,
				IsTouchdown:  item.parsed.IsTD,
				IsSafety:     item.parsed.IsSafety,
				SackWeight:   gameplay.SackWeightFor(item.parsed.StatAction),
				SourceFile:   key,
				Notes:        item.parsed.Notes,
			})
		}
		if len(plays) == 0 {
			return fmt.Errorf("%w: every row of %s was rejected", ErrNoUsableRows, key)
		}

		deleted, err := r.GamePlays.DeleteByGame(ctx, meta.GameID)
		if err != nil {
			return fmt.Errorf("clear plays for game %d: %w", meta.GameID, err)
		}
		result.PlaysDeleted = deleted
		if err := r.GamePlays.InsertMany(ctx, plays); err != nil {
			return fmt.Errorf("insert plays for game %d: %w", meta.GameID, err)
		}
		result.Writes.Inserted = len(plays)
		return nil
	})
}

// resolvePlayerID finds or mints the synthetic player id for a roster row.
// An explicit id column wins; an exact single name match reuses the stored
// id; anything else, including an ambiguous name, gets the lowest free
// suffix for its base.
func (s *IngestionService) resolvePlayerID(ctx context.Context, r Repos, row rowparse.RosterRow) (string, error) {
	if row.PlayerID != nil {
		return strings.ToUpper(*row.PlayerID), nil
	}

	matches, err := r.Players.ListByName(ctx, row.FirstName, row.LastName)
	if err != nil {
		return "", fmt.Errorf("find player %s %s: %w", row.FirstName, row.LastName, err)
	}
	if len(matches) == 1 {
		return matches[0].ID, nil
	}

	base := player.IDBase(row.FirstName, row.LastName)
	taken, err := r.Players.ListIDsByBase(ctx, base)
	if err != nil {
		return "", fmt.Errorf("list ids for base %s: %w", base, err)
	}
	suffix, err := player.NextSuffix(taken)
	if err != nil {
		return "", fmt.Errorf("allocate id for %s %s: %w", row.FirstName, row.LastName, err)
	}
	return base + suffix, nil
}

// validPosition uppercases a position code and nulls it out when the code
// is not in the reference table. Bad codes are common in hand-kept sheets
// and must not block the row.
func validPosition(ctx context.Context, r Repos, code *string) (*string, error) {
	if code == nil {
		return nil, nil
	}
	upper := strings.ToUpper(strings.TrimSpace(*code))
	if upper == "" {
		return nil, nil
	}
	ok, err := r.Positions.Exists(ctx, upper)
	if err != nil {
		return nil, fmt.Errorf("check position %q: %w", upper, err)
	}
	if !ok {
		return nil, nil
	}
	return &upper, nil
}

// teamResolver caches per-run team lookups for schedule ingestion. Numeric
// cells are store ids and must already exist; names are matched exactly,
// then by letters-only reduction, and finally created.
type teamResolver struct {
	repo      team.Repository
	byName    map[string]team.Team
	byLetters map[string]team.Team
	loaded    bool
}

func newTeamResolver(repo team.Repository) *teamResolver {
	return &teamResolver{repo: repo, byName: make(map[string]team.Team)}
}

func (tr *teamResolver) resolve(ctx context.Context, ref string) (team.Team, error) {
	ref = strings.TrimSpace(ref)
	if cached, ok := tr.byName[strings.ToLower(ref)]; ok {
		return cached, nil
	}

	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		found, err := tr.repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, team.ErrNotFound) {
				return team.Team{}, rejectErr{fmt.Sprintf("no team with id %d", id)}
			}
			return team.Team{}, fmt.Errorf("load team %d: %w", id, err)
		}
		tr.byName[strings.ToLower(ref)] = found
		return found, nil
	}

	found, err := tr.repo.GetByName(ctx, ref)
	switch {
	case err == nil:
		tr.byName[strings.ToLower(ref)] = found
		return found, nil
	case errors.Is(err, team.ErrNotFound):
	default:
		return team.Team{}, fmt.Errorf("load team %q: %w", ref, err)
	}

	if !tr.loaded {
		all, err := tr.repo.ListAll(ctx)
		if err != nil {
			return team.Team{}, fmt.Errorf("list teams: %w", err)
		}
		tr.byLetters = make(map[string]team.Team, len(all))
		for _, t := range all {
			tr.byLetters[team.LettersKey(t.Name)] = t
		}
		tr.loaded = true
	}
	if fuzzy, ok := tr.byLetters[team.LettersKey(ref)]; ok {
		tr.byName[strings.ToLower(ref)] = fuzzy
		return fuzzy, nil
	}

	created, err := tr.repo.Create(ctx, ref)
	if err != nil {
		return team.Team{}, fmt.Errorf("create team %q: %w", ref, err)
	}
	tr.byName[strings.ToLower(ref)] = created
	tr.byLetters[team.LettersKey(created.Name)] = created
	return created, nil
}

// normalizeJersey strips leading zeros so "07" and "7" compare equal; an
// all-zero jersey stays "0".
func normalizeJersey(jersey string) string {
	trimmed := strings.TrimLeft(strings.TrimSpace(jersey), "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

// rejectErr marks an error that drops the current row instead of aborting
// the run.
type rejectErr struct {
	reason string
}

func (e rejectErr) Error() string { return e.reason }

func rejectable(err error) bool {
	var re rejectErr
	return errors.As(err, &re)
}
