package rowparse

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/sbathletics/gridiron-ingest/internal/ingest/tabular"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// StatsRow is one play log line after coercion. Jersey stays text so
// non-numeric jerseys survive to the roster lookup.
type StatsRow struct {
	PlayNo     int    `validate:"gte=1"`
	Jersey     string `validate:"required"`
	StatAction string `validate:"required"`
	StatType   *string
	IsTD       bool
	IsSafety   bool
	Yards      string
	Notes      *string
}

// RosterRow is one roster line after coercion.
type RosterRow struct {
	FirstName      string `validate:"required"`
	LastName       string `validate:"required"`
	JerseyNumber   *string
	GraduationYear *int
	Height         *int
	Weight         *int
	Position1      *string
	Position2      *string
	Position3      *string
	PlayerID       *string
}

// ScheduleRow is one schedule line after coercion.
type ScheduleRow struct {
	Date      time.Time `validate:"required"`
	HomeTeam  string    `validate:"required"`
	AwayTeam  string    `validate:"required"`
	WeekNo    *int
	Location  *string
	HomeScore *int
	AwayScore *int
}

// BindStatsRow coerces a canonicalized game-stats record. The play number
// and jersey are mandatory; rows that fail here are dropped by the caller.
func BindStatsRow(ctx context.Context, rec tabular.Record) (StatsRow, error) {
	var row StatsRow

	playNo, err := ParsePlayNo(rec[tabular.FieldPlayNo])
	if err != nil {
		return row, fmt.Errorf("play_no: %w", err)
	}
	jersey := JerseyText(rec[tabular.FieldPlayerNo])
	if jersey == nil {
		return row, fmt.Errorf("player_no: missing")
	}

	row = StatsRow{
		PlayNo:     playNo,
		Jersey:     *jersey,
		StatAction: strings.TrimSpace(rec[tabular.FieldStatAction]),
		StatType:   textOrNil(rec[tabular.FieldStatType]),
		IsTD:       ToBool(rec[tabular.FieldIsTD]),
		IsSafety:   ToBool(rec[tabular.FieldIsSafety]),
		Yards:      Yards(rec[tabular.FieldYardsA], rec[tabular.FieldYardsB], rec[tabular.FieldYardsC]),
		Notes:      textOrNil(rec[tabular.FieldNotes]),
	}
	if err := validate.StructCtx(ctx, row); err != nil {
		return StatsRow{}, fmt.Errorf("validate stats row: %w", err)
	}
	return row, nil
}

// BindRosterRow coerces a canonicalized roster record.
func BindRosterRow(ctx context.Context, rec tabular.Record) (RosterRow, error) {
	row := RosterRow{
		FirstName:      strings.TrimSpace(rec[tabular.FieldFirstName]),
		LastName:       strings.TrimSpace(rec[tabular.FieldLastName]),
		JerseyNumber:   JerseyText(rec[tabular.FieldJerseyNumber]),
		GraduationYear: ToInt(rec[tabular.FieldGraduationYear]),
		Height:         ToInt(rec[tabular.FieldHeight]),
		Weight:         ToInt(rec[tabular.FieldWeight]),
		Position1:      textOrNil(rec[tabular.FieldPosition1]),
		Position2:      textOrNil(rec[tabular.FieldPosition2]),
		Position3:      textOrNil(rec[tabular.FieldPosition3]),
		PlayerID:       textOrNil(rec[tabular.FieldPlayerID]),
	}
	if err := validate.StructCtx(ctx, row); err != nil {
		return RosterRow{}, fmt.Errorf("validate roster row: %w", err)
	}
	return row, nil
}

// BindScheduleRow coerces a canonicalized schedule record. The date is the
// one mandatory coerced field; an unreadable date cell rejects the row.
func BindScheduleRow(ctx context.Context, rec tabular.Record) (ScheduleRow, error) {
	var row ScheduleRow

	date := ParseDate(rec[tabular.FieldDate])
	if date == nil {
		return row, fmt.Errorf("date: missing or unrecognized %q", strings.TrimSpace(rec[tabular.FieldDate]))
	}

	row = ScheduleRow{
		Date:      *date,
		HomeTeam:  strings.TrimSpace(rec[tabular.FieldHomeTeam]),
		AwayTeam:  strings.TrimSpace(rec[tabular.FieldAwayTeam]),
		WeekNo:    ToInt(rec[tabular.FieldWeekNo]),
		Location:  textOrNil(rec[tabular.FieldLocation]),
		HomeScore: ToInt(rec[tabular.FieldHomeScore]),
		AwayScore: ToInt(rec[tabular.FieldAwayScore]),
	}
	if err := validate.StructCtx(ctx, row); err != nil {
		return ScheduleRow{}, fmt.Errorf("validate schedule row: %w", err)
	}
	return row, nil
}

func textOrNil(cell string) *string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	return &cell
}
