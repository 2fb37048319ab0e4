// Package rowparse binds canonicalized records onto typed rows, applying the
// loose cell coercions spreadsheet exports require.
package rowparse

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// truthy holds every cell spelling treated as an affirmative mark. Exports
// flag touchdowns and safeties with anything from "1" to a literal check
// mark.
var truthy = map[string]struct{}{
	"1":       {},
	"true":    {},
	"t":       {},
	"yes":     {},
	"y":       {},
	"x":       {},
	"✓":       {},
	"check":   {},
	"checked": {},
}

var dateLayouts = []string{"2006-01-02", "01/02/2006", "01/02/06"}

// ToInt reads a cell as an integer. Numeric exports frequently render whole
// numbers as floats ("12.0"), so the value is parsed as a float and
// truncated toward zero. Blank and unparseable cells both yield nil; bad
// text in an optional column must not cost the row.
func ToInt(cell string) *int {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return nil
	}
	n := int(f)
	return &n
}

// JerseyText normalizes a jersey cell. Numeric jerseys render as canonical
// decimal text, which strips both the ".0" tail a numeric column picks up
// and any leading zeros; non-numeric jerseys pass through trimmed. A blank
// cell yields nil.
func JerseyText(cell string) *string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		cell = strconv.Itoa(int(f))
	}
	return &cell
}

// ToBool reports whether a cell is an affirmative mark. Anything outside
// the known truthy spellings, including blank, is false.
func ToBool(cell string) bool {
	_, ok := truthy[strings.ToLower(strings.TrimSpace(cell))]
	return ok
}

// ParseDate reads a cell in ISO or US slash form. Blank and unrecognized
// cells both yield nil; whether a missing date rejects the row is the
// binder's call, not the coercion's.
func ParseDate(cell string) *time.Time {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, cell); err == nil {
			return &d
		}
	}
	return nil
}

// ParsePlayNo reads a play number cell. Plays are numbered from 1; zero,
// negative, blank and non-numeric cells are all errors so callers drop the
// row.
func ParsePlayNo(cell string) (int, error) {
	n := ToInt(cell)
	if n == nil {
		return 0, fmt.Errorf("missing or non-numeric play number %q", strings.TrimSpace(cell))
	}
	if *n < 1 {
		return 0, fmt.Errorf("play number must be positive, got %d", *n)
	}
	return *n, nil
}

// Yards combines the two yardage component cells and the sign cell into a
// signed total rendered as text. Missing and unparseable components count
// as zero; a sign cell starting with "neg" (any case) negates the total.
func Yards(a, b, sign string) string {
	total := 0
	for _, cell := range []string{a, b} {
		if n := ToInt(cell); n != nil {
			total += *n
		}
	}
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(sign)), "neg") {
		total = -total
	}
	return strconv.Itoa(total)
}
