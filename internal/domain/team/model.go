package team

import (
	"fmt"
	"strings"
)

// Team is a school program opponent or the program itself. Identity is the
// case-insensitive name; the id is a store surrogate.
type Team struct {
	ID   int64
	Name string
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	return nil
}

// LettersKey reduces a name to uppercase letters only, so spelling variants
// like "St. Thomas" and "St Thomas" compare equal.
func LettersKey(name string) string {
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return strings.ToUpper(b.String())
}
