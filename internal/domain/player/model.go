package player

import (
	"fmt"
	"strings"
)

// Player carries the mutable athlete profile. The id is synthetic and stable
// across re-imports; see identity.go for the derivation rules.
type Player struct {
	ID             string
	FirstName      string
	LastName       string
	Height         *int
	Weight         *int
	GraduationYear *int
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(p.FirstName) == "" {
		return fmt.Errorf("player first name is required")
	}
	if strings.TrimSpace(p.LastName) == "" {
		return fmt.Errorf("player last name is required")
	}
	return nil
}
