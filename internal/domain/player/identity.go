package player

import (
	"fmt"
	"strings"
)

// Synthetic player ids are eight characters: four letters from the surname,
// two from the first name, and a two-digit collision suffix. Names shorter
// than the slot are padded with 'X'.
const (
	surnameLetters   = 4
	firstNameLetters = 2
	suffixDigits     = 2
	maxSuffix        = 99
)

// IDBase derives the six-letter base shared by every player with the same
// name shape.
func IDBase(firstName, lastName string) string {
	return padLetters(lastName, surnameLetters) + padLetters(firstName, firstNameLetters)
}

// NextSuffix returns the lowest unused two-digit suffix (01-99) given the
// ids already allocated for a base.
func NextSuffix(existingIDs []string) (string, error) {
	taken := make(map[string]struct{}, len(existingIDs))
	for _, id := range existingIDs {
		if len(id) >= suffixDigits {
			taken[id[len(id)-suffixDigits:]] = struct{}{}
		}
	}
	for i := 1; i <= maxSuffix; i++ {
		suffix := fmt.Sprintf("%02d", i)
		if _, ok := taken[suffix]; !ok {
			return suffix, nil
		}
	}
	return "", fmt.Errorf("no available id suffix: all %d are taken", maxSuffix)
}

func padLetters(text string, width int) string {
	var b strings.Builder
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	letters := strings.ToUpper(b.String())
	if len(letters) >= width {
		return letters[:width]
	}
	return letters + strings.Repeat("X", width-len(letters))
}
