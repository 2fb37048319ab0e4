package player

import (
	"fmt"
	"testing"
)

func TestIDBase(t *testing.T) {
	t.Parallel()

	cases := []struct {
		first string
		last  string
		want  string
	}{
		{"John", "Smithson", "SMITJO"},
		{"Al", "Lee", "LEEXAL"},
		{"J", "Wu", "WUXXJX"},
		{"D'Marco", "O'Neal-Jones", "ONEADM"},
		{"", "", "XXXXXX"},
	}
	for _, tc := range cases {
		if got := IDBase(tc.first, tc.last); got != tc.want {
			t.Fatalf("IDBase(%q, %q): got=%s want=%s", tc.first, tc.last, got, tc.want)
		}
	}
}

func TestNextSuffix(t *testing.T) {
	t.Parallel()

	suffix, err := NextSuffix(nil)
	if err != nil {
		t.Fatalf("next suffix: %v", err)
	}
	if suffix != "01" {
		t.Fatalf("unexpected first suffix: %s", suffix)
	}

	suffix, err = NextSuffix([]string{"SMITJO01", "SMITJO03"})
	if err != nil {
		t.Fatalf("next suffix: %v", err)
	}
	if suffix != "02" {
		t.Fatalf("expected lowest gap suffix 02, got %s", suffix)
	}
}

func TestNextSuffixExhausted(t *testing.T) {
	t.Parallel()

	ids := make([]string, 0, maxSuffix)
	for i := 1; i <= maxSuffix; i++ {
		ids = append(ids, fmt.Sprintf("SMITJO%02d", i))
	}
	if _, err := NextSuffix(ids); err == nil {
		t.Fatal("expected error when all suffixes are taken")
	}
}
