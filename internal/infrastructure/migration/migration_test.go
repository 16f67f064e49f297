package migration

import (
	"strings"
	"testing"
)

func TestMigrationsAreNamedAndIdempotent(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range migrations() {
		if m.Name == "" || m.Up == nil {
			t.Fatalf("incomplete migration: %+v", m)
		}
		if seen[m.Name] {
			t.Fatalf("duplicate migration %q", m.Name)
		}
		seen[m.Name] = true
	}
	for _, q := range []string{createResumes, updatedAtIndex} {
		if !strings.Contains(q, "IF NOT EXISTS") {
			t.Fatalf("statement must be rerunnable: %s", q)
		}
	}
}
