package db

import (
	"io/fs"
	"strings"
	"testing"
)

func TestMigrationsArePaired(t *testing.T) {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(names) == 0 {
		t.Fatal("no migrations embedded")
	}
	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, n := range names {
		switch {
		case strings.HasSuffix(n, ".up.sql"):
			ups[strings.TrimSuffix(n, ".up.sql")] = true
		case strings.HasSuffix(n, ".down.sql"):
			downs[strings.TrimSuffix(n, ".down.sql")] = true
		default:
			t.Errorf("unexpected migration file %s", n)
		}
	}
	for base := range ups {
		if !downs[base] {
			t.Errorf("%s has no down migration", base)
		}
	}
}

func TestUsersMigrationEnforcesUniqueUsername(t *testing.T) {
	b, err := migrationsFS.ReadFile("migrations/000001_create_users.up.sql")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(b), "username          TEXT NOT NULL UNIQUE") {
		t.Errorf("users.username must be unique:\n%s", b)
	}
}
