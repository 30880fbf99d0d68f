package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	oldHome := os.Getenv("HOME")
	defer os.Setenv("HOME", oldHome)
	os.Setenv("HOME", home)

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.SheetIndex != 1 {
		t.Fatalf("sheet_index = %d, want 1", c.SheetIndex)
	}
	if want := filepath.Join(home, ".testlens", "criteria.db"); c.CriteriaDB != want {
		t.Fatalf("criteria_db = %q, want %q", c.CriteriaDB, want)
	}
	// No configured exclusions means the built-in list.
	excl := c.ExcludedResults()
	if len(excl) == 0 || excl[len(excl)-1] != "Test Complete?" {
		t.Fatalf("excluded results = %v", excl)
	}
}

func TestSaveAndReload(t *testing.T) {
	home := t.TempDir()
	oldHome := os.Getenv("HOME")
	defer os.Setenv("HOME", oldHome)
	os.Setenv("HOME", home)

	c := &Global{
		CriteriaDB:          filepath.Join(home, "alt.db"),
		SheetName:           "Data",
		SheetIndex:          2,
		ExcludedResultNames: []string{"Summary Field"},
	}
	if err := Save(c, ""); err != nil {
		t.Fatalf("Save: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(home, ".testlens", "config.yaml"))
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(b), "sheet_name: Data") {
		t.Fatalf("unexpected config body:\n%s", b)
	}

	got, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.SheetName != "Data" || got.SheetIndex != 2 || got.CriteriaDB != c.CriteriaDB {
		t.Fatalf("reloaded = %+v", got)
	}
	if excl := got.ExcludedResults(); len(excl) != 1 || excl[0] != "Summary Field" {
		t.Fatalf("excluded results = %v", excl)
	}
}
