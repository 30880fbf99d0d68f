package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/testlens-cli/internal/criteria"
)

// runCmd executes the root command with args, resetting sticky flag state
// that persists across invocations.
func runCmd(t *testing.T, args ...string) {
	t.Helper()
	anaCriteriaPath = ""
	anaSaved = false
	anaItems = nil
	anaOutput = ""
	anaSummaryOut = ""
	anaSheetName = ""
	anaSheetIndex = 0
	anaExclude = nil
	anaStrict = false
	insSheetName = ""
	insSheetIndex = 0
	insProduct = ""
	criImportProduct = ""
	criExportProduct = ""
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
}

func writeResultsFixture(t *testing.T, dir string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	rows := [][]interface{}{
		{"ITEM_NUMBER", "TEST_NUMBER", "RESULT_NAME", "RESPONSE", "OPERATOR"},
		{"A001", 100, "Dim Stab Warp", -5.0, "jlm"},
		{"A001", 100, "Dim Stab Warp", -3.0, "jlm"},
		{"A001", 101, "Dim Stab Warp", -2.75, "kp"},
		{"B002", 200, "Test Complete?", "Yes", "kp"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("write fixture row: %v", err)
		}
	}
	path := filepath.Join(dir, "results.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save fixture: %v", err)
	}
	return path
}

func TestCLI_AnalyzeWithCriteriaFile(t *testing.T) {
	home := t.TempDir()
	oldHome := os.Getenv("HOME")
	defer os.Setenv("HOME", oldHome)
	os.Setenv("HOME", home)

	dataPath := writeResultsFixture(t, home)
	criteriaPath := filepath.Join(home, "criteria.json")
	err := criteria.WriteFile(criteriaPath, []criteria.Entry{
		{ItemNumber: "A001", ResultName: "Dim Stab Warp", LowerBound: -4.75, UpperBound: -2.75},
	})
	if err != nil {
		t.Fatalf("write criteria: %v", err)
	}

	outPath := filepath.Join(home, "out.xlsx")
	sumPath := filepath.Join(home, "summary.md")
	runCmd(t, "analyze", dataPath, "-c", criteriaPath, "-o", outPath, "--summary-out", sumPath)

	body, err := os.ReadFile(sumPath)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	md := string(body)
	if !strings.Contains(md, "Total: 4 (normal 2, abnormal 1, not analyzed 1)") {
		t.Fatalf("unexpected summary:\n%s", md)
	}
	if !strings.Contains(md, "- test 100: 1 abnormal (Dim Stab Warp)") {
		t.Fatalf("summary missing affected session:\n%s", md)
	}

	f, err := excelize.OpenFile(outPath)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Results")
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("export rows = %d, want header + 4", len(rows))
	}
	if got := rows[1][len(rows[1])-1]; got != "ABNORMAL" {
		t.Fatalf("first data row status = %q", got)
	}
}

func TestCLI_AnalyzeWithoutCriteria(t *testing.T) {
	home := t.TempDir()
	oldHome := os.Getenv("HOME")
	defer os.Setenv("HOME", oldHome)
	os.Setenv("HOME", home)

	dataPath := writeResultsFixture(t, home)
	sumPath := filepath.Join(home, "summary.md")
	runCmd(t, "analyze", dataPath, "--summary-out", sumPath)

	body, err := os.ReadFile(sumPath)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	if !strings.Contains(string(body), "Total: 4 (normal 0, abnormal 0, not analyzed 4)") {
		t.Fatalf("unexpected summary:\n%s", body)
	}
}

func TestCLI_CriteriaStoreRoundTrip(t *testing.T) {
	home := t.TempDir()
	oldHome := os.Getenv("HOME")
	defer os.Setenv("HOME", oldHome)
	os.Setenv("HOME", home)

	runCmd(t, "criteria", "set", "A001", "Dim Stab Warp", "-4.75", "-2.75")
	runCmd(t, "criteria", "set", "B002", "Dim Stab Fill", "0", "10")

	expPath := filepath.Join(home, "exported.json")
	runCmd(t, "criteria", "export", expPath)
	entries, err := criteria.ReadFile(expPath)
	if err != nil {
		t.Fatalf("read exported criteria: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("exported = %d entries, want 2", len(entries))
	}

	// Saved criteria feed analysis directly.
	dataPath := writeResultsFixture(t, home)
	sumPath := filepath.Join(home, "summary.md")
	runCmd(t, "analyze", dataPath, "--saved", "--summary-out", sumPath)
	body, err := os.ReadFile(sumPath)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	if !strings.Contains(string(body), "abnormal 1") {
		t.Fatalf("saved criteria not applied:\n%s", body)
	}

	runCmd(t, "criteria", "remove", "A001")
	runCmd(t, "criteria", "export", expPath)
	entries, err = criteria.ReadFile(expPath)
	if err != nil {
		t.Fatalf("read exported criteria: %v", err)
	}
	if len(entries) != 1 || entries[0].ItemNumber != "B002" {
		t.Fatalf("after remove: %+v", entries)
	}
}

func TestCLI_InspectRejectsBadSchema(t *testing.T) {
	home := t.TempDir()
	oldHome := os.Getenv("HOME")
	defer os.Setenv("HOME", oldHome)
	os.Setenv("HOME", home)

	p := filepath.Join(home, "bad.csv")
	if err := os.WriteFile(p, []byte("ITEM_NUMBER,RESULT_NAME\nA001,Warp\n"), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	insSheetName, insSheetIndex, insProduct = "", 0, ""
	rootCmd.SetArgs([]string{"inspect", p})
	err := rootCmd.Execute()
	if err == nil {
		t.Fatalf("expected schema error")
	}
	if !strings.Contains(err.Error(), "TEST_NUMBER") || !strings.Contains(err.Error(), "RESPONSE") {
		t.Fatalf("error should name missing columns: %v", err)
	}
}
