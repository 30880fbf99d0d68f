package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/testlens-cli/internal/criteria"
	"github.com/KaramelBytes/testlens-cli/internal/detect"
	"github.com/KaramelBytes/testlens-cli/internal/export"
	"github.com/KaramelBytes/testlens-cli/internal/utils"
)

var (
	anaCriteriaPath string
	anaSaved        bool
	anaItems        []string
	anaOutput       string
	anaSummaryOut   string
	anaSheetName    string
	anaSheetIndex   int
	anaExclude      []string
	anaStrict       bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Classify test results against bounds and report anomalies",
	Long: `Analyze loads a test-results spreadsheet, classifies every measurement
against the supplied acceptance bounds, and prints a summary. Criteria come
from a JSON file (--criteria), the saved-criteria store (--saved), or both.
With --output the full classified dataset is exported as an xlsx workbook
with abnormal rows highlighted.

Running without criteria is valid: every record is reported NOT_ANALYZED.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tbl, err := readTable(args[0], anaSheetName, anaSheetIndex)
		if err != nil {
			return err
		}

		var entries []criteria.Entry
		if anaSaved {
			store, err := openStore()
			if err != nil {
				return err
			}
			saved, err := store.Load("")
			store.Close()
			if err != nil {
				return err
			}
			entries = append(entries, saved...)
		}
		if anaCriteriaPath != "" {
			fileEntries, err := criteria.ReadFile(anaCriteriaPath)
			if err != nil {
				return err
			}
			entries = append(entries, fileEntries...)
		}

		// Criteria for excluded summary-style results never apply.
		excluded := make(map[string]bool)
		for _, name := range effectiveConfig().ExcludedResults() {
			excluded[name] = true
		}
		for _, name := range anaExclude {
			excluded[name] = true
		}
		kept := entries[:0]
		for _, e := range entries {
			if excluded[e.ResultName] {
				fmt.Fprintf(os.Stderr, "⚠ Skipping criterion for excluded result %q\n", e.ResultName)
				continue
			}
			kept = append(kept, e)
		}

		set, rejected := criteria.NewSet(kept)
		if len(rejected) > 0 {
			if anaStrict {
				return fmt.Errorf("%d invalid criteria, first: %w", len(rejected), rejected[0])
			}
			for _, r := range rejected {
				fmt.Fprintf(os.Stderr, "⚠ Dropped %v\n", r)
			}
		}

		records := tbl.Records
		if len(anaItems) > 0 {
			records = tbl.FilterByItems(anaItems)
		}

		classified, err := detect.Classify(cmd.Context(), records, set)
		if err != nil {
			return err
		}
		sum := detect.Summarize(classified)
		sum.RunID = detect.NewRunID()

		md := sum.Markdown()
		if anaSummaryOut != "" {
			if err := utils.SafeWriteFile(anaSummaryOut, []byte(md)); err != nil {
				return fmt.Errorf("write summary: %w", err)
			}
			fmt.Printf("✓ Wrote summary to %s\n", anaSummaryOut)
		} else {
			fmt.Println(md)
		}
		if anaOutput != "" {
			if err := export.WriteFile(anaOutput, tbl.Header, classified, sum.RunID); err != nil {
				return fmt.Errorf("write results workbook: %w", err)
			}
			fmt.Printf("✓ Wrote highlighted results to %s\n", anaOutput)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaCriteriaPath, "criteria", "c", "", "criteria JSON file ({item_number, result_name, lower_bound, upper_bound} records)")
	analyzeCmd.Flags().BoolVar(&anaSaved, "saved", false, "also apply criteria from the saved-criteria store")
	analyzeCmd.Flags().StringSliceVar(&anaItems, "items", nil, "restrict analysis to these ITEM_NUMBERs (default: all)")
	analyzeCmd.Flags().StringVarP(&anaOutput, "output", "o", "", "path to write the highlighted xlsx export")
	analyzeCmd.Flags().StringVar(&anaSummaryOut, "summary-out", "", "path to write the Markdown summary (default: stdout)")
	analyzeCmd.Flags().StringVar(&anaSheetName, "sheet-name", "", "XLSX: sheet name to load")
	analyzeCmd.Flags().IntVar(&anaSheetIndex, "sheet-index", 0, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	analyzeCmd.Flags().StringSliceVar(&anaExclude, "exclude-result", nil, "additional result names whose criteria are ignored")
	analyzeCmd.Flags().BoolVar(&anaStrict, "strict", false, "abort when any criterion has lower > upper instead of dropping it")
}
