package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/testlens-cli/internal/dataset"
)

var (
	insSheetName  string
	insSheetIndex int
	insProduct    string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Validate a results file and show its structure",
	Long:  `Inspect loads a test-results spreadsheet (xlsx/csv/tsv), validates the required columns, and prints the products, test sessions, and analyzable result names it contains. With --product, each result name is shown with the observed value range to help pick bounds.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tbl, err := readTable(args[0], insSheetName, insSheetIndex)
		if err != nil {
			return err
		}
		st := tbl.Stats()
		fmt.Printf("✓ Loaded %s\n", filepath.Base(args[0]))
		fmt.Printf("Rows: %d\nProducts: %d\nTest sessions: %d\n", st.Rows, st.Items, st.Sessions)

		items := tbl.Items()
		if len(items) > 0 {
			fmt.Println("\n[PRODUCTS]")
			for _, it := range items {
				fmt.Printf("- %s\n", it)
			}
		}

		names := tbl.ResultNames(effectiveConfig().ExcludedResults())
		if len(names) > 0 {
			fmt.Println("\n[ANALYZABLE RESULTS]")
			for _, name := range names {
				if insProduct == "" {
					fmt.Printf("- %s\n", name)
					continue
				}
				if lo, hi, ok := tbl.ValueRange(insProduct, name); ok {
					fmt.Printf("- %s: observed %g to %g\n", name, lo, hi)
				} else {
					fmt.Printf("- %s: no numeric data for %s\n", name, insProduct)
				}
			}
		}
		return nil
	},
}

// readTable loads a tabular file, resolving sheet selection from flags with
// config fallback.
func readTable(path, sheetName string, sheetIndex int) (*dataset.Table, error) {
	c := effectiveConfig()
	if sheetName == "" {
		sheetName = c.SheetName
	}
	if sheetIndex <= 0 {
		sheetIndex = c.SheetIndex
	}
	return dataset.ReadFile(path, sheetName, sheetIndex)
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVar(&insSheetName, "sheet-name", "", "XLSX: sheet name to load")
	inspectCmd.Flags().IntVar(&insSheetIndex, "sheet-index", 0, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	inspectCmd.Flags().StringVarP(&insProduct, "product", "p", "", "show observed value ranges for this product")
}
