package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/testlens-cli/internal/criteria"
	"github.com/KaramelBytes/testlens-cli/internal/utils"
)

var (
	criImportProduct string
	criExportProduct string
)

var criteriaCmd = &cobra.Command{
	Use:   "criteria",
	Short: "Manage saved detection criteria",
	Long:  `Criteria are acceptance bounds keyed by (product, result name), kept in a local database so they can be reused across analysis runs and shared as JSON files.`,
}

// openStore opens the configured criteria database, creating its directory
// on first use.
func openStore() (criteria.Store, error) {
	path := effectiveConfig().CriteriaDB
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		path = filepath.Join(home, ".testlens", "criteria.db")
	}
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("create criteria dir: %w", err)
	}
	return criteria.OpenSQLite(path)
}

var criteriaSetCmd = &cobra.Command{
	Use:   "set <product> <result-name> <lower> <upper>",
	Short: "Save one acceptance bound",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		lower, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("parse lower bound %q: %w", args[2], err)
		}
		upper, err := strconv.ParseFloat(args[3], 64)
		if err != nil {
			return fmt.Errorf("parse upper bound %q: %w", args[3], err)
		}
		entry := criteria.Entry{ItemNumber: args[0], ResultName: args[1], LowerBound: lower, UpperBound: upper}
		if _, rejected := criteria.NewSet([]criteria.Entry{entry}); len(rejected) > 0 {
			return rejected[0]
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()
		if _, err := store.Save([]criteria.Entry{entry}); err != nil {
			return err
		}
		fmt.Printf("✓ Saved bound (%g, %g) for %s / %s\n", lower, upper, args[0], args[1])
		return nil
	},
}

var criteriaListCmd = &cobra.Command{
	Use:   "list [product]",
	Short: "List saved criteria",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		product := ""
		if len(args) == 1 {
			product = args[0]
		}
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()
		entries, err := store.Load(product)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No saved criteria.")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("- %s / %s: %g to %g\n", e.ItemNumber, e.ResultName, e.LowerBound, e.UpperBound)
		}
		return nil
	},
}

var criteriaRemoveCmd = &cobra.Command{
	Use:   "remove <product> [result-name]",
	Short: "Remove saved criteria for a product",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result := ""
		if len(args) == 2 {
			result = args[1]
		}
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()
		n, err := store.Delete(args[0], result)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Removed %d criterion(s)\n", n)
		return nil
	},
}

var criteriaImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import criteria from a JSON file into the store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := criteria.ReadFile(args[0])
		if err != nil {
			return err
		}
		if criImportProduct != "" {
			kept := entries[:0]
			for _, e := range entries {
				if e.ItemNumber == criImportProduct {
					kept = append(kept, e)
				}
			}
			entries = kept
		}
		set, rejected := criteria.NewSet(entries)
		for _, r := range rejected {
			fmt.Fprintf(os.Stderr, "⚠ Skipped %v\n", r)
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()
		n, err := store.Save(set.Entries())
		if err != nil {
			return err
		}
		fmt.Printf("✓ Imported %d criterion(s) from %s\n", n, filepath.Base(args[0]))
		return nil
	},
}

var criteriaExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export saved criteria to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()
		entries, err := store.Load(criExportProduct)
		if err != nil {
			return err
		}
		if err := criteria.WriteFile(args[0], entries); err != nil {
			return err
		}
		fmt.Printf("✓ Exported %d criterion(s) to %s\n", len(entries), args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(criteriaCmd)
	criteriaCmd.AddCommand(criteriaSetCmd)
	// Stop flag parsing at the first positional so negative bounds like
	// -4.75 are not mistaken for shorthand flags.
	criteriaSetCmd.Flags().SetInterspersed(false)
	criteriaCmd.AddCommand(criteriaListCmd)
	criteriaCmd.AddCommand(criteriaRemoveCmd)
	criteriaCmd.AddCommand(criteriaImportCmd)
	criteriaCmd.AddCommand(criteriaExportCmd)
	criteriaImportCmd.Flags().StringVarP(&criImportProduct, "product", "p", "", "import only criteria for this product")
	criteriaExportCmd.Flags().StringVarP(&criExportProduct, "product", "p", "", "export only criteria for this product")
}
