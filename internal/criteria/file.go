package criteria

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/KaramelBytes/testlens-cli/internal/utils"
)

// ReadFile loads a criteria exchange file: a JSON array of
// {item_number, result_name, lower_bound, upper_bound} records.
func ReadFile(path string) ([]Entry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read criteria file: %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("parse criteria file %s: %w", path, err)
	}
	return entries, nil
}

// WriteFile writes entries as indented JSON with an atomic rename.
func WriteFile(path string, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	b, err := utils.PrettyJSON(entries)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(path, append(b, '\n'))
}
