package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// discoverInputs lists the docx files in a directory, in name order.
// Files already carrying the _edited suffix are outputs of earlier runs
// and are skipped so a batch never reprocesses its own results.
func discoverInputs(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("directory not found: %s", dir)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.docx"))
	if err != nil {
		return nil, err
	}

	var inputs []string
	for _, match := range matches {
		base := filepath.Base(match)
		name := strings.TrimSuffix(base, filepath.Ext(base))
		if strings.HasSuffix(name, "_edited") {
			continue
		}
		inputs = append(inputs, match)
	}
	sort.Strings(inputs)
	return inputs, nil
}
