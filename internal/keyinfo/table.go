package keyinfo

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultTable returns a fresh copy of the built-in investor pattern table.
//
// "new technology" is listed under both KeyChangesInBusiness and KeyTriggers,
// so a single occurrence is reported in each.
func DefaultTable() Table {
	return Table{
		{
			Category: FutureGrowthProspects,
			Label:    "Future Growth Prospects",
			Patterns: []string{
				`growth of \d+%`,
				`growth rate of \d+%`,
				`expected to grow`,
				`targeting growth`,
				`growth trajectory`,
			},
		},
		{
			Category: KeyChangesInBusiness,
			Label:    "Key Changes in Business",
			Patterns: []string{
				`acquisition of`,
				`new customers`,
				`new technology`,
				`expansion plan`,
				`strategic partnership`,
			},
		},
		{
			Category: KeyTriggers,
			Label:    "Key Triggers",
			Patterns: []string{
				`new order`,
				`new business`,
				`new product`,
				`new market`,
				`new technology`,
			},
		},
		{
			Category: MaterialEffectsOnEarnings,
			Label:    "Material Effects on Earnings",
			Patterns: []string{
				`impact on earnings`,
				`effect on revenue`,
				`impact on profit`,
				`effect on EBITDA`,
				`impact on margins`,
			},
		},
	}
}

type tableFile struct {
	Categories Table `json:"categories"`
}

// LoadTable reads a pattern table from a JSON file of the form
//
//	{"categories": [{"category": "...", "label": "...", "patterns": ["..."]}]}
//
// The table is validated by compiling it.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pattern file %s: %w", path, err)
	}

	var f tableFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse pattern file %s: %w", path, err)
	}

	if _, err := NewClassifier(f.Categories); err != nil {
		return nil, fmt.Errorf("invalid pattern file %s: %w", path, err)
	}

	return f.Categories, nil
}
