package main

import (
	"encoding/json"
	"fmt"

	"github.com/shanehull/keyinfo/internal/keyinfo"
	"github.com/shanehull/keyinfo/internal/notify"
	"github.com/shanehull/keyinfo/internal/pdftext"
)

// classifier builds the classifier for the configured pattern table.
func (f *PatternFlags) classifier() (*keyinfo.Classifier, error) {
	table := keyinfo.DefaultTable()
	if f.Patterns != "" {
		var err error
		table, err = keyinfo.LoadTable(f.Patterns)
		if err != nil {
			return nil, err
		}
	}
	return keyinfo.NewClassifier(table)
}

// extractor builds the text extractor for the configured backend.
func (f *PatternFlags) extractor(deps *Dependencies) (pdftext.Extractor, error) {
	ext, err := pdftext.New(f.Backend)
	if err != nil {
		return nil, err
	}
	return pdftext.NewLoggingExtractor(ext, deps.Logger), nil
}

// Run executes the scan command.
func (c *ScanCmd) Run(deps *Dependencies) error {
	classifier, err := c.classifier()
	if err != nil {
		return err
	}
	ext, err := c.extractor(deps)
	if err != nil {
		return err
	}

	text, err := ext.Extract(deps.Ctx, c.Path)
	if err != nil {
		return err
	}

	res := classifier.Classify(text)
	deps.Logger.Debug("classified document", "path", c.Path, "matches", res.Total())

	if c.Format == "json" {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		return nil
	}

	return notify.WriteKeyInfo(deps.Stdout, res)
}
