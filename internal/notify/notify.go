/*
Package notify handles reporting of key information via console output and
email notifications.
*/
package notify

import (
	"fmt"
	"io"
	"strings"

	"github.com/shanehull/keyinfo/internal/keyinfo"
	"github.com/shanehull/keyinfo/internal/types"
)

// Section is one labelled category of a classification result.
type Section struct {
	Category keyinfo.Category
	Label    string
	Matches  []string
}

// Sections flattens a result into its labelled categories, in table order.
func Sections(res *keyinfo.Result) []Section {
	cats := res.Categories()
	out := make([]Section, 0, len(cats))
	for _, c := range cats {
		out = append(out, Section{Category: c, Label: res.Label(c), Matches: res.Matches(c)})
	}
	return out
}

// WriteKeyInfo prints every category as a "<Label>:" header followed by one
// "- <match>" line per match. Sections are separated by a blank line and
// empty sections still get their header.
func WriteKeyInfo(w io.Writer, res *keyinfo.Result) error {
	var sb strings.Builder
	for i, s := range Sections(res) {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s:\n", s.Label)
		for _, m := range s.Matches {
			fmt.Fprintf(&sb, "- %s\n", m)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// ReportMatches prints the feed matches with their key information.
func ReportMatches(w io.Writer, matches []types.Match) error {
	if len(matches) == 0 {
		_, err := fmt.Fprint(w, "\n-------------------------------------------\n"+
			"No key information found in any announcement.\n"+
			"-------------------------------------------\n")
		return err
	}

	var sb strings.Builder
	sb.WriteString("\n===========================================\n")
	fmt.Fprintf(&sb, "✅ %d MATCHES FOUND\n", len(matches))
	sb.WriteString("===========================================\n")

	for i, m := range matches {
		fmt.Fprintf(&sb, "\n--- MATCH #%d ---\n", i+1)
		fmt.Fprintf(&sb, "Ticker: %s\n", m.Ticker)
		fmt.Fprintf(&sb, "Title:  %s\n", m.Title)
		fmt.Fprintf(&sb, "Price Sensitive: %t\n", m.IsPriceSensitive)
		fmt.Fprintf(&sb, "Date:   %s\n", m.DateTime.Format("02 Jan 2006 3:04 PM"))
		fmt.Fprintf(&sb, "URL:    %s\n", m.PDFURL)
		if m.TickerMatched {
			sb.WriteString("Watched ticker\n")
		}
		sb.WriteString("\n")
		if err := WriteKeyInfo(&sb, m.KeyInfo); err != nil {
			return err
		}
	}

	sb.WriteString("\n===========================================\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
