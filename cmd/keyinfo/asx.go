package main

import (
	"fmt"
	"strings"

	"github.com/shanehull/keyinfo/internal/asx"
	"github.com/shanehull/keyinfo/internal/notify"
)

// Run executes the asx command.
func (c *ASXCmd) Run(deps *Dependencies) error {
	classifier, err := c.classifier()
	if err != nil {
		return err
	}
	ext, err := c.extractor(deps)
	if err != nil {
		return err
	}

	client := asx.NewClient(deps.Logger)
	client.HTTP.Timeout = c.Timeout

	tickers := make([]string, 0, len(c.Tickers))
	for _, t := range c.Tickers {
		if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
			tickers = append(tickers, t)
		}
	}

	announcements, err := client.ScrapeDailyFeed(deps.Ctx, c.Previous, c.PriceSensitive)
	if err != nil {
		return fmt.Errorf("failed to scrape announcements: %w", err)
	}
	if len(announcements) == 0 {
		fmt.Fprintln(deps.Stdout, "No announcements found.")
		return nil
	}
	fmt.Fprintf(deps.Stdout, "Found %d announcements (price-sensitive only: %t). Downloading and scanning...\n", len(announcements), c.PriceSensitive)

	processor := &asx.Processor{
		Downloader:  client,
		Extractor:   ext,
		Classifier:  classifier,
		Tickers:     tickers,
		Concurrency: c.Concurrency,
		Logger:      deps.Logger,
	}

	matches, err := processor.Process(deps.Ctx, announcements)
	if err != nil {
		return err
	}

	if err := notify.ReportMatches(deps.Stdout, matches); err != nil {
		return err
	}

	emailConfig := notify.EmailConfig{
		SMTPServer: c.SMTPServer,
		SMTPPort:   c.SMTPPort,
		SMTPUser:   c.SMTPUser,
		SMTPPass:   c.SMTPPass,
		FromEmail:  c.FromEmail,
		ToEmail:    c.ToEmail,
	}
	if len(matches) > 0 && emailConfig.Enabled() {
		sender := notify.NewEmailSender(emailConfig, deps.Logger)
		sent := notify.EmailMatches(matches, notify.NewHTMLEmailRenderer(), sender)
		if sent < len(matches) {
			return fmt.Errorf("sent %d of %d notification emails", sent, len(matches))
		}
	}

	return nil
}
