package asx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// Download fetches the announcement document into a temporary file. When
// the ASX serves its terms page instead of the document, the terms are
// accepted and the direct document URL is fetched. The returned cleanup
// removes the file.
func (c *Client) Download(ctx context.Context, pdfURL string) (path string, cleanup func(), err error) {
	body, err := c.fetch(ctx, pdfURL)
	if err != nil {
		return "", nil, err
	}

	if !bytes.HasPrefix(body, []byte("%PDF-")) && bytes.Contains(body, []byte(termsAction)) {
		directURL, err := c.acceptTerms(ctx, body)
		if err != nil {
			return "", nil, err
		}
		body, err = c.fetch(ctx, directURL)
		if err != nil {
			return "", nil, err
		}
	}

	tmp, err := os.CreateTemp("", "asx_pdf_*.pdf")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	name := tmp.Name()
	cleanup = func() {
		if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
			c.Logger.Warn("failed to remove temporary file", "path", name, "err", err)
		}
	}

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		cleanup()
		return "", nil, fmt.Errorf("failed to write PDF bytes to temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to close temp file: %w", err)
	}

	return name, cleanup, nil
}

func (c *Client) fetch(ctx context.Context, u string) ([]byte, error) {
	resp, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download document: received status code %d from %s", resp.StatusCode, u)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body from %s: %w", u, err)
	}
	return body, nil
}

// acceptTerms submits the "Agree and proceed" form and returns the direct
// document URL carried in the form's hidden field.
func (c *Client) acceptTerms(ctx context.Context, page []byte) (string, error) {
	match := termsPDFRe.FindSubmatch(page)
	if len(match) < 2 {
		return "", fmt.Errorf("terms form detected, but could not find the hidden 'pdfURL' field")
	}
	directURL := c.absolute(string(match[1]))

	form := url.Values{
		"pdfURL":                  {directURL},
		"showAnnouncementPDFForm": {"Agree and proceed"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+termsAction, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build terms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Logger.Warn("terms submission failed", "err", err)
		return directURL, nil
	}
	resp.Body.Close()

	return directURL, nil
}
