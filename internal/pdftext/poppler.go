package pdftext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

const defaultPopplerTimeout = 60 * time.Second

// PopplerExtractor shells out to the pdftotext utility from poppler-utils.
type PopplerExtractor struct {
	Bin     string
	Timeout time.Duration
}

// NewPopplerExtractor returns an extractor that runs "pdftotext -raw".
func NewPopplerExtractor() *PopplerExtractor {
	return &PopplerExtractor{Bin: "pdftotext", Timeout: defaultPopplerTimeout}
}

// Extract runs pdftotext on the file. Form feeds that pdftotext writes
// between pages are dropped.
func (e *PopplerExtractor) Extract(ctx context.Context, path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", &DocumentError{Path: path, Err: err}
	}

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = defaultPopplerTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, e.Bin, "-raw", "-enc", "UTF-8", path, "-")

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%s binary not found, ensure poppler-utils is installed: %w", e.Bin, err)
		}
		if ctx.Err() == context.DeadlineExceeded {
			return "", &DocumentError{Path: path, Err: fmt.Errorf("pdftotext timed out after %s", timeout)}
		}
		return "", &DocumentError{Path: path, Err: fmt.Errorf("pdftotext failed: %w: %s", err, strings.TrimSpace(stderr.String()))}
	}

	return strings.ReplaceAll(out.String(), "\f", ""), nil
}
