package asx

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/shanehull/keyinfo/internal/keyinfo"
	"github.com/shanehull/keyinfo/internal/pdftext"
	"github.com/shanehull/keyinfo/internal/types"

	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 10

// Downloader fetches a document to a local file.
type Downloader interface {
	Download(ctx context.Context, url string) (path string, cleanup func(), err error)
}

// Processor downloads, extracts and classifies announcements.
type Processor struct {
	Downloader  Downloader
	Extractor   pdftext.Extractor
	Classifier  *keyinfo.Classifier
	Tickers     []string
	Concurrency int
	Logger      *slog.Logger
}

// Process returns a Match for every announcement whose document has at least
// one key phrase or whose ticker is watched, in feed order. Announcements
// that fail to download or extract are logged and skipped.
func (p *Processor) Process(ctx context.Context, announcements []types.Announcement) ([]types.Match, error) {
	limit := p.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}

	watched := make(map[string]struct{}, len(p.Tickers))
	for _, t := range p.Tickers {
		watched[t] = struct{}{}
	}

	results := make([]*types.Match, len(announcements))
	total := len(announcements)
	var processed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, ann := range announcements {
		i, ann := i, ann
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			n := processed.Add(1)
			p.Logger.Info("processing announcement", "n", n, "total", total, "ticker", ann.Ticker)

			match, err := p.processOne(gctx, ann, watched)
			if err != nil {
				p.Logger.Error("failed to process announcement", "ticker", ann.Ticker, "title", ann.Title, "err", err)
				return nil
			}
			results[i] = match
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var matches []types.Match
	for _, m := range results {
		if m != nil {
			matches = append(matches, *m)
		}
	}
	p.Logger.Info("done processing", "announcements", total, "matches", len(matches))

	return matches, nil
}

func (p *Processor) processOne(ctx context.Context, ann types.Announcement, watched map[string]struct{}) (*types.Match, error) {
	path, cleanup, err := p.Downloader.Download(ctx, ann.PDFURL)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	text, err := p.Extractor.Extract(ctx, path)
	if err != nil {
		return nil, err
	}

	info := p.Classifier.Classify(text)
	_, tickerMatch := watched[ann.Ticker]

	if info.Empty() && !tickerMatch {
		return nil, nil
	}

	return &types.Match{
		Announcement:  ann,
		KeyInfo:       info,
		TickerMatched: tickerMatch,
	}, nil
}
