/*
Package asx provides utilities for scraping ASX announcement feeds and
downloading announcement documents.
*/
package asx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"regexp"
	"strings"
	"time"

	"github.com/shanehull/keyinfo/internal/types"

	"golang.org/x/net/html"
)

const (
	DefaultBaseURL = "https://www.asx.com.au"

	todayPath      = "/asx/v2/statistics/todayAnns.do"
	previousPath   = "/asx/v2/statistics/prevBusDayAnns.do"
	termsAction    = "/asx/v2/statistics/announcementTerms.do"
	feedTimeLayout = "02/01/2006 3:04 PM"
	feedTimezone   = "Australia/Sydney"
)

var (
	whitespaceRe = regexp.MustCompile(`[\n\t\r\s\xA0]+`)
	termsPDFRe   = regexp.MustCompile(`name="pdfURL"\s+value="(.*?)"`)
)

// Client talks to the ASX website.
type Client struct {
	HTTP     *http.Client
	BaseURL  string
	Location *time.Location
	Logger   *slog.Logger
}

// NewClient returns a client for the public ASX site. Cookies are kept so
// the terms acceptance survives until the document download.
func NewClient(logger *slog.Logger) *Client {
	jar, _ := cookiejar.New(nil)

	loc, err := time.LoadLocation(feedTimezone)
	if err != nil {
		logger.Warn("failed to load feed time zone, using UTC", "tz", feedTimezone, "err", err)
		loc = time.UTC
	}

	return &Client{
		HTTP: &http.Client{
			Timeout: 60 * time.Second,
			Jar:     jar,
		},
		BaseURL:  DefaultBaseURL,
		Location: loc,
		Logger:   logger,
	}
}

// ScrapeDailyFeed returns the announcements listed for today, or for the
// previous business day.
func (c *Client) ScrapeDailyFeed(ctx context.Context, previousDay, priceSensitiveOnly bool) ([]types.Announcement, error) {
	url := c.BaseURL + todayPath
	if previousDay {
		url = c.BaseURL + previousPath
	}

	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.Logger.Warn("failed to close response body", "url", url, "err", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-OK status code %d from %s", resp.StatusCode, url)
	}

	anns, err := c.parseFeed(resp.Body, priceSensitiveOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML from %s: %w", url, err)
	}
	return anns, nil
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL %s: %w", url, err)
	}
	return resp, nil
}

func (c *Client) parseFeed(r io.Reader, priceSensitiveOnly bool) ([]types.Announcement, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var announcements []types.Announcement
	var inTableBody bool

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tbody" {
			inTableBody = true
		}

		if inTableBody && n.Type == html.ElementNode && n.Data == "tr" {
			var ann types.Announcement
			tdCount := 0
			for td := n.FirstChild; td != nil; td = td.NextSibling {
				if td.Type == html.ElementNode && td.Data == "td" {
					tdCount++
					c.processCell(td, tdCount, &ann)
				}
			}

			if ann.PDFURL != "" && (!priceSensitiveOnly || ann.IsPriceSensitive) {
				announcements = append(announcements, ann)
			}
			return
		}

		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return announcements, nil
}

func (c *Client) processCell(n *html.Node, tdIndex int, ann *types.Announcement) {
	switch tdIndex {
	case 1: // Ticker
		ann.Ticker = strings.TrimSpace(extractText(n))
	case 2: // Date and Time
		cleaned := strings.TrimSpace(whitespaceRe.ReplaceAllString(extractText(n), " "))
		t, err := time.ParseInLocation(feedTimeLayout, strings.ToUpper(cleaned), c.Location)
		if err != nil {
			c.Logger.Warn("failed to parse announcement date", "value", cleaned, "err", err)
			return
		}
		ann.DateTime = t
	case 3: // Price Sensitive Marker
		for _, attr := range n.Attr {
			if attr.Key == "class" && strings.Contains(attr.Val, "pricesens") {
				ann.IsPriceSensitive = true
				break
			}
		}
	case 4: // Announcement Title and PDF Link
		a := findFirst(n, "a")
		if a == nil {
			return
		}
		for _, attr := range a.Attr {
			if attr.Key == "href" {
				ann.PDFURL = c.absolute(strings.TrimSpace(attr.Val))
				break
			}
		}

		var title strings.Builder
		for child := a.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == html.ElementNode && child.Data == "br" {
				break
			}
			if child.Type == html.TextNode {
				title.WriteString(strings.TrimSpace(child.Data))
			}
		}
		ann.Title = strings.TrimSpace(title.String())
	}
}

func (c *Client) absolute(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return c.BaseURL + href
}

func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findFirst(child, tag); found != nil {
			return found
		}
	}
	return nil
}

func extractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		sb.WriteString(extractText(child))
	}
	return sb.String()
}
