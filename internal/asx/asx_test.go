package asx_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shanehull/keyinfo/internal/asx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedHTML = `<!DOCTYPE html>
<html><body>
<table>
<thead><tr><th>ASX Code</th><th>Date</th><th>Price sens.</th><th>Headline</th></tr></thead>
<tbody>
<tr>
<td>BHP</td>
<td>19/10/2026
<br>
10:15 am</td>
<td class="pricesens"><img src="/images/asterix.gif"></td>
<td><a href="/asx/v2/statistics/displayAnnouncement.do?display=pdf&amp;idsId=001">
Quarterly Activities Report
<br>
<span class="page">3 pages</span></a></td>
</tr>
<tr>
<td>CBA</td>
<td>19/10/2026
<br>
11:02 am</td>
<td></td>
<td><a href="/asx/v2/statistics/displayAnnouncement.do?display=pdf&amp;idsId=002">Change of Director's Interest Notice<br>1 page</a></td>
</tr>
<tr>
<td>XYZ</td>
<td>19/10/2026 12:00 pm</td>
<td></td>
<td>No document</td>
</tr>
</tbody>
</table>
</body></html>`

func newTestClient(srv *httptest.Server) *asx.Client {
	c := asx.NewClient(slog.New(slog.NewTextHandler(io.Discard, nil)))
	c.HTTP = srv.Client()
	c.BaseURL = srv.URL
	return c
}

func TestClient_ScrapeDailyFeed(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/asx/v2/statistics/todayAnns.do", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, feedHTML)
	})
	mux.HandleFunc("/asx/v2/statistics/prevBusDayAnns.do", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<table><tbody></tbody></table>`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := newTestClient(srv)

	t.Run("parses all rows with documents", func(t *testing.T) {
		t.Parallel()

		anns, err := c.ScrapeDailyFeed(context.Background(), false, false)
		require.NoError(t, err)
		require.Len(t, anns, 2)

		assert.Equal(t, "BHP", anns[0].Ticker)
		assert.Equal(t, "Quarterly Activities Report", anns[0].Title)
		assert.True(t, anns[0].IsPriceSensitive)
		assert.Equal(t, srv.URL+"/asx/v2/statistics/displayAnnouncement.do?display=pdf&idsId=001", anns[0].PDFURL)
		assert.Equal(t, 10, anns[0].DateTime.Hour())
		assert.Equal(t, 15, anns[0].DateTime.Minute())
		assert.Equal(t, time.October, anns[0].DateTime.Month())

		assert.Equal(t, "CBA", anns[1].Ticker)
		assert.Equal(t, "Change of Director's Interest Notice", anns[1].Title)
		assert.False(t, anns[1].IsPriceSensitive)
	})

	t.Run("filters price sensitive", func(t *testing.T) {
		t.Parallel()

		anns, err := c.ScrapeDailyFeed(context.Background(), false, true)
		require.NoError(t, err)
		require.Len(t, anns, 1)
		assert.Equal(t, "BHP", anns[0].Ticker)
	})

	t.Run("previous business day", func(t *testing.T) {
		t.Parallel()

		anns, err := c.ScrapeDailyFeed(context.Background(), true, false)
		require.NoError(t, err)
		assert.Empty(t, anns)
	})
}

func TestClient_ScrapeDailyFeed_Status(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	_, err := newTestClient(srv).ScrapeDailyFeed(context.Background(), false, false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestClient_Download(t *testing.T) {
	t.Parallel()

	const pdfBody = "%PDF-1.4\nfake document\n%%EOF\n"

	t.Run("direct document", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, pdfBody)
		}))
		t.Cleanup(srv.Close)

		path, cleanup, err := newTestClient(srv).Download(context.Background(), srv.URL+"/doc.pdf")
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, pdfBody, string(data))

		cleanup()
		_, err = os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("accepts terms first", func(t *testing.T) {
		t.Parallel()

		var accepted atomic.Bool
		mux := http.NewServeMux()
		mux.HandleFunc("/asx/v2/statistics/displayAnnouncement.do", func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `<form action="/asx/v2/statistics/announcementTerms.do" method="post">
<input type="hidden" name="pdfURL" value="/asxpdf/20261019/pdf/001.pdf">
<input type="submit" name="showAnnouncementPDFForm" value="Agree and proceed">
</form>`)
		})
		mux.HandleFunc("/asx/v2/statistics/announcementTerms.do", func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseForm(); err == nil {
				accepted.Store(r.PostForm.Get("showAnnouncementPDFForm") == "Agree and proceed")
			}
			w.WriteHeader(http.StatusOK)
		})
		mux.HandleFunc("/asxpdf/20261019/pdf/001.pdf", func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, pdfBody)
		})
		srv := httptest.NewServer(mux)
		t.Cleanup(srv.Close)

		path, cleanup, err := newTestClient(srv).Download(context.Background(), srv.URL+"/asx/v2/statistics/displayAnnouncement.do?idsId=001")
		require.NoError(t, err)
		t.Cleanup(cleanup)

		assert.True(t, accepted.Load())
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, pdfBody, string(data))
	})

	t.Run("terms page without document field", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `<form action="/asx/v2/statistics/announcementTerms.do"></form>`)
		}))
		t.Cleanup(srv.Close)

		_, _, err := newTestClient(srv).Download(context.Background(), srv.URL+"/doc")
		assert.Error(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		t.Cleanup(srv.Close)

		_, _, err := newTestClient(srv).Download(context.Background(), srv.URL+"/missing.pdf")
		assert.Error(t, err)
	})
}
