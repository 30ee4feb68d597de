package captions

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

func testConfig(baseURL string) Config {
	return Config{
		BaseURL:        baseURL,
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
	}
}

const trackListXML = `<?xml version="1.0" encoding="utf-8" ?>
<transcript_list docid="1">
  <track id="0" name="" lang_code="de" kind=""/>
  <track id="1" name="" lang_code="en" kind="asr"/>
  <track id="2" name="English" lang_code="en-GB" kind=""/>
</transcript_list>`

const timedTextXML = `<?xml version="1.0" encoding="utf-8" ?>
<transcript>
  <text start="0.5" dur="2.1">it&amp;#39;s a   channel</text>
  <text start="2.6" dur="1.4">   </text>
  <text start="4" dur="3">send &amp;amp; receive</text>
</transcript>`

func TestTimedText_PrefersManualTrack(t *testing.T) {
	var trackQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("type") == "list" {
			assert.Equal(t, "abc", q.Get("v"))
			fmt.Fprint(w, trackListXML)
			return
		}
		trackQuery = r.URL.RawQuery
		assert.Equal(t, "en-GB", q.Get("lang"))
		assert.Equal(t, "English", q.Get("name"))
		assert.Empty(t, q.Get("tlang"))
		fmt.Fprint(w, timedTextXML)
	}))
	defer srv.Close()

	s := NewTimedText(testConfig(srv.URL), testLogger)
	entries, err := s.Fetch(context.Background(), "abc")
	require.NoError(t, err)

	assert.NotEmpty(t, trackQuery)
	require.Len(t, entries, 2)
	assert.Equal(t, "it's a channel", entries[0].Text)
	assert.InDelta(t, 0.5, entries[0].Start, 1e-9)
	assert.InDelta(t, 2.1, entries[0].Duration, 1e-9)
	assert.Equal(t, "send & receive", entries[1].Text)
	assert.Equal(t, TimedTextName, s.Name())
}

func TestTimedText_FallsBackToGeneratedThenTranslated(t *testing.T) {
	tests := []struct {
		name      string
		list      string
		wantLang  string
		wantKind  string
		wantTlang string
	}{
		{
			name:     "generated english",
			list:     `<transcript_list><track lang_code="fr" kind=""/><track lang_code="en" kind="asr"/></transcript_list>`,
			wantLang: "en",
			wantKind: "asr",
		},
		{
			name:      "translated",
			list:      `<transcript_list><track lang_code="fr" kind=""/></transcript_list>`,
			wantLang:  "fr",
			wantTlang: "en",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				q := r.URL.Query()
				if q.Get("type") == "list" {
					fmt.Fprint(w, tt.list)
					return
				}
				assert.Equal(t, tt.wantLang, q.Get("lang"))
				assert.Equal(t, tt.wantKind, q.Get("kind"))
				assert.Equal(t, tt.wantTlang, q.Get("tlang"))
				fmt.Fprint(w, timedTextXML)
			}))
			defer srv.Close()

			entries, err := NewTimedText(testConfig(srv.URL), testLogger).Fetch(context.Background(), "v1")
			require.NoError(t, err)
			assert.Len(t, entries, 2)
		})
	}
}

func TestTimedText_NoTracks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<transcript_list></transcript_list>`)
	}))
	defer srv.Close()

	_, err := NewTimedText(testConfig(srv.URL), testLogger).Fetch(context.Background(), "v1")
	require.ErrorIs(t, err, ErrNoTracks)
}

func TestParseTimedText_SkipsMalformedTimes(t *testing.T) {
	body := []byte(`<transcript>
<text start="0" dur="1.5">first</text>
<text start="abc" dur="2">bad start</text>
<text start="3" dur="x">bad duration</text>
<text start="4">no duration</text>
<text start="5" dur="1">last</text>
</transcript>`)

	entries, err := parseTimedText(body)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "first", entries[0].Text)
	assert.Equal(t, 4.0, entries[1].Start)
	assert.Zero(t, entries[1].Duration)
	assert.Equal(t, 5.0, entries[2].Start)
}

func TestFetcher_RetriesTransientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, "ok")
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.setDefaults()
	body, err := newFetcher(cfg, testLogger).get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetcher_NotFoundIsFinal(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.setDefaults()
	_, err := newFetcher(cfg, testLogger).get(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetcher_CalculateBackoff(t *testing.T) {
	f := &fetcher{initialBackoff: 100 * time.Millisecond, maxBackoff: 500 * time.Millisecond}

	assert.Equal(t, 100*time.Millisecond, f.calculateBackoff(1))
	assert.Equal(t, 200*time.Millisecond, f.calculateBackoff(2))
	assert.Equal(t, 400*time.Millisecond, f.calculateBackoff(3))
	assert.Equal(t, 500*time.Millisecond, f.calculateBackoff(4))
}

const json3Body = `{
  "events": [
    {"tStartMs": 0, "dDurationMs": 5000, "id": 1, "wpWinPosId": 1},
    {"tStartMs": 1200, "dDurationMs": 2300, "segs": [{"utf8": "hello"}, {"utf8": " world"}]},
    {"tStartMs": 3500, "dDurationMs": 10, "aAppend": 1, "segs": [{"utf8": "\n"}]},
    {"tStartMs": 3600, "dDurationMs": 1400, "segs": [{"utf8": "goroutines"}]}
  ]
}`

func TestParseJSON3(t *testing.T) {
	entries, err := ParseJSON3([]byte(json3Body))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "hello world", entries[0].Text)
	assert.InDelta(t, 1.2, entries[0].Start, 1e-9)
	assert.InDelta(t, 2.3, entries[0].Duration, 1e-9)
	assert.Equal(t, "goroutines", entries[1].Text)

	_, err = ParseJSON3([]byte("not json"))
	assert.Error(t, err)
}

func watchPageHTML(baseURL string) string {
	return `<!DOCTYPE html><html><head><title>video</title></head><body>
<script>var other = {"a": 1};</script>
<script nonce="x">var ytInitialPlayerResponse = {"videoDetails":{"videoId":"abc"},"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[` +
		`{"baseUrl":"` + baseURL + `/api/timedtext?v=abc&lang=en&kind=asr","languageCode":"en","kind":"asr"},` +
		`{"baseUrl":"` + baseURL + `/api/timedtext?v=abc&lang=en","languageCode":"en"}` +
		`]}}};var meta = document.querySelector('meta');</script>
</body></html>`
}

func TestWatchPage_FetchesManualTrackAsJSON3(t *testing.T) {
	var srvURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/watch":
			assert.Equal(t, "abc", r.URL.Query().Get("v"))
			fmt.Fprint(w, watchPageHTML(srvURL))
		case "/api/timedtext":
			q := r.URL.Query()
			assert.Equal(t, "json3", q.Get("fmt"))
			assert.Empty(t, q.Get("kind"), "manual track should be preferred")
			fmt.Fprint(w, json3Body)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	srvURL = srv.URL

	s := NewWatchPage(testConfig(srv.URL), testLogger)
	entries, err := s.Fetch(context.Background(), "abc")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "hello world", entries[0].Text)
	assert.Equal(t, WatchPageName, s.Name())
}

func TestWatchPage_NoPlayerResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><script>var x = 1;</script></body></html>`)
	}))
	defer srv.Close()

	_, err := NewWatchPage(testConfig(srv.URL), testLogger).Fetch(context.Background(), "abc")
	require.ErrorIs(t, err, ErrNoTracks)
}

func TestWatchPage_NoEnglishTrack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><script>var ytInitialPlayerResponse = {"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[{"baseUrl":"http://x","languageCode":"ja"}]}}};</script></html>`)
	}))
	defer srv.Close()

	_, err := NewWatchPage(testConfig(srv.URL), testLogger).Fetch(context.Background(), "abc")
	require.ErrorIs(t, err, ErrNoTracks)
}
