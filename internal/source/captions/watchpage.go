package captions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"course_assembler/internal/domain"
)

const WatchPageName = "watchpage"

const playerResponseMarker = "ytInitialPlayerResponse"

type playerResponse struct {
	Captions struct {
		Renderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

// WatchPage scrapes the caption track list out of the watch page's player
// response and downloads the chosen track in json3 form.
type WatchPage struct {
	baseURL  string
	language string
	client   *fetcher
	logger   *slog.Logger
}

func NewWatchPage(cfg Config, logger *slog.Logger) *WatchPage {
	cfg.setDefaults()
	logger = logger.With("strategy", WatchPageName)
	return &WatchPage{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		language: cfg.Language,
		client:   newFetcher(cfg, logger),
		logger:   logger,
	}
}

func (s *WatchPage) Name() string {
	return WatchPageName
}

func (s *WatchPage) Fetch(ctx context.Context, videoID string) ([]domain.TranscriptEntry, error) {
	page, err := s.client.get(ctx, fmt.Sprintf("%s/watch?v=%s", s.baseURL, url.QueryEscape(videoID)))
	if err != nil {
		return nil, fmt.Errorf("fetch watch page: %w", err)
	}

	tracks, err := extractCaptionTracks(page)
	if err != nil {
		return nil, err
	}

	track, ok := s.pick(tracks)
	if !ok {
		return nil, ErrNoTracks
	}

	body, err := s.client.get(ctx, withFormat(track.BaseURL, "json3"))
	if err != nil {
		return nil, fmt.Errorf("fetch track: %w", err)
	}

	entries, err := ParseJSON3(body)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoTracks
	}

	s.logger.Debug("fetched captions", "video_id", videoID, "lang", track.LanguageCode, "kind", track.Kind)
	return entries, nil
}

func (s *WatchPage) pick(tracks []captionTrack) (captionTrack, bool) {
	for _, t := range tracks {
		if t.Kind != "asr" && matchesLanguage(t.LanguageCode, s.language) {
			return t, true
		}
	}
	for _, t := range tracks {
		if t.Kind == "asr" && matchesLanguage(t.LanguageCode, s.language) {
			return t, true
		}
	}
	return captionTrack{}, false
}

func extractCaptionTracks(page []byte) ([]captionTrack, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse watch page: %w", err)
	}

	var (
		resp  playerResponse
		found bool
		derr  error
	)
	doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := sel.Text()
		idx := strings.Index(text, playerResponseMarker)
		if idx < 0 {
			return true
		}
		brace := strings.IndexByte(text[idx:], '{')
		if brace < 0 {
			return true
		}
		// The decoder stops after the first complete value, ignoring the
		// trailing script.
		derr = json.NewDecoder(strings.NewReader(text[idx+brace:])).Decode(&resp)
		found = true
		return false
	})

	if !found {
		return nil, ErrNoTracks
	}
	if derr != nil {
		return nil, fmt.Errorf("decode player response: %w", derr)
	}
	return resp.Captions.Renderer.CaptionTracks, nil
}

func withFormat(baseURL, format string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return baseURL + "&fmt=" + format
	}
	q := u.Query()
	q.Set("fmt", format)
	u.RawQuery = q.Encode()
	return u.String()
}
