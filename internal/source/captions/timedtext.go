package captions

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"course_assembler/internal/domain"
)

const TimedTextName = "timedtext"

type trackList struct {
	Tracks []listedTrack `xml:"track"`
}

type listedTrack struct {
	Name     string `xml:"name,attr"`
	LangCode string `xml:"lang_code,attr"`
	Kind     string `xml:"kind,attr"`
}

type timedTextDoc struct {
	Texts []struct {
		Start string `xml:"start,attr"`
		Dur   string `xml:"dur,attr"`
		Body  string `xml:",chardata"`
	} `xml:"text"`
}

// TimedText reads captions from the legacy timedtext endpoint. It prefers a
// manual track in the configured language, then an auto-generated one, then
// any track machine-translated into the language.
type TimedText struct {
	baseURL  string
	language string
	client   *fetcher
	logger   *slog.Logger
}

func NewTimedText(cfg Config, logger *slog.Logger) *TimedText {
	cfg.setDefaults()
	logger = logger.With("strategy", TimedTextName)
	return &TimedText{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		language: cfg.Language,
		client:   newFetcher(cfg, logger),
		logger:   logger,
	}
}

func (s *TimedText) Name() string {
	return TimedTextName
}

func (s *TimedText) Fetch(ctx context.Context, videoID string) ([]domain.TranscriptEntry, error) {
	listURL := fmt.Sprintf("%s/api/timedtext?type=list&v=%s", s.baseURL, url.QueryEscape(videoID))
	body, err := s.client.get(ctx, listURL)
	if err != nil {
		return nil, fmt.Errorf("list tracks: %w", err)
	}

	var list trackList
	if err := xml.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("decode track list: %w", err)
	}

	track, translate, ok := s.pick(list.Tracks)
	if !ok {
		return nil, ErrNoTracks
	}

	q := url.Values{}
	q.Set("v", videoID)
	q.Set("lang", track.LangCode)
	if track.Name != "" {
		q.Set("name", track.Name)
	}
	if track.Kind != "" {
		q.Set("kind", track.Kind)
	}
	if translate {
		q.Set("tlang", s.language)
	}

	body, err = s.client.get(ctx, s.baseURL+"/api/timedtext?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("fetch track: %w", err)
	}

	entries, err := parseTimedText(body)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoTracks
	}

	s.logger.Debug("fetched captions", "video_id", videoID, "lang", track.LangCode, "kind", track.Kind, "translated", translate)
	return entries, nil
}

func (s *TimedText) pick(tracks []listedTrack) (listedTrack, bool, bool) {
	for _, t := range tracks {
		if t.Kind != "asr" && matchesLanguage(t.LangCode, s.language) {
			return t, false, true
		}
	}
	for _, t := range tracks {
		if t.Kind == "asr" && matchesLanguage(t.LangCode, s.language) {
			return t, false, true
		}
	}
	if len(tracks) > 0 {
		return tracks[0], true, true
	}
	return listedTrack{}, false, false
}

func parseTimedText(body []byte) ([]domain.TranscriptEntry, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	var doc timedTextDoc
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode timedtext: %w", err)
	}

	entries := make([]domain.TranscriptEntry, 0, len(doc.Texts))
	for _, t := range doc.Texts {
		text := strings.TrimSpace(html.UnescapeString(t.Body))
		if text == "" {
			continue
		}
		start, err := strconv.ParseFloat(t.Start, 64)
		if err != nil {
			continue
		}
		var dur float64
		if t.Dur != "" {
			if dur, err = strconv.ParseFloat(t.Dur, 64); err != nil {
				continue
			}
		}
		entries = append(entries, domain.TranscriptEntry{
			Text:     strings.Join(strings.Fields(text), " "),
			Start:    start,
			Duration: dur,
		})
	}
	return entries, nil
}

func matchesLanguage(code, lang string) bool {
	code = strings.ToLower(code)
	return code == lang || strings.HasPrefix(code, lang+"-")
}
