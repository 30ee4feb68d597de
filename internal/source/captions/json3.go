package captions

import (
	"encoding/json"
	"fmt"
	"strings"

	"course_assembler/internal/domain"
)

type json3Doc struct {
	Events []struct {
		StartMs    float64 `json:"tStartMs"`
		DurationMs float64 `json:"dDurationMs"`
		Segs       []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

// ParseJSON3 converts a json3 caption document into entries. Events with
// no text, such as window and line-break events, are dropped.
func ParseJSON3(body []byte) ([]domain.TranscriptEntry, error) {
	var doc json3Doc
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode json3: %w", err)
	}

	entries := make([]domain.TranscriptEntry, 0, len(doc.Events))
	for _, ev := range doc.Events {
		if len(ev.Segs) == 0 {
			continue
		}
		var sb strings.Builder
		for _, seg := range ev.Segs {
			sb.WriteString(seg.UTF8)
		}
		text := strings.Join(strings.Fields(sb.String()), " ")
		if text == "" {
			continue
		}
		entries = append(entries, domain.TranscriptEntry{
			Text:     text,
			Start:    ev.StartMs / 1000,
			Duration: ev.DurationMs / 1000,
		})
	}
	return entries, nil
}
