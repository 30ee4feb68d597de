package domain

import "time"

// TranscriptEntry is one caption line with offsets in seconds.
type TranscriptEntry struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

func (e TranscriptEntry) End() float64 {
	return e.Start + e.Duration
}

// SearchResult is a raw video record returned by a search collaborator.
// Duration is ISO-8601 (e.g. "PT12M3S").
type SearchResult struct {
	VideoID      string
	Title        string
	ChannelTitle string
	ChannelID    string
	Duration     string
	ViewCount    int64
	LikeCount    int64
	PublishedAt  time.Time
	HasCaptions  bool
}

type VideoCandidate struct {
	VideoID         string
	Title           string
	ChannelTitle    string
	ChannelID       string
	DurationSeconds int
	ViewCount       int64
	LikeCount       int64
	PublishedAt     time.Time
	HasCaptions     bool
	MetaScore       float64

	IsShortlisted   bool
	RejectionReason string

	TranscriptAvailable bool
	TranscriptFetched   bool
	TranscriptSource    string
	RawTranscript       []TranscriptEntry
}

// Reject takes the candidate off the shortlist.
func (c *VideoCandidate) Reject(reason string) {
	c.IsShortlisted = false
	c.RejectionReason = reason
}

// CachedTranscript is the cache representation of a fetched transcript.
type CachedTranscript struct {
	VideoID   string            `json:"video_id"`
	Source    string            `json:"source"`
	Entries   []TranscriptEntry `json:"entries"`
	FetchedAt time.Time         `json:"fetched_at"`
}
