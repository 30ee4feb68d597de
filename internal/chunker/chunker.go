package chunker

import (
	"strconv"
	"strings"

	"course_assembler/internal/domain"
)

const (
	DefaultTargetWords = 300
	DefaultMaxDuration = 600.0
)

// Chunker groups transcript entries into contiguous, non-overlapping
// windows bounded by word count and elapsed time.
type Chunker struct {
	targetWords int
	maxDuration float64
}

// New returns a chunker. Non-positive arguments fall back to the defaults.
func New(targetWords int, maxDurationSeconds float64) *Chunker {
	if targetWords <= 0 {
		targetWords = DefaultTargetWords
	}
	if maxDurationSeconds <= 0 {
		maxDurationSeconds = DefaultMaxDuration
	}
	return &Chunker{targetWords: targetWords, maxDuration: maxDurationSeconds}
}

// Chunk splits a candidate's transcript. Candidates without a transcript
// produce no chunks.
func (c *Chunker) Chunk(candidate *domain.VideoCandidate) []domain.TranscriptChunk {
	if !candidate.TranscriptAvailable || len(candidate.RawTranscript) == 0 {
		return nil
	}

	var (
		chunks []domain.TranscriptChunk
		texts  []string
		words  int
		start  float64
		end    float64
	)

	flush := func() {
		chunks = append(chunks, domain.TranscriptChunk{
			ChunkID:   candidate.VideoID + "_" + strconv.Itoa(len(chunks)),
			VideoID:   candidate.VideoID,
			StartTime: start,
			EndTime:   end,
			Text:      strings.Join(texts, " "),
		})
		texts = texts[:0]
		words = 0
	}

	for _, e := range candidate.RawTranscript {
		if len(texts) > 0 && (words >= c.targetWords || e.End()-start >= c.maxDuration) {
			// Caption events often run into the next one; the closing chunk
			// ends where the next begins.
			if e.Start < end && e.Start >= start {
				end = e.Start
			}
			flush()
		}
		if len(texts) == 0 {
			start = e.Start
		}
		texts = append(texts, e.Text)
		words += len(strings.Fields(e.Text))
		end = e.End()
	}
	if len(texts) > 0 {
		flush()
	}

	return chunks
}

// ChunkAll chunks every candidate with a transcript, in order.
func (c *Chunker) ChunkAll(candidates []*domain.VideoCandidate) []domain.TranscriptChunk {
	var out []domain.TranscriptChunk
	for _, cand := range candidates {
		out = append(out, c.Chunk(cand)...)
	}
	return out
}
