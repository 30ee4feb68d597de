package domain

type TranscriptChunk struct {
	ChunkID   string  `json:"chunk_id"`
	VideoID   string  `json:"video_id"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Text      string  `json:"text"`
}

// ChunkMatch is one similarity-oracle hit. Lower distance is more similar.
type ChunkMatch struct {
	ChunkID   string
	Distance  float64
	VideoID   string
	StartTime float64
	EndTime   float64
	Text      string
}

type LessonPlan struct {
	Title       string
	TargetLevel string
	Description string
	Keywords    []string
}

type ScoredCandidate struct {
	VideoID         string
	FinalScore      float64
	SimilarityScore float64
	MetaScore       float64
	BestChunk       ChunkMatch
	Candidate       *VideoCandidate
}

// CoverageReport is a language-model judgement of how well a transcript
// segment teaches a lesson spec.
type CoverageReport struct {
	Score           float64  `json:"score"`
	Reason          string   `json:"reason"`
	CoveredConcepts []string `json:"covered_concepts"`
	MissingConcepts []string `json:"missing_concepts"`
}

type NodeType string

const (
	NodeVideo NodeType = "video"
	NodeText  NodeType = "text"
)

type VideoBinding struct {
	VideoID           string
	Title             string
	Channel           string
	StartTime         float64
	EndTime           float64
	TranscriptSnippet string
	Note              string
	Coverage          *CoverageReport
}

type TextSupplement struct {
	Title   string
	Content string
}

// LessonNode is the outcome for one lesson: exactly one of Video or Text is
// set, matching Type.
type LessonNode struct {
	Type        NodeType
	Description string
	Score       float64
	Video       *VideoBinding
	Text        *TextSupplement
}

func NewVideoNode(binding VideoBinding, description string, score float64) *LessonNode {
	return &LessonNode{
		Type:        NodeVideo,
		Description: description,
		Score:       clampScore(score),
		Video:       &binding,
	}
}

func NewTextNode(title, content, description string) *LessonNode {
	return &LessonNode{
		Type:        NodeText,
		Description: description,
		Score:       1.0,
		Text:        &TextSupplement{Title: title, Content: content},
	}
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
