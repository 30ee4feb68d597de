package domain

import (
	"encoding/json"
	"errors"
)

var ErrCourseNotFound = errors.New("course not found")

type Course struct {
	ID          string
	Title       string
	Description string
	Roadmap     *Roadmap
}

// Roadmap is the course document. Keys that this service does not know
// about are kept in Extra and written back unchanged.
type Roadmap struct {
	Title   string   `json:"title,omitempty"`
	Level   string   `json:"level,omitempty"`
	Modules []Module `json:"modules"`

	Extra map[string]json.RawMessage `json:"-"`
}

type Module struct {
	Title   string   `json:"title"`
	Lessons []Lesson `json:"lessons"`

	Extra map[string]json.RawMessage `json:"-"`
}

type Lesson struct {
	Title             string          `json:"title"`
	Description       string          `json:"description,omitempty"`
	Level             string          `json:"level,omitempty"`
	Keywords          []string        `json:"keywords,omitempty"`
	Type              NodeType        `json:"type,omitempty"`
	VideoID           string          `json:"video_id,omitempty"`
	VideoIDCamel      string          `json:"videoId,omitempty"`
	VideoTitle        string          `json:"video_title,omitempty"`
	Channel           string          `json:"channel,omitempty"`
	StartTime         *float64        `json:"start_time,omitempty"`
	EndTime           *float64        `json:"end_time,omitempty"`
	TranscriptSnippet string          `json:"transcript_snippet,omitempty"`
	Content           string          `json:"content,omitempty"`
	Score             *float64        `json:"score,omitempty"`
	Note              string          `json:"note,omitempty"`
	Coverage          *CoverageReport `json:"coverage,omitempty"`
	Error             string          `json:"error,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

var (
	roadmapKeys = []string{"title", "level", "modules"}
	moduleKeys  = []string{"title", "lessons"}
	lessonKeys  = []string{
		"title", "description", "level", "keywords", "type", "video_id", "videoId",
		"video_title", "channel", "start_time", "end_time", "transcript_snippet",
		"content", "score", "note", "coverage", "error",
	}
)

// TotalLessons counts lessons across all modules.
func (r *Roadmap) TotalLessons() int {
	total := 0
	for _, m := range r.Modules {
		total += len(m.Lessons)
	}
	return total
}

// HasBinding reports whether the lesson is already bound to a video.
func (l *Lesson) HasBinding() bool {
	return l.VideoID != ""
}

func (l *Lesson) Plan(defaultLevel string) LessonPlan {
	level := l.Level
	if level == "" {
		level = defaultLevel
	}
	return LessonPlan{
		Title:       l.Title,
		TargetLevel: level,
		Description: l.Description,
		Keywords:    l.Keywords,
	}
}

// Apply merges an assembled node into the lesson, replacing any previous
// binding or supplement.
func (l *Lesson) Apply(node *LessonNode) {
	l.clearOutcome()

	l.Type = node.Type
	if l.Description == "" {
		l.Description = node.Description
	}
	score := node.Score
	l.Score = &score

	switch node.Type {
	case NodeVideo:
		v := node.Video
		start, end := v.StartTime, v.EndTime
		l.VideoID = v.VideoID
		l.VideoIDCamel = v.VideoID
		l.VideoTitle = v.Title
		l.Channel = v.Channel
		l.StartTime = &start
		l.EndTime = &end
		l.TranscriptSnippet = v.TranscriptSnippet
		l.Note = v.Note
		l.Coverage = v.Coverage
	case NodeText:
		l.Content = node.Text.Content
	}
}

// Fail records a per-lesson processing error in place of any previous
// binding or supplement.
func (l *Lesson) Fail(err error) {
	l.clearOutcome()
	l.Error = err.Error()
}

func (l *Lesson) clearOutcome() {
	l.Type = ""
	l.VideoID = ""
	l.VideoIDCamel = ""
	l.VideoTitle = ""
	l.Channel = ""
	l.StartTime = nil
	l.EndTime = nil
	l.TranscriptSnippet = ""
	l.Content = ""
	l.Score = nil
	l.Note = ""
	l.Coverage = nil
	l.Error = ""
}

func (r Roadmap) MarshalJSON() ([]byte, error) {
	type plain Roadmap
	if r.Modules == nil {
		r.Modules = []Module{}
	}
	return marshalWithExtra(plain(r), r.Extra)
}

func (r *Roadmap) UnmarshalJSON(data []byte) error {
	type plain Roadmap
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := unknownFields(data, roadmapKeys)
	if err != nil {
		return err
	}
	*r = Roadmap(p)
	r.Extra = extra
	return nil
}

func (m Module) MarshalJSON() ([]byte, error) {
	type plain Module
	if m.Lessons == nil {
		m.Lessons = []Lesson{}
	}
	return marshalWithExtra(plain(m), m.Extra)
}

func (m *Module) UnmarshalJSON(data []byte) error {
	type plain Module
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := unknownFields(data, moduleKeys)
	if err != nil {
		return err
	}
	*m = Module(p)
	m.Extra = extra
	return nil
}

func (l Lesson) MarshalJSON() ([]byte, error) {
	type plain Lesson
	return marshalWithExtra(plain(l), l.Extra)
}

func (l *Lesson) UnmarshalJSON(data []byte) error {
	type plain Lesson
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := unknownFields(data, lessonKeys)
	if err != nil {
		return err
	}
	*l = Lesson(p)
	l.Extra = extra
	return nil
}

func marshalWithExtra(v any, extra map[string]json.RawMessage) ([]byte, error) {
	base, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return base, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(base, &fields); err != nil {
		return nil, err
	}
	for k, raw := range extra {
		if _, ok := fields[k]; !ok {
			fields[k] = raw
		}
	}
	return json.Marshal(fields)
}

func unknownFields(data []byte, known []string) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(fields, k)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return fields, nil
}
