package scoring

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course_assembler/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

type fakeOracle struct {
	upserted  []domain.TranscriptChunk
	upsertErr error
	matches   []domain.ChunkMatch
	queryErr  error

	queryText string
	queryK    int
	queryIDs  []string
	queries   int
}

func (f *fakeOracle) Upsert(_ context.Context, chunks []domain.TranscriptChunk) error {
	f.upserted = append(f.upserted, chunks...)
	return f.upsertErr
}

func (f *fakeOracle) Query(_ context.Context, text string, k int, ids []string) ([]domain.ChunkMatch, error) {
	f.queries++
	f.queryText, f.queryK, f.queryIDs = text, k, ids
	return f.matches, f.queryErr
}

type fakeModel struct {
	spec     string
	specErr  error
	report   domain.CoverageReport
	coverErr error
}

func (f *fakeModel) SummarizeLesson(context.Context, string, string) (string, error) {
	return f.spec, f.specErr
}

func (f *fakeModel) ScoreCoverage(context.Context, string, string) (domain.CoverageReport, error) {
	return f.report, f.coverErr
}

func TestScore_BlendsAndSorts(t *testing.T) {
	oracle := &fakeOracle{matches: []domain.ChunkMatch{
		{ChunkID: "a_0", VideoID: "a", Distance: 1.0},
		{ChunkID: "b_1", VideoID: "b", Distance: 0.25},
		{ChunkID: "a_3", VideoID: "a", Distance: 0.5},
		{ChunkID: "b_0", VideoID: "b", Distance: 3.0},
	}}
	s := NewScorer(oracle, &fakeModel{spec: "Teach: loops"}, Config{}, testLogger)

	cands := []*domain.VideoCandidate{
		{VideoID: "a", IsShortlisted: true, MetaScore: 0.9},
		{VideoID: "b", IsShortlisted: true, MetaScore: 0.2},
		{VideoID: "c", IsShortlisted: false, MetaScore: 1.0},
	}
	got, err := s.Score(context.Background(), domain.LessonPlan{Title: "Loops"}, cands)
	require.NoError(t, err)

	assert.Equal(t, "Teach: loops", oracle.queryText)
	assert.Equal(t, 10, oracle.queryK)
	assert.Equal(t, []string{"a", "b"}, oracle.queryIDs)

	require.Len(t, got, 2)
	// b: 0.7*0.8 + 0.3*0.2 = 0.62; a: 0.7*(1/1.5) + 0.3*0.9 = 0.7367
	assert.Equal(t, "a", got[0].VideoID)
	assert.Equal(t, "a_3", got[0].BestChunk.ChunkID)
	assert.InDelta(t, 0.7*(1/1.5)+0.3*0.9, got[0].FinalScore, 1e-9)
	assert.InDelta(t, 1/1.5, got[0].SimilarityScore, 1e-9)
	assert.Same(t, cands[0], got[0].Candidate)

	assert.Equal(t, "b", got[1].VideoID)
	assert.Equal(t, "b_1", got[1].BestChunk.ChunkID)
	assert.InDelta(t, 0.62, got[1].FinalScore, 1e-9)
}

func TestScore_FallbackSpec(t *testing.T) {
	oracle := &fakeOracle{}
	s := NewScorer(oracle, &fakeModel{specErr: errors.New("rate limited")}, Config{}, testLogger)

	_, err := s.Score(context.Background(), domain.LessonPlan{Title: "Pointers"},
		[]*domain.VideoCandidate{{VideoID: "a", IsShortlisted: true}})
	require.NoError(t, err)
	assert.Equal(t, "Teach: Pointers", oracle.queryText)
}

func TestScore_NoShortlistedCandidates(t *testing.T) {
	oracle := &fakeOracle{}
	s := NewScorer(oracle, &fakeModel{spec: "x"}, Config{}, testLogger)

	got, err := s.Score(context.Background(), domain.LessonPlan{Title: "T"},
		[]*domain.VideoCandidate{{VideoID: "a", IsShortlisted: false}})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, oracle.queries)
}

func TestScore_IgnoresForeignMatches(t *testing.T) {
	oracle := &fakeOracle{matches: []domain.ChunkMatch{{ChunkID: "z_0", VideoID: "z", Distance: 0}}}
	s := NewScorer(oracle, &fakeModel{spec: "x"}, Config{}, testLogger)

	got, err := s.Score(context.Background(), domain.LessonPlan{Title: "T"},
		[]*domain.VideoCandidate{{VideoID: "a", IsShortlisted: true}})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestScore_QueryError(t *testing.T) {
	oracle := &fakeOracle{queryErr: errors.New("cluster red")}
	s := NewScorer(oracle, &fakeModel{spec: "x"}, Config{}, testLogger)

	_, err := s.Score(context.Background(), domain.LessonPlan{Title: "T"},
		[]*domain.VideoCandidate{{VideoID: "a", IsShortlisted: true}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cluster red")
}

func TestScore_CustomWeights(t *testing.T) {
	oracle := &fakeOracle{matches: []domain.ChunkMatch{{ChunkID: "a_0", VideoID: "a", Distance: 0}}}
	s := NewScorer(oracle, &fakeModel{spec: "x"}, Config{TopK: 3, SimilarityWeight: 0.5, MetaWeight: 0.5}, testLogger)

	got, err := s.Score(context.Background(), domain.LessonPlan{Title: "T"},
		[]*domain.VideoCandidate{{VideoID: "a", IsShortlisted: true, MetaScore: 0.4}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 0.7, got[0].FinalScore, 1e-9)
	assert.Equal(t, 3, oracle.queryK)
}

func TestIndex(t *testing.T) {
	oracle := &fakeOracle{}
	s := NewScorer(oracle, &fakeModel{}, Config{}, testLogger)

	require.NoError(t, s.Index(context.Background(), nil))
	require.NoError(t, s.Index(context.Background(), []domain.TranscriptChunk{{ChunkID: "a_0"}}))
	assert.Len(t, oracle.upserted, 1)

	oracle.upsertErr = errors.New("boom")
	assert.Error(t, s.Index(context.Background(), []domain.TranscriptChunk{{ChunkID: "a_1"}}))
}

func TestVerify(t *testing.T) {
	model := &fakeModel{report: domain.CoverageReport{Score: 0.8, Reason: "good"}}
	s := NewScorer(&fakeOracle{}, model, Config{}, testLogger)

	report, err := s.Verify(context.Background(), "spec", "text")
	require.NoError(t, err)
	assert.Equal(t, 0.8, report.Score)

	model.coverErr = errors.New("down")
	_, err = s.Verify(context.Background(), "spec", "text")
	assert.Error(t, err)
}
