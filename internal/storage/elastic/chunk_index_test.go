package elastic

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"testing"

	es "github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course_assembler/internal/domain"
)

type mockTransport struct {
	RoundTripFn func(req *http.Request) (*http.Response, error)
}

func (t *mockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.RoundTripFn(req)
}

func respond(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     http.Header{"X-Elastic-Product": []string{"Elasticsearch"}, "Content-Type": []string{"application/json"}},
	}
}

type fakeEmbedder struct {
	dims  int
	err   error
	calls [][]string
}

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float64, error) {
	f.calls = append(f.calls, texts)
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float64, len(texts))
	for i := range texts {
		out[i] = make([]float64, f.dims)
		out[i][0] = float64(len(texts[i]))
	}
	return out, nil
}

func newTestIndex(t *testing.T, embedder Embedder, fn func(req *http.Request) (*http.Response, error)) *ChunkIndex {
	t.Helper()
	client, err := es.NewClient(es.Config{Transport: &mockTransport{RoundTripFn: fn}})
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewChunkIndex(client, Config{Index: "chunks", Dims: 3}, embedder, logger)
}

func TestEnsureIndex_CreatesWhenMissing(t *testing.T) {
	var created map[string]any
	idx := newTestIndex(t, &fakeEmbedder{dims: 3}, func(req *http.Request) (*http.Response, error) {
		switch req.Method {
		case http.MethodHead:
			return respond(http.StatusNotFound, ""), nil
		case http.MethodPut:
			assert.Equal(t, "/chunks", req.URL.Path)
			require.NoError(t, json.NewDecoder(req.Body).Decode(&created))
			return respond(http.StatusOK, `{"acknowledged": true}`), nil
		}
		return nil, errors.New("unexpected request")
	})

	require.NoError(t, idx.EnsureIndex(context.Background()))

	props := created["mappings"].(map[string]any)["properties"].(map[string]any)
	emb := props["embedding"].(map[string]any)
	assert.Equal(t, "dense_vector", emb["type"])
	assert.Equal(t, "l2_norm", emb["similarity"])
	assert.Equal(t, float64(3), emb["dims"])
	assert.Equal(t, "keyword", props["video_id"].(map[string]any)["type"])
}

func TestEnsureIndex_ExistingIsNoop(t *testing.T) {
	calls := 0
	idx := newTestIndex(t, &fakeEmbedder{dims: 3}, func(req *http.Request) (*http.Response, error) {
		calls++
		return respond(http.StatusOK, ""), nil
	})

	require.NoError(t, idx.EnsureIndex(context.Background()))
	assert.Equal(t, 1, calls)
}

func TestUpsert_BulkIndexesByChunkID(t *testing.T) {
	var lines []string
	var refresh string
	embedder := &fakeEmbedder{dims: 3}
	idx := newTestIndex(t, embedder, func(req *http.Request) (*http.Response, error) {
		assert.True(t, strings.HasSuffix(req.URL.Path, "/_bulk"))
		refresh = req.URL.Query().Get("refresh")
		sc := bufio.NewScanner(req.Body)
		sc.Buffer(make([]byte, 1024*1024), 1024*1024)
		for sc.Scan() {
			lines = append(lines, sc.Text())
		}
		return respond(http.StatusOK, `{"errors": false, "items": []}`), nil
	})

	chunks := []domain.TranscriptChunk{
		{ChunkID: "v1_0", VideoID: "v1", StartTime: 0, EndTime: 30, Text: "hello"},
		{ChunkID: "v1_1", VideoID: "v1", StartTime: 30, EndTime: 60, Text: "world!"},
	}
	require.NoError(t, idx.Upsert(context.Background(), chunks))

	assert.Equal(t, "true", refresh)
	require.Len(t, lines, 4)
	assert.JSONEq(t, `{"index": {"_index": "chunks", "_id": "v1_0"}}`, lines[0])

	var doc chunkDoc
	require.NoError(t, json.Unmarshal([]byte(lines[3]), &doc))
	assert.Equal(t, "v1_1", doc.ChunkID)
	assert.Equal(t, 30.0, doc.StartTime)
	assert.Equal(t, []float64{6, 0, 0}, doc.Embedding)
	require.Len(t, embedder.calls, 1)
	assert.Equal(t, []string{"hello", "world!"}, embedder.calls[0])
}

func TestUpsert_ItemErrors(t *testing.T) {
	idx := newTestIndex(t, &fakeEmbedder{dims: 3}, func(req *http.Request) (*http.Response, error) {
		return respond(http.StatusOK, `{"errors": true, "items": [{"index": {"_id": "v1_0", "error": {"type": "mapper_parsing_exception", "reason": "bad vector"}}}]}`), nil
	})

	err := idx.Upsert(context.Background(), []domain.TranscriptChunk{{ChunkID: "v1_0", VideoID: "v1", Text: "x"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad vector")
}

func TestUpsert_DimensionMismatch(t *testing.T) {
	idx := newTestIndex(t, &fakeEmbedder{dims: 5}, func(req *http.Request) (*http.Response, error) {
		t.Error("no request expected")
		return nil, errors.New("unexpected")
	})

	err := idx.Upsert(context.Background(), []domain.TranscriptChunk{{ChunkID: "v1_0", Text: "x"}})
	require.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestUpsert_EmptyIsNoop(t *testing.T) {
	embedder := &fakeEmbedder{dims: 3}
	idx := newTestIndex(t, embedder, func(req *http.Request) (*http.Response, error) {
		t.Error("no request expected")
		return nil, errors.New("unexpected")
	})

	require.NoError(t, idx.Upsert(context.Background(), nil))
	assert.Empty(t, embedder.calls)
}

func TestQuery_FiltersAndConvertsScores(t *testing.T) {
	var body map[string]any
	idx := newTestIndex(t, &fakeEmbedder{dims: 3}, func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "/chunks/_search", req.URL.Path)
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		return respond(http.StatusOK, `{"hits": {"hits": [
			{"_id": "a_0", "_score": 0.8, "_source": {"chunk_id": "a_0", "video_id": "a", "start_time": 0, "end_time": 40, "text": "alpha"}},
			{"_id": "b_2", "_score": 0.5, "_source": {"video_id": "b", "start_time": 80, "end_time": 120, "text": "beta"}}
		]}}`), nil
	})

	matches, err := idx.Query(context.Background(), "Teach: channels", 10, []string{"a", "b"})
	require.NoError(t, err)

	knn := body["knn"].(map[string]any)
	assert.Equal(t, "embedding", knn["field"])
	assert.Equal(t, float64(10), knn["k"])
	assert.Equal(t, float64(100), knn["num_candidates"])
	terms := knn["filter"].(map[string]any)["terms"].(map[string]any)
	assert.Equal(t, []any{"a", "b"}, terms["video_id"])

	require.Len(t, matches, 2)
	assert.Equal(t, "a_0", matches[0].ChunkID)
	assert.InDelta(t, 0.25, matches[0].Distance, 1e-9)
	assert.InDelta(t, 0.8, 1/(1+matches[0].Distance), 1e-9)
	assert.Equal(t, "b_2", matches[1].ChunkID)
	assert.InDelta(t, 1.0, matches[1].Distance, 1e-9)
	assert.Equal(t, 80.0, matches[1].StartTime)
}

func TestQuery_NoVideosSkipsSearch(t *testing.T) {
	embedder := &fakeEmbedder{dims: 3}
	idx := newTestIndex(t, embedder, func(req *http.Request) (*http.Response, error) {
		t.Error("no request expected")
		return nil, errors.New("unexpected")
	})

	matches, err := idx.Query(context.Background(), "spec", 10, nil)
	require.NoError(t, err)
	assert.Empty(t, matches)
	assert.Empty(t, embedder.calls)
}

func TestQuery_SearchError(t *testing.T) {
	idx := newTestIndex(t, &fakeEmbedder{dims: 3}, func(req *http.Request) (*http.Response, error) {
		return respond(http.StatusBadRequest, `{"error": {"type": "search_phase_execution_exception"}}`), nil
	})

	_, err := idx.Query(context.Background(), "spec", 10, []string{"a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error searching")
}

func TestScoreToDistance(t *testing.T) {
	assert.Equal(t, 0.0, scoreToDistance(1))
	assert.Equal(t, 1.0, scoreToDistance(0.5))
	assert.Equal(t, 1e9, scoreToDistance(0))
}
