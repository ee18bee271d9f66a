package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	policyagent "github.com/vamm-energy/policyagent"
	"github.com/vamm-energy/policyagent/assembler"
	"github.com/vamm-energy/policyagent/docstore"
	"github.com/vamm-energy/policyagent/docstore/memory"
	"github.com/vamm-energy/policyagent/generator"
)

type fakeEmbedder struct{}

func (e *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0}, nil
}

type fakeGenerator struct {
	response string
	err      error
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

func (g *fakeGenerator) Stream(ctx context.Context, prompt string) (generator.Stream, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &fakeStream{fragments: []string{g.response[:len(g.response)/2], g.response[len(g.response)/2:]}}, nil
}

type fakeStream struct {
	fragments []string
	pos       int
}

func (s *fakeStream) Recv() (string, error) {
	if s.pos >= len(s.fragments) {
		return "", io.EOF
	}
	fragment := s.fragments[s.pos]
	s.pos++
	return fragment, nil
}

func (s *fakeStream) Close() error { return nil }

type fakeMemory struct{}

func (m *fakeMemory) Load(ctx context.Context, sessionId string) (string, error) { return "", nil }
func (m *fakeMemory) Append(ctx context.Context, sessionId, userTurn, assistantTurn string) error {
	return nil
}
func (m *fakeMemory) Evict(ctx context.Context, sessionId string) error { return nil }

func testServer(t *testing.T, gen generator.Generator) *Server {
	t.Helper()

	store := memory.NewStore()
	store.Add(docstore.Chunk{
		SourceId:   "policy-docs",
		PageNumber: 2,
		Title:      "Permits",
		Content:    "Permits are issued by the county.",
		Embedding:  []float32{1, 0},
	})

	asm := assembler.New(&fakeEmbedder{}, store)
	agent := policyagent.New(asm, &fakeMemory{}, gen, nil, "")

	return NewServer(agent, asm, WithDefaultSourceId("policy-docs"))
}

func do(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.srv.Handler.ServeHTTP(rec, req)
	return rec
}

func TestCreateSession(t *testing.T) {
	srv := testServer(t, &fakeGenerator{response: "answer"})

	rec := do(srv, httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["id"])
	assert.Equal(t, "policy-docs", body["source_id"])
}

func TestDeleteSession(t *testing.T) {
	srv := testServer(t, &fakeGenerator{response: "answer"})

	rec := do(srv, httptest.NewRequest(http.MethodDelete, "/api/v1/sessions/s1", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestChat(t *testing.T) {
	srv := testServer(t, &fakeGenerator{response: "The county issues permits."})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/s1/chat",
		strings.NewReader(`{"query": "who issues permits?"}`))
	rec := do(srv, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "The county issues permits.", body["answer"])
}

func TestChatRejectsMalformedBody(t *testing.T) {
	srv := testServer(t, &fakeGenerator{response: "answer"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/s1/chat",
		strings.NewReader(`{not json`))
	rec := do(srv, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatGenerationFailureMapsToBadGateway(t *testing.T) {
	srv := testServer(t, &fakeGenerator{err: errors.New("model overloaded")})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/s1/chat",
		strings.NewReader(`{"query": "who issues permits?"}`))
	rec := do(srv, req)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestChatStream(t *testing.T) {
	srv := testServer(t, &fakeGenerator{response: "The county issues permits."})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/s1/chat",
		strings.NewReader(`{"query": "who issues permits?", "stream": true}`))
	rec := do(srv, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "data: ")
	assert.Contains(t, body, "event: done")
}

func TestListPages(t *testing.T) {
	srv := testServer(t, &fakeGenerator{response: "answer"})

	rec := do(srv, httptest.NewRequest(http.MethodGet, "/api/v1/sources/policy-docs/pages", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string][]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []int{2}, body["pages"])
}

func TestListPagesUnknownSourceIsEmpty(t *testing.T) {
	srv := testServer(t, &fakeGenerator{response: "answer"})

	rec := do(srv, httptest.NewRequest(http.MethodGet, "/api/v1/sources/unknown/pages", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string][]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []int{}, body["pages"])
}

func TestPageContent(t *testing.T) {
	srv := testServer(t, &fakeGenerator{response: "answer"})

	rec := do(srv, httptest.NewRequest(http.MethodGet, "/api/v1/sources/policy-docs/pages/2", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "# Permits\n\nPermits are issued by the county.", body["content"])
}

func TestPageContentMissingPage(t *testing.T) {
	srv := testServer(t, &fakeGenerator{response: "answer"})

	rec := do(srv, httptest.NewRequest(http.MethodGet, "/api/v1/sources/policy-docs/pages/9", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "No content found for page: 9", body["content"])
}

func TestPageContentRejectsNonNumericPage(t *testing.T) {
	srv := testServer(t, &fakeGenerator{response: "answer"})

	rec := do(srv, httptest.NewRequest(http.MethodGet, "/api/v1/sources/policy-docs/pages/abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
