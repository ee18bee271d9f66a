// Package http exposes the agent over a small session + chat API. Responses
// can be streamed; a client disconnect cancels the request context, which
// keeps partial answers out of conversation memory.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	policyagent "github.com/vamm-energy/policyagent"
	"github.com/vamm-energy/policyagent/assembler"
)

type Server struct {
	options   Options
	agent     *policyagent.Agent
	assembler *assembler.Assembler
	srv       *http.Server
}

type chatRequest struct {
	Query    string `json:"query"`
	SourceId string `json:"source_id,omitempty"`
	Stream   bool   `json:"stream,omitempty"`
}

func (s *Server) Run() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, map[string]string{
		"id":        uuid.New().String(),
		"source_id": s.options.DefaultSourceId,
	})
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	sessionId := mux.Vars(r)["id"]

	if err := s.agent.Evict(r.Context(), sessionId); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	sessionId := mux.Vars(r)["id"]

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sourceId := req.SourceId
	if len(sourceId) == 0 {
		sourceId = s.options.DefaultSourceId
	}

	if req.Stream {
		s.chatStream(w, r, sessionId, sourceId, req.Query)
		return
	}

	answer, err := s.agent.Respond(r.Context(), sessionId, sourceId, req.Query)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, policyagent.ErrGenerationFailed) {
			status = http.StatusBadGateway
		}
		writeError(w, status, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

func (s *Server) chatStream(w http.ResponseWriter, r *http.Request, sessionId, sourceId, query string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, errors.New("streaming unsupported"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	_, err := s.agent.RespondStream(r.Context(), sessionId, sourceId, query, func(fragment string) error {
		if _, err := fmt.Fprintf(w, "data: %s\n\n", fragment); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})
	if err != nil {
		// Headers are gone; the best we can do is an error event.
		fmt.Fprintf(w, "event: error\ndata: %s\n\n", err.Error())
		flusher.Flush()
		return
	}

	fmt.Fprint(w, "event: done\ndata: \n\n")
	flusher.Flush()
}

func (s *Server) listPages(w http.ResponseWriter, r *http.Request) {
	sourceId := mux.Vars(r)["source"]

	pages, err := s.assembler.ListPages(r.Context(), sourceId)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}

	if pages == nil {
		pages = []int{}
	}

	writeJSON(w, http.StatusOK, map[string][]int{"pages": pages})
}

func (s *Server) pageContent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	pageNumber, err := strconv.Atoi(vars["number"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	content, err := s.assembler.PageContent(r.Context(), vars["source"], pageNumber)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"content": content})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func NewServer(agent *policyagent.Agent, asm *assembler.Assembler, opts ...Option) *Server {
	options := NewOptions(opts...)

	if agent == nil {
		panic("agent is required")
	}

	if asm == nil {
		panic("assembler is required")
	}

	s := &Server{
		options:   options,
		agent:     agent,
		assembler: asm,
	}

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/sessions", s.createSession).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/sessions/{id}", s.deleteSession).Methods(http.MethodDelete)
	router.HandleFunc("/api/v1/sessions/{id}/chat", s.chat).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/sources/{source}/pages", s.listPages).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/sources/{source}/pages/{number}", s.pageContent).Methods(http.MethodGet)

	var handler http.Handler = router
	for i := len(options.Middleware) - 1; i >= 0; i-- {
		handler = options.Middleware[i](handler)
	}

	s.srv = &http.Server{
		Addr:    options.Address,
		Handler: handler,
	}

	return s
}
