package features_test

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
)

type handler func(req *ports.Request) (any, error)

// fakeServer is an in-memory backend answering transport requests by
// method and path.
type fakeServer struct {
	mu     sync.Mutex
	routes map[string]handler
	hits   map[string]int
}

func newFakeServer() *fakeServer {
	return &fakeServer{routes: map[string]handler{}, hits: map[string]int{}}
}

func (s *fakeServer) handle(method, path string, h handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[method+" "+path] = h
}

func (s *fakeServer) count(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[method+" "+path]
}

func (s *fakeServer) Do(_ context.Context, req *ports.Request) (*ports.Response, error) {
	route := req.Method + " " + req.Path
	s.mu.Lock()
	s.hits[route]++
	h, ok := s.routes[route]
	s.mu.Unlock()
	if !ok {
		return nil, &domain.APIError{Status: http.StatusNotFound, Message: "no route " + route}
	}

	payload, err := h(req)
	if err != nil {
		return nil, err
	}
	if req.ResponseType == ports.ResponseBinary {
		body, _ := payload.([]byte)
		return &ports.Response{Status: http.StatusOK, Body: body}, nil
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	if req.Result != nil && payload != nil {
		if err := json.Unmarshal(body, req.Result); err != nil {
			return nil, err
		}
	}
	return &ports.Response{Status: http.StatusOK, Body: body}, nil
}
