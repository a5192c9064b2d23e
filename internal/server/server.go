// Package server exposes commit checking as an HTTP service. Callers
// post a commit bundle and get back the issues the policy found in it.
package server

import (
	"context"
	"net/http"

	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/servex/v2"

	"github.com/lgxbslgx/skara/internal/jcheck"
)

// Server handles check requests against a single parsed configuration.
type Server struct {
	conf   *jcheck.Configuration
	config Config
	log    logze.Logger
	server *servex.Server
}

// New creates a new gate server
func New(cfg Config, conf *jcheck.Configuration) (*Server, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, erro.Wrap(err, "validate config")
	}

	log := logze.With("module", "server")

	server, err := servex.NewServer(
		servex.WithReadTimeout(cfg.Timeout),
		servex.WithIdleTimeout(cfg.Timeout*2),
		servex.WithLogger(log),
		servex.WithHealthEndpoint(),
		servex.WithDefaultMetrics(),
		servex.WithCertificate(cfg.Certificate),
	)
	if err != nil {
		return nil, erro.Wrap(err, "failed to create server")
	}

	s := &Server{
		conf:   conf,
		config: cfg,
		log:    log,
		server: server,
	}

	server.HandleFunc(cfg.Endpoint, s.handleCheck)

	return s, nil
}

// Start starts the gate server
func (s *Server) Start(ctx context.Context) error {
	if s.config.EnableHTTPS {
		return s.server.StartHTTPS(s.config.Address)
	}
	return s.server.StartHTTP(s.config.Address)
}

// Stop stops the gate server
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// handleCheck handles incoming check requests
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := servex.NewContext(w, r)

	body, err := ctx.Read()
	if err != nil {
		ctx.BadRequest(err, "failed to read request body")
		return
	}

	var payload CommitPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		ctx.BadRequest(err, "failed to decode commit payload")
		return
	}

	commit, err := toCommit(payload)
	if err != nil {
		ctx.BadRequest(err, "invalid commit payload")
		return
	}

	issues, err := jcheck.CheckCommit(commit, s.conf, nil)
	if err != nil {
		ctx.InternalServerError(err, "failed to check commit")
		return
	}

	s.log.Debug("checked commit", "commit", commit.Hash.Short(), "issues", len(issues))

	response, err := json.Marshal(toResponse(commit, issues))
	if err != nil {
		ctx.InternalServerError(err, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(response)
}
