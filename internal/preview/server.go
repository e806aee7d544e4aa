package preview

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/Earlh21/rw-cradle/internal/config"
	"github.com/Earlh21/rw-cradle/internal/content"
	"github.com/Earlh21/rw-cradle/internal/logger"
	"github.com/Earlh21/rw-cradle/internal/spells"
)

// Server exposes a Planner over HTTP and WebSocket.
type Server struct {
	planner *Planner
	cfg     config.PreviewConfig
	log     *slog.Logger
}

// NewServer creates a preview server.
func NewServer(planner *Planner, cfg config.PreviewConfig) *Server {
	return &Server{planner: planner, cfg: cfg, log: logger.With("preview")}
}

// Routes configures all routes and returns the router
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/spells", func(r chi.Router) {
		r.Get("/", s.listSpells)
		r.Get("/{id}/preview", s.previewSpell)
	})

	r.Get("/ws", s.handleWebSocket)
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Preview server listening", "address", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("Preview server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// SpellInfo describes a registered spell.
type SpellInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Level       int      `json:"level"`
	Tags        []string `json:"tags"`
	DamageType  string   `json:"damage_type"`
	Upgrades    []string `json:"upgrades,omitempty"`
}

func spellInfo(id string, def spells.SpellDefinition) SpellInfo {
	info := SpellInfo{
		ID:          id,
		Name:        def.Name,
		Description: def.Description,
		Level:       def.Level,
		Tags:        def.Tags,
		DamageType:  def.Type().String(),
	}
	for _, u := range def.Upgrades {
		info.Upgrades = append(info.Upgrades, u.Stat)
	}
	return info
}

// listSpells handles GET /spells
func (s *Server) listSpells(w http.ResponseWriter, r *http.Request) {
	reg := s.planner.Registry()
	out := make([]SpellInfo, 0)
	for _, id := range reg.SpellIDs() {
		def, _ := reg.Definition(id)
		out = append(out, spellInfo(id, def))
	}
	respondJSON(w, http.StatusOK, out)
}

// previewSpell handles GET /spells/{id}/preview?caster=x,y&target=x,y&upgrade=name
func (s *Server) previewSpell(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := Request{
		Spell:    chi.URLParam(r, "id"),
		Caster:   q.Get("caster"),
		Target:   q.Get("target"),
		Upgrades: q["upgrade"],
	}

	plan, err := s.planner.Plan(req)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, plan)
}

// Reply is the WebSocket answer to one Request.
type Reply struct {
	Plan  *Plan  `json:"plan,omitempty"`
	Error string `json:"error,omitempty"`
}

// handleWebSocket upgrades the connection and answers one Reply per Request
// until the client goes away.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			allowed := s.cfg.IsOriginAllowed(origin, r.Host)
			if !allowed {
				s.log.Warn("WebSocket connection rejected - origin not allowed",
					"origin", origin,
					"host", r.Host,
					"remote_addr", r.RemoteAddr)
			}
			return allowed
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("WebSocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(s.cfg.MaxMessageSize)

	for {
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
				if werr := conn.WriteJSON(Reply{Error: "malformed request"}); werr != nil {
					return
				}
				continue
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug("WebSocket read failed", "error", err)
			}
			return
		}

		reply := Reply{}
		if plan, err := s.planner.Plan(req); err != nil {
			reply.Error = err.Error()
		} else {
			reply.Plan = plan
		}
		if err := conn.WriteJSON(reply); err != nil {
			s.log.Debug("WebSocket write failed", "error", err)
			return
		}
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, content.ErrUnknownSpell):
		return http.StatusNotFound
	case errors.Is(err, ErrBadRequest), errors.Is(err, ErrNoCaster):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("Request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Error encoding JSON", "error", err)
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
