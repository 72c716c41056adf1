package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rzbill/ulid/internal/runtime"
	logpkg "github.com/rzbill/ulid/pkg/log"
	"github.com/rzbill/ulid/pkg/ulid"
)

type Server struct {
	rt     *runtime.Runtime
	srv    *http.Server
	lis    net.Listener
	logger logpkg.Logger
}

func New(rt *runtime.Runtime, logger logpkg.Logger) *Server {
	mux := http.NewServeMux()
	s := &Server{rt: rt, logger: logger.With(logpkg.Component("http")), srv: &http.Server{Handler: cors(mux)}}
	mux.HandleFunc("/v1/healthz", s.handleHealth)
	mux.HandleFunc("/v1/ulid/new", s.handleNew)
	mux.HandleFunc("/v1/ulid/inspect", s.handleInspect)
	mux.HandleFunc("/v1/ulid/canonicalize", s.handleCanonicalize)
	return s
}

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.lis = l
	errCh := make(chan error, 1)
	go func() { errCh <- s.srv.Serve(l) }()
	select {
	case <-ctx.Done():
		cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(cctx)
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) Close() {
	if s.lis != nil {
		_ = s.lis.Close()
	}
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.rt.CheckHealth(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not_serving"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "issued": s.rt.Issued()})
}

type newResp struct {
	ULIDs []string `json:"ulids"`
}

func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	count := 1
	if v := r.URL.Query().Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, errors.New("count must be a positive integer"))
			return
		}
		count = n
	}
	if max := s.rt.Config().MaxBatch; count > max {
		writeError(w, http.StatusBadRequest, errors.New("count exceeds max batch of "+strconv.Itoa(max)))
		return
	}
	ids, err := s.rt.Issue(count)
	if err != nil {
		s.logger.Error("issue failed", logpkg.Err(err), logpkg.Int("count", count))
		if errors.Is(err, runtime.ErrExhausted) {
			writeError(w, http.StatusServiceUnavailable, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	resp := newResp{ULIDs: make([]string, len(ids))}
	for i, u := range ids {
		resp.ULIDs[i] = u.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

type inspectResp struct {
	ULID       string `json:"ulid"`
	Timestamp  uint64 `json:"timestampMs"`
	Time       string `json:"time"`
	Randomness string `json:"randomness"`
	IsZero     bool   `json:"isZero"`
	Canonical  string `json:"canonical"`
	WasCanonic bool   `json:"wasCanonical"`
}

func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, errors.New("missing id parameter"))
		return
	}
	canonical, err := ulid.Canonicalize(id)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	z, err := ulid.ParseZeroable(id)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, inspectResp{
		ULID:       z.String(),
		Timestamp:  z.Timestamp(),
		Time:       z.Time().Format(time.RFC3339Nano),
		Randomness: z.Randomness().String(),
		IsZero:     z.IsZero(),
		Canonical:  canonical,
		WasCanonic: canonical == id,
	})
}

type canonicalizeResp struct {
	Canonical string `json:"canonical"`
	Changed   bool   `json:"changed"`
}

func (s *Server) handleCanonicalize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, errors.New("missing id parameter"))
		return
	}
	canonical, err := ulid.Canonicalize(id)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, canonicalizeResp{Canonical: canonical, Changed: canonical != id})
}
