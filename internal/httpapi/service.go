package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/songyh0828/groqify-chatbot/internal/chat"
	"github.com/songyh0828/groqify-chatbot/internal/metrics"
	"github.com/songyh0828/groqify-chatbot/internal/promptcache"
)

type Service struct {
	store   *chat.Store
	cache   promptcache.Cache
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

type Config struct {
	Store   *chat.Store
	Cache   promptcache.Cache
	Logger  zerolog.Logger
	Metrics *metrics.Metrics
}

func NewService(cfg Config) *Service {
	m := cfg.Metrics
	if m == nil {
		m = metrics.Global()
	}
	return &Service{
		store:   cfg.Store,
		cache:   cfg.Cache,
		logger:  cfg.Logger,
		metrics: m,
	}
}

func (s *Service) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/state", s.state)
	mux.HandleFunc("POST /api/sessions", s.newSession)
	mux.HandleFunc("POST /api/sessions/switch", s.switchSession)
	mux.HandleFunc("POST /api/model", s.setModel)
	mux.HandleFunc("POST /api/messages", s.sendMessage)
	mux.HandleFunc("POST /api/prompts/click", s.promptClick)
	mux.HandleFunc("GET /api/prompts", s.prompts)
	mux.HandleFunc("GET /api/export/{format}", s.exportTranscript)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
