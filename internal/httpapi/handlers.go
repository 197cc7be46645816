package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/songyh0828/groqify-chatbot/internal/catalog"
	"github.com/songyh0828/groqify-chatbot/internal/chat"
	"github.com/songyh0828/groqify-chatbot/internal/export"
)

type stateResponse struct {
	Sessions          []chat.SessionSummary `json:"sessions"`
	ActiveSession     string                `json:"active_session"`
	Messages          []chat.Message        `json:"messages"`
	Categories        []string              `json:"categories"`
	CategoriesVisible bool                  `json:"categories_visible"`
	Models            []catalog.Model       `json:"models"`
	SelectedModel     string                `json:"selected_model"`
}

func (s *Service) state(w http.ResponseWriter, _ *http.Request) {
	active := s.store.ActiveSession()
	writeJSON(w, http.StatusOK, stateResponse{
		Sessions:          s.store.Sessions(),
		ActiveSession:     active.Name,
		Messages:          active.Messages,
		Categories:        active.Categories,
		CategoriesVisible: active.PromptsVisible,
		Models:            catalog.Models,
		SelectedModel:     s.store.SelectedModel().ID,
	})
}

func (s *Service) newSession(w http.ResponseWriter, _ *http.Request) {
	name := s.store.NewSession()
	writeJSON(w, http.StatusCreated, map[string]string{"name": name})
}

func (s *Service) switchSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.store.SwitchActive(req.Name); err != nil {
		if errors.Is(err, chat.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"active_session": req.Name})
}

func (s *Service) setModel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.store.SetModel(req.ID); err != nil {
		if errors.Is(err, chat.ErrInvalidModel) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"selected_model": req.ID})
}

type sendResponse struct {
	User  chat.Message `json:"user"`
	Reply chat.Message `json:"reply"`
}

func (s *Service) sendMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is empty")
		return
	}
	user, reply, err := s.store.SendMessage(r.Context(), req.Text)
	if err != nil {
		s.logger.Error().Err(err).Msg("send message failed")
		writeJSON(w, http.StatusBadGateway, map[string]any{"error": err.Error(), "user": user})
		return
	}
	writeJSON(w, http.StatusOK, sendResponse{User: user, Reply: reply})
}

func (s *Service) promptClick(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeError(w, http.StatusBadRequest, "prompt is empty")
		return
	}
	user, reply, err := s.store.SendPrompt(r.Context(), req.Prompt)
	if err != nil {
		s.logger.Error().Err(err).Msg("prompt click failed")
		writeJSON(w, http.StatusBadGateway, map[string]any{"error": err.Error(), "user": user})
		return
	}
	writeJSON(w, http.StatusOK, sendResponse{User: user, Reply: reply})
}

func (s *Service) prompts(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("category")
	category, ok := catalog.CategoryByKey(key)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown category")
		return
	}
	prompts, err := s.cache.Prompts(r.Context(), category, s.store.SelectedModel().ID)
	if err != nil {
		s.logger.Error().Err(err).Str("category", key).Msg("prompt fetch failed")
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"prompts": prompts})
}

func (s *Service) exportTranscript(w http.ResponseWriter, r *http.Request) {
	messages := s.store.ActiveSession().Messages

	var (
		data        []byte
		contentType string
		err         error
	)
	format := r.PathValue("format")
	switch format {
	case "pdf":
		data, err = export.ToPDF(messages)
		contentType = "application/pdf"
	case "json":
		data, err = export.ToJSON(messages)
		contentType = "application/json"
	case "txt":
		data = []byte(export.ToText(messages))
		contentType = "text/plain; charset=utf-8"
	default:
		writeError(w, http.StatusNotFound, "unknown export format")
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Str("format", format).Msg("export failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.metrics.Exports.Inc()
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="chat_history.`+format+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
