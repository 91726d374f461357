package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/MikeSquared-Agency/careerbot/internal/session"
)

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

type chatResponse struct {
	Reply     string `json:"reply"`
	SessionID string `json:"sessionId"`
}

type resetRequest struct {
	SessionID string `json:"sessionId"`
}

type resetResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("invalid JSON: %v", err)})
		return
	}

	reply, sessionID, err := s.orch.HandleChatTurn(r.Context(), req.SessionID, req.Message)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, chatResponse{
			Reply:     fmt.Sprintf("Error generating a response: %v", err),
			SessionID: sessionID,
		})
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Reply: reply, SessionID: sessionID})
}

func (s *Server) reset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, resetResponse{OK: false, Error: fmt.Sprintf("invalid JSON: %v", err)})
		return
	}

	if req.SessionID == "" {
		writeJSON(w, http.StatusBadRequest, resetResponse{OK: false, Error: "Unknown sessionId"})
		return
	}

	if err := s.orch.Reset(req.SessionID); err != nil {
		if errors.Is(err, session.ErrUnknownSession) {
			writeJSON(w, http.StatusBadRequest, resetResponse{OK: false, Error: "Unknown sessionId"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, resetResponse{OK: false, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, resetResponse{OK: true})
}
