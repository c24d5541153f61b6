package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/flathive/flathive/internal/api/respond"
	"github.com/flathive/flathive/internal/assistant"
	"github.com/flathive/flathive/internal/model"
)

// chatApology matches the client-facing fallback shown when the assistant
// backend is unavailable.
const chatApology = "Sorry, I'm having a little trouble right now. Please try again later."

// AssistantHandler serves the three advisory flows.
type AssistantHandler struct {
	assistant *assistant.Assistant
}

func NewAssistantHandler(a *assistant.Assistant) *AssistantHandler {
	return &AssistantHandler{assistant: a}
}

// Chat POST /api/assistant/chat. Provider failure degrades to a 200 with the
// apology text; the conversational UI never sees a hard error.
func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req assistant.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	reply, err := h.assistant.Chat(r.Context(), req)
	if err != nil {
		if errors.Is(err, model.ErrValidation) {
			respond.WriteBadRequest(w, err.Error())
			return
		}
		log.Warn().Err(err).Msg("assistant chat failed; serving apology")
		respond.WriteJSON(w, http.StatusOK, assistant.ChatReply{Response: chatApology})
		return
	}
	respond.WriteJSON(w, http.StatusOK, reply)
}

// GrocerySuggestions POST /api/assistant/grocery-suggestions.
func (h *AssistantHandler) GrocerySuggestions(w http.ResponseWriter, r *http.Request) {
	var req assistant.GrocerySuggestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	reply, err := h.assistant.GrocerySuggestions(r.Context(), req)
	if err != nil {
		respond.WriteError(w, http.StatusBadGateway, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, reply)
}

// SelfCare POST /api/assistant/self-care.
func (h *AssistantHandler) SelfCare(w http.ResponseWriter, r *http.Request) {
	var req assistant.SelfCareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	reply, err := h.assistant.SelfCareAdvice(r.Context(), req)
	if err != nil {
		if errors.Is(err, model.ErrValidation) {
			respond.WriteBadRequest(w, err.Error())
			return
		}
		respond.WriteError(w, http.StatusBadGateway, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, reply)
}
