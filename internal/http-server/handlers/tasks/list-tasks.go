package tasks

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type ListRequest struct {
	ConversationID string `json:"conversation_id"`
	UserID         string `json:"user_id"`
}

func ListTasks(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ListRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if req.ConversationID == "" || req.UserID == "" {
			http.Error(w, "conversation_id and user_id are required", http.StatusBadRequest)
			return
		}

		list, err := handler.ListTasks(r.Context(), req.ConversationID, req.UserID)
		if err != nil {
			log.Error("Failed to list tasks", slog.Any("error", err))
			http.Error(w, "Failed to list tasks", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(list)
	}
}
