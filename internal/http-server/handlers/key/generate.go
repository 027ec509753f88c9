package key

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type Core interface {
	EnsureApiKey(owner string) (string, error)
}

type GenerateRequest struct {
	Owner string `json:"owner"`
}

type GenerateResponse struct {
	Owner string `json:"owner"`
	Key   string `json:"key"`
}

func Generate(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if req.Owner == "" {
			http.Error(w, "Owner is required", http.StatusBadRequest)
			return
		}

		k, err := handler.EnsureApiKey(req.Owner)
		if err != nil {
			log.Error("Failed to generate api key", slog.Any("error", err))
			http.Error(w, "Failed to generate api key", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(GenerateResponse{Owner: req.Owner, Key: k})
	}
}
