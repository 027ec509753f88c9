package tasks

import (
	"TaskBadger/internal/lib/api/cont"
	"TaskBadger/internal/lib/api/response"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func DeleteTask(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			http.Error(w, "Task id is required", http.StatusBadRequest)
			return
		}

		if err := handler.DeleteTask(r.Context(), id); err != nil {
			log.Error("Failed to delete task",
				slog.String("id", id),
				slog.String("owner", cont.Owner(r.Context())),
				slog.Any("error", err))
			http.Error(w, "Failed to delete task", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, response.OK())
	}
}
