package authenticate

import (
	"TaskBadger/internal/lib/api/cont"
	"TaskBadger/internal/lib/api/response"
	"TaskBadger/internal/lib/sl"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type Authenticate interface {
	CheckApiKey(key string) (string, error)
}

// New builds the middleware. staticKey, when set, is a bootstrap admin
// key accepted alongside the issued keys.
func New(log *slog.Logger, staticKey string, auth Authenticate) func(next http.Handler) http.Handler {
	mod := sl.Module("middleware.authenticate")
	log.With(mod).Info("authenticate middleware initialized")

	return func(next http.Handler) http.Handler {

		fn := func(w http.ResponseWriter, r *http.Request) {
			id := middleware.GetReqID(r.Context())
			remote := r.RemoteAddr
			// if the request is coming from a proxy, use the X-Forwarded-For header
			xRemote := r.Header.Get("X-Forwarded-For")
			if xRemote != "" {
				remote = xRemote
			}
			logger := log.With(
				mod,
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", remote),
				slog.String("request_id", id),
			)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			t1 := time.Now()
			// Use a pointer to the logger so we can update it throughout the request
			loggerPtr := &logger
			defer func() {
				// Use the final state of the logger with all accumulated fields
				(*loggerPtr).With(
					slog.Int("status", ww.Status()),
					slog.Int("size", ww.BytesWritten()),
					slog.Float64("duration", time.Since(t1).Seconds()),
				).Info("incoming request")
			}()

			token := ""
			header := r.Header.Get("Authorization")
			if len(header) == 0 {
				*loggerPtr = (*loggerPtr).With(sl.Err(fmt.Errorf("authorization header not found")))
				authFailed(ww, r, "Authorization header not found")
				return
			}
			if strings.Contains(header, "Bearer") {
				token = strings.Split(header, " ")[1]
			}
			if len(token) == 0 {
				*loggerPtr = (*loggerPtr).With(sl.Err(fmt.Errorf("token not found")))
				authFailed(ww, r, "Token not found")
				return
			}
			*loggerPtr = (*loggerPtr).With(sl.Secret("token", token))

			owner := ""
			if staticKey != "" && token == staticKey {
				owner = "admin"
			} else {
				if auth == nil {
					authFailed(ww, r, "Unauthorized: authentication not enabled")
					return
				}
				var err error
				owner, err = auth.CheckApiKey(token)
				if err != nil || owner == "" {
					*loggerPtr = (*loggerPtr).With(sl.Err(fmt.Errorf("unknown api key")))
					authFailed(ww, r, "Unauthorized: token not found")
					return
				}
			}
			*loggerPtr = (*loggerPtr).With(
				slog.String("owner", owner),
			)
			ctx := cont.PutOwner(r.Context(), owner)

			ww.Header().Set("X-Request-ID", id)
			ww.Header().Set("X-Owner", owner)
			next.ServeHTTP(ww, r.WithContext(ctx))
		}

		return http.HandlerFunc(fn)
	}
}

func authFailed(w http.ResponseWriter, r *http.Request, message string) {
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, response.Error(message))
}
