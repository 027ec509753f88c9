package api

import (
	"TaskBadger/internal/config"
	"TaskBadger/internal/http-server/handlers/errors"
	"TaskBadger/internal/http-server/handlers/key"
	"TaskBadger/internal/http-server/handlers/tasks"
	"TaskBadger/internal/http-server/middleware/authenticate"
	"TaskBadger/internal/http-server/middleware/timeout"
	"TaskBadger/internal/lib/api/response"
	"TaskBadger/internal/lib/sl"
	"TaskBadger/internal/ws"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	authenticate.Authenticate
	tasks.Core
	key.Core
}

func New(conf *config.Config, log *slog.Logger, handler Handler, hub *ws.Hub) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	router := chi.NewRouter()
	router.Use(timeout.Timeout(5))
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, response.OK())
	})

	// WebSocket clients authenticate with a token query param inside ServeWs.
	router.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWs(hub, handler, log, w, r)
	})

	router.Group(func(g chi.Router) {
		g.Use(render.SetContentType(render.ContentTypeJSON))
		g.Use(authenticate.New(log, conf.Listen.ApiKey, handler))

		g.Route("/api/v1", func(v1 chi.Router) {
			v1.Route("/tasks", func(r chi.Router) {
				r.Post("/list", tasks.ListTasks(log, handler))
				r.Get("/{id}", tasks.GetTask(log, handler))
				r.Delete("/{id}", tasks.DeleteTask(log, handler))
			})
			v1.Route("/key", func(r chi.Router) {
				r.Post("/new", key.Generate(log, handler))
			})
		})
	})

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:  router,
		ErrorLog: httpLog,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}
