package main

import (
	"TaskBadger/bot"
	"TaskBadger/bot/workflow"
	"TaskBadger/bot/workflow/task"
	"TaskBadger/internal/config"
	repository "TaskBadger/internal/database"
	"TaskBadger/internal/http-server/api"
	"TaskBadger/internal/lib/logger"
	"TaskBadger/internal/lib/sl"
	"TaskBadger/internal/ws"
	"flag"
	"log/slog"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env)

	lg.Info("starting taskbadger", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	db, err := repository.NewMongoClient(conf, lg)
	if err != nil {
		lg.With(
			sl.Err(err),
		).Error("mongo client")
		return
	}
	if db == nil {
		lg.Error("mongo is disabled in config; nowhere to keep tasks")
		return
	}
	lg.With(
		slog.String("host", conf.Mongo.Host),
		slog.String("port", conf.Mongo.Port),
		slog.String("user", conf.Mongo.User),
		slog.String("database", conf.Mongo.Database),
	).Info("mongo client initialized")

	hub := ws.NewHub(lg.With(sl.Module("ws.hub")))
	go hub.Run()

	registry := workflow.NewRegistry()

	createManager, err := task.NewCreateManager(registry, db, hub, lg)
	if err != nil {
		lg.With(sl.Err(err)).Error("create workflow setup")
		return
	}
	changeManager, err := task.NewChangeManager(registry, db, db, hub, lg)
	if err != nil {
		lg.With(sl.Err(err)).Error("change workflow setup")
		return
	}

	if conf.Telegram.Enabled {
		tgBot, err := bot.NewTgBot(conf.Telegram.BotName, conf.Telegram.ApiKey, createManager, changeManager, db, lg)
		if err != nil {
			lg.Error("failed to initialize telegram bot", slog.String("error", err.Error()))
		} else {
			lg.With(
				slog.String("bot_name", conf.Telegram.BotName),
			).Info("telegram bot initialized")

			go func() {
				if err := tgBot.Start(); err != nil {
					lg.Error("telegram bot error", slog.String("error", err.Error()))
				}
			}()
		}
	}

	// *** blocking start with http server ***
	err = api.New(conf, lg, db, hub)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Error("service stopped")
}
