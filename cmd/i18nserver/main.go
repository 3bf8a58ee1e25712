// Command i18nserver serves the documents of one translatable schema over
// HTTP, stored in MongoDB.
//
// The schema is read from the YAML or JSON declaration named by SCHEMA_FILE
// and expanded into the languages of I18N_LANGUAGES before the first request.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/platdesign/i18ngoose/modules/documents"
	"github.com/platdesign/i18ngoose/pkg/config"
	"github.com/platdesign/i18ngoose/pkg/httpserver"
	"github.com/platdesign/i18ngoose/pkg/i18n"
	"github.com/platdesign/i18ngoose/pkg/logger"
	"github.com/platdesign/i18ngoose/pkg/mongo"
	"github.com/platdesign/i18ngoose/pkg/requestid"
	"github.com/platdesign/i18ngoose/pkg/schema"
)

type appConfig struct {
	Env        string     `env:"APP_ENV" envDefault:"development"`
	LogLevel   slog.Level `env:"LOG_LEVEL" envDefault:"info"`
	SchemaFile string     `env:"SCHEMA_FILE,required"`
	Collection string     `env:"DOCUMENTS_COLLECTION" envDefault:"documents"`
	MountPath  string     `env:"DOCUMENTS_PATH" envDefault:"/documents"`

	I18n  i18n.Options
	Mongo mongo.Config
	HTTP  httpserver.Config
}

func main() {
	if err := run(); err != nil {
		slog.Error("i18nserver stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load[appConfig]()
	if err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(cfg.Env, "i18nserver"),
		logger.WithLevel(cfg.LogLevel),
		logger.WithContextExtractors(requestid.Extractor, documents.LanguageExtractor),
	)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := schema.ParseFile(cfg.SchemaFile)
	if err != nil {
		return err
	}
	if _, err := i18n.Transform(s, cfg.I18n, i18n.WithLogger(log.With(logger.Component("i18n")))); err != nil {
		return err
	}
	log.Info("schema loaded",
		logger.Schema(cfg.SchemaFile),
		slog.Int("fields", s.Len()),
		slog.Int("localized_operations", i18n.CompileLocalizer(s).Len()),
	)

	db, err := mongo.NewWithDatabase(ctx, cfg.Mongo)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Client().Disconnect(context.WithoutCancel(ctx)); err != nil {
			log.Error("mongo disconnect failed", logger.Error(err))
		}
	}()

	r := chi.NewRouter()
	r.Use(requestid.Middleware, middleware.Recoverer)
	r.Get("/health/live", httpserver.HealthCheckHandler(log))
	r.Get("/health/ready", httpserver.HealthCheckHandler(log, mongo.Healthcheck(db.Client())))
	r.Mount(cfg.MountPath, documents.Router(documents.Options{
		Schema:    s,
		Storage:   mongo.NewRepository(db, cfg.Collection, s, mongo.WithRepositoryLogger(log)),
		Languages: cfg.I18n.Languages,
		Logger:    log,
	}))

	return httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log)).Run(ctx, r)
}
