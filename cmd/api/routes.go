package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/Gift-726/Bus-Routing/internal/app"
	"github.com/Gift-726/Bus-Routing/internal/appconf"
	"github.com/Gift-726/Bus-Routing/internal/dataset"
	"github.com/Gift-726/Bus-Routing/internal/logging"
	"github.com/Gift-726/Bus-Routing/internal/query"
	"github.com/Gift-726/Bus-Routing/internal/restapi"
	"github.com/Gift-726/Bus-Routing/internal/webui"
	"github.com/Gift-726/Bus-Routing/sessiondb"
)

const maxJanitorInterval = 10 * time.Minute

// application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type application struct {
	logger   *slog.Logger
	sessions *sessiondb.Client
	api      *restapi.RestAPI
	ui       *webui.WebUI
}

// newApplication loads the dataset and opens the session store. A dataset
// that cannot be loaded is logged and the directory is served empty.
func newApplication(ctx context.Context, cfg appconf.Config, logger *slog.Logger) (*application, error) {
	ds := loadDataset(ctx, cfg, logger)

	sessions, err := sessiondb.NewClient(sessiondb.NewConfig(cfg.SessionDBPath, cfg.Env, logger, cfg.Env == appconf.Development))
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	sessions.StartJanitor(min(cfg.SessionIdleTTL, maxJanitorInterval), cfg.SessionIdleTTL)

	shared := app.New(cfg, logger, query.NewEngine(ds), sessions)
	ui, err := webui.NewWebUI(shared)
	if err != nil {
		logging.SafeCloseWithLogging(sessions, logger, "session_store")
		return nil, err
	}

	return &application{
		logger:   logger,
		sessions: sessions,
		api:      restapi.NewRestAPI(shared),
		ui:       ui,
	}, nil
}

func loadDataset(ctx context.Context, cfg appconf.Config, logger *slog.Logger) *dataset.Dataset {
	loadCtx, cancel := context.WithTimeout(ctx, cfg.DataTimeout)
	defer cancel()

	ds, err := dataset.Load(loadCtx, cfg.DataSource, dataset.Options{StrictValidation: cfg.StrictValidation})
	if err != nil {
		logging.LogError(logger, "dataset unavailable", err, slog.String("source", cfg.DataSource))
		return nil
	}

	for _, w := range ds.Warnings() {
		logger.Warn("dropped malformed record",
			slog.String("kind", w.Kind),
			slog.Int("index", w.Index),
			slog.String("id", w.ID),
			slog.Any("problems", w.Problems))
	}
	logging.LogOperation(logger, "dataset_loaded",
		slog.String("source", cfg.DataSource),
		slog.Int("parks", len(ds.Parks())),
		slog.Int("routes", len(ds.Routes())),
		slog.Int("warnings", len(ds.Warnings())))
	return ds
}

func (a *application) routes() http.Handler {
	router := httprouter.New()
	a.api.SetRoutes(router)
	a.ui.SetWebUIRoutes(router)
	return a.api.Middleware(router)
}

func (a *application) close() {
	a.api.Close()
	logging.SafeCloseWithLogging(a.sessions, a.logger, "session_store")
}
