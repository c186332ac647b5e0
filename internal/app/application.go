package app

import (
	"log/slog"

	"github.com/bluele/gcache"

	"github.com/Gift-726/Bus-Routing/internal/appconf"
	"github.com/Gift-726/Bus-Routing/internal/query"
	"github.com/Gift-726/Bus-Routing/sessiondb"
)

// FeaturedCount is how many parks and routes the home page features.
const FeaturedCount = 3

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config   appconf.Config
	Logger   *slog.Logger
	Engine   *query.Engine
	Sessions *sessiondb.Client

	searchCache gcache.Cache
}

// New wires an Application. engine must be non-nil; sessions may be nil, in
// which case searches are not handed off between pages.
func New(cfg appconf.Config, logger *slog.Logger, engine *query.Engine, sessions *sessiondb.Client) *Application {
	if logger == nil {
		logger = slog.Default()
	}
	app := &Application{
		Config:   cfg,
		Logger:   logger,
		Engine:   engine,
		Sessions: sessions,
	}
	if cfg.SearchCacheSize > 0 {
		app.searchCache = gcache.New(cfg.SearchCacheSize).LRU().Build()
	}
	return app
}
