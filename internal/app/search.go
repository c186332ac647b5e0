package app

import (
	"context"
	"log/slog"

	"github.com/Gift-726/Bus-Routing/internal/dataset"
	"github.com/Gift-726/Bus-Routing/internal/logging"
	"github.com/Gift-726/Bus-Routing/internal/query"
	"github.com/Gift-726/Bus-Routing/sessiondb"
)

// Search runs q through the engine, memoizing results by normalized query.
// ok is false for blank queries.
func (app *Application) Search(q string) (query.SearchResult, bool) {
	key := query.NormalizeQuery(q)
	if key == "" {
		return query.SearchResult{}, false
	}

	if app.searchCache != nil {
		if cached, err := app.searchCache.Get(key); err == nil {
			return cached.(query.SearchResult), true
		}
	}

	result, ok := app.Engine.Search(key)
	if ok && app.searchCache != nil && app.Engine.Available() {
		if err := app.searchCache.Set(key, result); err != nil {
			logging.LogError(app.Logger, "failed to cache search result", err,
				slog.String("query", key))
		}
	}
	return result, ok
}

// SaveSearch hands the result off to the next page of the session.
func (app *Application) SaveSearch(ctx context.Context, sessionID string, result query.SearchResult) error {
	if app.Sessions == nil {
		return nil
	}
	entry := sessiondb.SearchEntry{
		Query:  result.Query,
		Parks:  make([]dataset.Park, 0, len(result.Parks)),
		Routes: make([]dataset.Route, 0, len(result.Routes)),
	}
	for _, p := range result.Parks {
		entry.Parks = append(entry.Parks, *p)
	}
	for _, r := range result.Routes {
		entry.Routes = append(entry.Routes, *r)
	}
	return app.Sessions.SaveSearch(ctx, sessionID, entry)
}

// LoadSearch returns the session's last search, if any.
func (app *Application) LoadSearch(ctx context.Context, sessionID string) (sessiondb.SearchEntry, bool, error) {
	if app.Sessions == nil || sessionID == "" {
		return sessiondb.SearchEntry{}, false, nil
	}
	return app.Sessions.LoadSearch(ctx, sessionID)
}
