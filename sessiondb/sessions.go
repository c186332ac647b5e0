package sessiondb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Gift-726/Bus-Routing/internal/dataset"
	"github.com/Gift-726/Bus-Routing/internal/logging"
)

// Keys written by SaveSearch.
const (
	KeySearchQuery  = "searchQuery"
	KeyParkResults  = "parkResults"
	KeyRouteResults = "routeResults"
)

var ErrEmptySessionID = errors.New("session id is required")

// SearchEntry is the search hand-off stored between pages. Records are copied
// in full so the destination page can render them without the dataset.
type SearchEntry struct {
	Query  string
	Parks  []dataset.Park
	Routes []dataset.Route
}

// Set stores value under key for the session, replacing any previous value.
func (c *Client) Set(ctx context.Context, sessionID, key, value string) error {
	if sessionID == "" {
		return ErrEmptySessionID
	}
	_, err := c.DB.ExecContext(ctx, upsertEntry, sessionID, key, value, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("error storing session entry %q: %w", key, err)
	}
	return nil
}

// Get returns the value stored under key. ok is false when nothing is stored.
func (c *Client) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	var value string
	err := c.DB.QueryRowContext(ctx,
		`SELECT entry_value FROM session_entries WHERE session_id = ? AND entry_key = ?`,
		sessionID, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("error reading session entry %q: %w", key, err)
	}
	return value, true, nil
}

// SaveSearch overwrites the three search keys of a session in one transaction.
func (c *Client) SaveSearch(ctx context.Context, sessionID string, entry SearchEntry) error {
	if sessionID == "" {
		return ErrEmptySessionID
	}

	parks := entry.Parks
	if parks == nil {
		parks = []dataset.Park{}
	}
	routes := entry.Routes
	if routes == nil {
		routes = []dataset.Route{}
	}
	parksJSON, err := json.Marshal(parks)
	if err != nil {
		return fmt.Errorf("error encoding park results: %w", err)
	}
	routesJSON, err := json.Marshal(routes)
	if err != nil {
		return fmt.Errorf("error encoding route results: %w", err)
	}

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer logging.SafeRollbackWithLogging(tx, c.logger, "save_search")

	stmt, err := tx.PrepareContext(ctx, upsertEntry)
	if err != nil {
		return fmt.Errorf("error preparing statement: %w", err)
	}
	defer logging.SafeCloseWithLogging(stmt, c.logger, "save_search_statement")

	now := time.Now().UnixNano()
	for _, kv := range [][2]string{
		{KeySearchQuery, entry.Query},
		{KeyParkResults, string(parksJSON)},
		{KeyRouteResults, string(routesJSON)},
	} {
		if _, err := stmt.ExecContext(ctx, sessionID, kv[0], kv[1], now); err != nil {
			return fmt.Errorf("error storing session entry %q: %w", kv[0], err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}

// LoadSearch returns the last search saved for the session. ok is false when
// the session has no complete search stored.
func (c *Client) LoadSearch(ctx context.Context, sessionID string) (SearchEntry, bool, error) {
	rows, err := c.DB.QueryContext(ctx,
		`SELECT entry_key, entry_value FROM session_entries
		 WHERE session_id = ? AND entry_key IN (?, ?, ?)`,
		sessionID, KeySearchQuery, KeyParkResults, KeyRouteResults,
	)
	if err != nil {
		return SearchEntry{}, false, fmt.Errorf("error reading search: %w", err)
	}
	defer rows.Close() // nolint:errcheck

	values := make(map[string]string, 3)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return SearchEntry{}, false, fmt.Errorf("error scanning search: %w", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return SearchEntry{}, false, fmt.Errorf("error reading search: %w", err)
	}
	if len(values) < 3 {
		return SearchEntry{}, false, nil
	}

	entry := SearchEntry{Query: values[KeySearchQuery]}
	if err := json.Unmarshal([]byte(values[KeyParkResults]), &entry.Parks); err != nil {
		return SearchEntry{}, false, fmt.Errorf("error decoding park results: %w", err)
	}
	if err := json.Unmarshal([]byte(values[KeyRouteResults]), &entry.Routes); err != nil {
		return SearchEntry{}, false, fmt.Errorf("error decoding route results: %w", err)
	}
	return entry, true, nil
}

// EndSession drops every entry of the session.
func (c *Client) EndSession(ctx context.Context, sessionID string) error {
	_, err := c.DB.ExecContext(ctx, `DELETE FROM session_entries WHERE session_id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("error ending session: %w", err)
	}
	return nil
}

// PurgeIdle drops sessions whose most recent write is before olderThan and
// returns how many sessions were removed.
func (c *Client) PurgeIdle(ctx context.Context, olderThan time.Time) (int64, error) {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("error starting transaction: %w", err)
	}
	defer logging.SafeRollbackWithLogging(tx, c.logger, "purge_idle_sessions")

	const idle = `SELECT session_id FROM session_entries
		GROUP BY session_id HAVING MAX(updated_at) < ?`

	var sessions int64
	cutoff := olderThan.UnixNano()
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM (`+idle+`)`, cutoff).Scan(&sessions); err != nil {
		return 0, fmt.Errorf("error counting idle sessions: %w", err)
	}
	if sessions == 0 {
		return 0, nil
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM session_entries WHERE session_id IN (`+idle+`)`, cutoff); err != nil {
		return 0, fmt.Errorf("error purging idle sessions: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("error committing transaction: %w", err)
	}
	return sessions, nil
}

// SessionCount returns the number of sessions holding at least one entry.
func (c *Client) SessionCount(ctx context.Context) (int, error) {
	var n int
	err := c.DB.QueryRowContext(ctx, `SELECT COUNT(DISTINCT session_id) FROM session_entries`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error counting sessions: %w", err)
	}
	return n, nil
}

const upsertEntry = `
	INSERT INTO session_entries (session_id, entry_key, entry_value, updated_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (session_id, entry_key)
	DO UPDATE SET entry_value = excluded.entry_value, updated_at = excluded.updated_at`
