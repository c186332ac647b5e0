package sessiondb

import (
	"context"
	"database/sql"
	"log/slog"
	"sync"
	"time"

	"github.com/Gift-726/Bus-Routing/internal/logging"
)

// Client is the main entry point for the session store
type Client struct {
	config Config
	DB     *sql.DB
	logger *slog.Logger

	shutdownChan chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
	janitorOnce  sync.Once
}

// NewClient creates a new Client with the provided configuration
func NewClient(config Config) (*Client, error) {
	db, err := createDB(config)
	if err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if config.verbose {
		logger.Info("session store ready", slog.String("db_path", config.DBPath))
	}

	return &Client{
		config:       config,
		DB:           db,
		logger:       logger,
		shutdownChan: make(chan struct{}),
	}, nil
}

// StartJanitor purges sessions idle for longer than ttl every interval until
// Close is called. Calling it more than once has no effect.
func (c *Client) StartJanitor(interval, ttl time.Duration) {
	if interval <= 0 || ttl <= 0 {
		return
	}
	c.janitorOnce.Do(func() {
		c.wg.Add(1)
		go c.janitor(interval, ttl)
	})
}

func (c *Client) janitor(interval, ttl time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.shutdownChan:
			return
		case <-ticker.C:
			start := time.Now()
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			purged, err := c.PurgeIdle(ctx, start.Add(-ttl))
			cancel()
			if err != nil {
				logging.LogError(c.logger, "failed to purge idle sessions", err)
				continue
			}
			if purged > 0 {
				logging.LogOperation(c.logger, "idle_sessions_purged",
					slog.Int64("sessions", purged),
					slog.Duration("duration", time.Since(start)))
			}
		}
	}
}

// Close stops the janitor and closes the database.
func (c *Client) Close() error {
	var err error
	c.shutdownOnce.Do(func() {
		close(c.shutdownChan)
		c.wg.Wait()
		err = c.DB.Close()
	})
	return err
}
