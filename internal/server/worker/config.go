package worker

import "time"

type Config struct {
	// Concurrency is the number of queue consumer goroutines.
	Concurrency int `conf:"concurrency"`

	// PollTimeout bounds each blocking pop on the job queue.
	PollTimeout time.Duration `conf:"poll_timeout"`

	// SyncPageSize is the WooCommerce page size used by store syncs.
	SyncPageSize int `conf:"sync_page_size"`

	// SyncCron schedules the periodic sync of all connected stores.
	SyncCron string `conf:"sync_cron"`

	// CleanupCron schedules draft billing batch cleanup.
	CleanupCron string `conf:"cleanup_cron"`

	// DraftRetention is how long draft billing batches are kept.
	DraftRetention time.Duration `conf:"draft_retention"`
}

func (c Config) WithDefaults() Config {
	if c.Concurrency <= 0 {
		c.Concurrency = 4
	}

	if c.PollTimeout <= 0 {
		c.PollTimeout = 5 * time.Second
	}

	if c.SyncPageSize <= 0 {
		c.SyncPageSize = 100
	}

	if c.SyncCron == "" {
		c.SyncCron = "0 * * * *"
	}

	if c.CleanupCron == "" {
		c.CleanupCron = "0 3 * * *"
	}

	if c.DraftRetention <= 0 {
		c.DraftRetention = 30 * 24 * time.Hour
	}

	return c
}
