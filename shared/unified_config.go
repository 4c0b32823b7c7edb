package shared

import (
	"time"
)

// DatabaseConfig holds database connection pool configuration.
type DatabaseConfig struct {
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `json:"conn_max_idle_time"`
	PingTimeout     time.Duration `json:"ping_timeout"`
}

// SyncClientConfig holds HTTP client configuration for the external sync job.
type SyncClientConfig struct {
	RequestTimeout   time.Duration `json:"request_timeout"`
	MaxRetryAttempts int           `json:"max_retries"`
}

// DefaultDatabaseConfig returns production-ready pool defaults.
func DefaultDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
		PingTimeout:     5 * time.Second,
	}
}

// DefaultSyncClientConfig returns defaults for the sync job's HTTP client.
func DefaultSyncClientConfig() SyncClientConfig {
	return SyncClientConfig{
		RequestTimeout:   30 * time.Second,
		MaxRetryAttempts: 3,
	}
}
