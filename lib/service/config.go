package service

import (
	"fmt"
	"time"
)

type Config struct {
	DatabaseUri             string  `envconfig:"DATABASE_URI" required:"true"`
	DatabaseMaxConns        int     `envconfig:"DATABASE_MAX_CONNS" default:"10"`
	DatabaseMaxIdleConns    int     `envconfig:"DATABASE_MAX_IDLE_CONNS" default:"5"`
	DatabaseConnMaxLifetime int     `envconfig:"DATABASE_CONN_MAX_LIFETIME" default:"1800"` // 30 minutes
	DatabaseTimeout         int     `envconfig:"DATABASE_TIMEOUT" default:"60"`             // 60 seconds
	SentryDSN               string  `envconfig:"SENTRY_DSN"`
	DatadogAgentUrl         string  `envconfig:"DATADOG_AGENT_URL"`
	SentryTracesSampleRate  float64 `envconfig:"SENTRY_TRACES_SAMPLE_RATE"`
	LogFilePath             string  `envconfig:"LOG_FILE_PATH"`
	LogLevel                string  `envconfig:"LOG_LEVEL" default:"debug"`
	Host                    string  `envconfig:"HOST" default:"localhost:3000"`
	Port                    int     `envconfig:"PORT" default:"3000"`
	DefaultRateLimit        int     `envconfig:"DEFAULT_RATE_LIMIT" default:"10"`
	StrictRateLimit         int     `envconfig:"STRICT_RATE_LIMIT" default:"10"`
	BurstRateLimit          int     `envconfig:"BURST_RATE_LIMIT" default:"1"`
	EnablePrometheus        bool    `envconfig:"ENABLE_PROMETHEUS" default:"false"`
	PrometheusPort          int     `envconfig:"PROMETHEUS_PORT" default:"9092"`
	RabbitMQUri             string  `envconfig:"RABBITMQ_URI"`
	RabbitMQLedgerExchange  string  `envconfig:"RABBITMQ_LEDGER_EXCHANGE" default:"ledger_events"`
	RecentWindowMonths      int     `envconfig:"RECENT_WINDOW_MONTHS" default:"1"`
	CascadeStaleDeletes     bool    `envconfig:"CASCADE_STALE_DELETES" default:"true"`
	VerifyChainOnWrite      bool    `envconfig:"VERIFY_CHAIN_ON_WRITE" default:"true"`
	EnforceOverdraft        bool    `envconfig:"ENFORCE_OVERDRAFT" default:"false"`
	MaxBatchSize            int     `envconfig:"MAX_BATCH_SIZE" default:"500"`
	ChainAuditInterval      int     `envconfig:"CHAIN_AUDIT_INTERVAL" default:"0"` // minutes
}

// Validate rejects combinations the ledger cannot honor.
func (c *Config) Validate() error {
	if c.RecentWindowMonths < 0 {
		return fmt.Errorf("RECENT_WINDOW_MONTHS must not be negative, got %d", c.RecentWindowMonths)
	}
	if c.ChainAuditInterval < 0 {
		return fmt.Errorf("CHAIN_AUDIT_INTERVAL must not be negative, got %d", c.ChainAuditInterval)
	}
	if c.MaxBatchSize <= 0 {
		return fmt.Errorf("MAX_BATCH_SIZE must be positive, got %d", c.MaxBatchSize)
	}
	// skipping the cascade leaves later snapshots stale, which the write check would reject
	if !c.CascadeStaleDeletes && c.VerifyChainOnWrite {
		return fmt.Errorf("CASCADE_STALE_DELETES=false requires VERIFY_CHAIN_ON_WRITE=false")
	}
	return nil
}

func (c *Config) mutationTimeout() time.Duration {
	if c.DatabaseTimeout <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.DatabaseTimeout) * time.Second
}
