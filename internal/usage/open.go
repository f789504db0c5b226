package usage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/finance-tools/pkg/constants"
	"go.uber.org/zap"
)

// Config selects and configures the usage sink. Backend may list several
// backends separated by commas, e.g. "sqlite,log".
type Config struct {
	Backend   string        `yaml:"backend" mapstructure:"backend"`
	DSN       string        `yaml:"dsn" mapstructure:"dsn"`
	MaxConns  int           `yaml:"maxConns" mapstructure:"maxConns"`
	RedisAddr string        `yaml:"redisAddr" mapstructure:"redisAddr"`
	Endpoint  string        `yaml:"endpoint" mapstructure:"endpoint"`
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// Backends returns the normalized backend names. An empty setting means none.
func (c Config) Backends() []string {
	var names []string
	for _, part := range strings.Split(c.Backend, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" || name == constants.UsageBackendNone {
			continue
		}
		names = append(names, name)
	}
	return names
}

// ReportTimeout returns the bound on a single report.
func (c Config) ReportTimeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return constants.DefaultUsageTimeoutSeconds * time.Second
}

// Validate checks that every backend is known and has what it needs.
func (c Config) Validate() error {
	for _, name := range c.Backends() {
		switch name {
		case constants.UsageBackendLog, constants.UsageBackendMemory:
		case constants.UsageBackendSQLite, constants.UsageBackendPostgres:
			if strings.TrimSpace(c.DSN) == "" {
				return fmt.Errorf("usage backend %q requires a dsn", name)
			}
		case constants.UsageBackendRedis:
			if strings.TrimSpace(c.RedisAddr) == "" {
				return fmt.Errorf("usage backend %q requires redisAddr", name)
			}
		case constants.UsageBackendHTTP:
			if strings.TrimSpace(c.Endpoint) == "" {
				return fmt.Errorf("usage backend %q requires an endpoint", name)
			}
		default:
			return fmt.Errorf("unknown usage backend %q", name)
		}
	}
	return nil
}

// Open builds the configured sink. The returned recorder may also implement
// StatsReader and io.Closer; callers should check with type assertions.
func Open(ctx context.Context, cfg Config, logger *zap.Logger) (Recorder, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	names := cfg.Backends()
	recorders := make([]Recorder, 0, len(names))
	closeAll := func() {
		for _, r := range recorders {
			if c, ok := r.(io.Closer); ok {
				_ = c.Close()
			}
		}
	}

	for _, name := range names {
		r, err := openBackend(ctx, name, cfg, logger)
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("open usage backend %s: %w", name, err)
		}
		logger.Info("usage backend ready",
			zap.String("op", "usage.Open"),
			zap.String("backend", name),
		)
		recorders = append(recorders, r)
	}

	switch len(recorders) {
	case 0:
		return Nop{}, nil
	case 1:
		return recorders[0], nil
	default:
		return NewMulti(recorders...), nil
	}
}

func openBackend(ctx context.Context, name string, cfg Config, logger *zap.Logger) (Recorder, error) {
	switch name {
	case constants.UsageBackendLog:
		return NewLogRecorder(logger), nil
	case constants.UsageBackendMemory:
		return NewMemoryStore(), nil
	case constants.UsageBackendSQLite:
		store, err := OpenSQLite(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return store, nil
	case constants.UsageBackendPostgres:
		store, err := ConnectPostgres(ctx, cfg.DSN, cfg.MaxConns)
		if err != nil {
			return nil, err
		}
		return store, nil
	case constants.UsageBackendRedis:
		store := NewRedisStore(cfg.RedisAddr)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		return store, nil
	case constants.UsageBackendHTTP:
		return NewHTTPRecorder(cfg.Endpoint, &http.Client{Timeout: cfg.ReportTimeout()}), nil
	}
	return nil, fmt.Errorf("unknown usage backend %q", name)
}
