// Package redis opens the optional Redis connection used for token
// revocation.
package redis

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"fittrack/internal/platform/config"
)

type Client struct {
	*redis.Client
}

// New returns (nil, nil) when no URL is configured. Zero pool and timeout
// settings keep the go-redis defaults.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	opts.MinIdleConns = cfg.MinIdleConns
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &Client{Client: client}, nil
}

func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

// RegisterPoolMetrics exposes connection pool occupancy as gauges read at
// scrape time.
func (c *Client) RegisterPoolMetrics(reg prometheus.Registerer) error {
	gauges := []prometheus.Collector{
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "fittrack_redis_pool_total_conns",
			Help: "Connections currently held by the Redis pool.",
		}, func() float64 { return float64(c.PoolStats().TotalConns) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "fittrack_redis_pool_idle_conns",
			Help: "Idle connections in the Redis pool.",
		}, func() float64 { return float64(c.PoolStats().IdleConns) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "fittrack_redis_pool_timeouts",
			Help: "Times a caller waited past the pool timeout for a connection.",
		}, func() float64 { return float64(c.PoolStats().Timeouts) }),
	}
	for _, g := range gauges {
		if err := reg.Register(g); err != nil {
			return fmt.Errorf("register redis pool metrics: %w", err)
		}
	}
	return nil
}
