package database

import (
	"context"
	"fmt"
	"time"

	"realestate-backend/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
)

// Ping kiểm tra database connection còn sống, timeout 5s
func (db *PostgresDB) Ping(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.Pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close đóng toàn bộ connections. Gọi nhiều lần vẫn an toàn.
func (db *PostgresDB) Close() error {
	if db.Pool == nil {
		return nil
	}
	db.Pool.Close()
	db.Pool = nil
	logger.Info("PostgreSQL connection pool closed", nil)
	return nil
}

// PoolCollector exposes pgxpool statistics as prometheus gauges.
type PoolCollector struct {
	db *PostgresDB

	acquired *prometheus.Desc
	idle     *prometheus.Desc
	total    *prometheus.Desc
	max      *prometheus.Desc
	canceled *prometheus.Desc
}

func NewPoolCollector(db *PostgresDB) *PoolCollector {
	return &PoolCollector{
		db:       db,
		acquired: prometheus.NewDesc("db_pool_acquired_conns", "Connections currently in use.", nil, nil),
		idle:     prometheus.NewDesc("db_pool_idle_conns", "Idle connections ready for use.", nil, nil),
		total:    prometheus.NewDesc("db_pool_total_conns", "Total connections in the pool.", nil, nil),
		max:      prometheus.NewDesc("db_pool_max_conns", "Configured pool size limit.", nil, nil),
		canceled: prometheus.NewDesc("db_pool_canceled_acquire_total", "Acquires canceled by context.", nil, nil),
	}
}

func (c *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.acquired
	ch <- c.idle
	ch <- c.total
	ch <- c.max
	ch <- c.canceled
}

func (c *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	if c.db.Pool == nil {
		return
	}
	s := c.db.Pool.Stat()
	ch <- prometheus.MustNewConstMetric(c.acquired, prometheus.GaugeValue, float64(s.AcquiredConns()))
	ch <- prometheus.MustNewConstMetric(c.idle, prometheus.GaugeValue, float64(s.IdleConns()))
	ch <- prometheus.MustNewConstMetric(c.total, prometheus.GaugeValue, float64(s.TotalConns()))
	ch <- prometheus.MustNewConstMetric(c.max, prometheus.GaugeValue, float64(s.MaxConns()))
	ch <- prometheus.MustNewConstMetric(c.canceled, prometheus.CounterValue, float64(s.CanceledAcquireCount()))
}
