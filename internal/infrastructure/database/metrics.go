package database

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
)

// PoolStatsCollector exports database/sql pool statistics on each scrape
type PoolStatsCollector struct {
	db *sql.DB

	openConns  *prometheus.Desc
	idleConns  *prometheus.Desc
	inUseConns *prometheus.Desc
	maxConns   *prometheus.Desc
}

// NewPoolStatsCollector creates a collector for db
func NewPoolStatsCollector(db *sql.DB, namespace string) *PoolStatsCollector {
	return &PoolStatsCollector{
		db: db,
		openConns: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "db_pool", "open_conns"),
			"Number of established connections, in use and idle",
			nil, nil,
		),
		idleConns: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "db_pool", "idle_conns"),
			"Number of idle connections",
			nil, nil,
		),
		inUseConns: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "db_pool", "in_use_conns"),
			"Number of connections currently in use",
			nil, nil,
		),
		maxConns: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "db_pool", "max_conns"),
			"Maximum number of open connections",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector
func (c *PoolStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.openConns
	ch <- c.idleConns
	ch <- c.inUseConns
	ch <- c.maxConns
}

// Collect implements prometheus.Collector
func (c *PoolStatsCollector) Collect(ch chan<- prometheus.Metric) {
	if c.db == nil {
		return
	}
	stats := c.db.Stats()
	ch <- prometheus.MustNewConstMetric(c.openConns, prometheus.GaugeValue, float64(stats.OpenConnections))
	ch <- prometheus.MustNewConstMetric(c.idleConns, prometheus.GaugeValue, float64(stats.Idle))
	ch <- prometheus.MustNewConstMetric(c.inUseConns, prometheus.GaugeValue, float64(stats.InUse))
	ch <- prometheus.MustNewConstMetric(c.maxConns, prometheus.GaugeValue, float64(stats.MaxOpenConnections))
}

// RegisterPoolStats registers a pool collector, tolerating a previous registration
func RegisterPoolStats(reg prometheus.Registerer, db *sql.DB, namespace string) error {
	if err := reg.Register(NewPoolStatsCollector(db, namespace)); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			return err
		}
	}
	return nil
}
