package database

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationSource(t *testing.T) {
	found, err := MigrationSource().FindMigrations()
	require.NoError(t, err)
	require.Len(t, found, 2)

	assert.Equal(t, "0001_meetings.sql", found[0].Id)
	assert.Equal(t, "0002_capture_jobs.sql", found[1].Id)
	for _, m := range found {
		assert.NotEmpty(t, m.Up, m.Id)
		assert.NotEmpty(t, m.Down, m.Id)
	}
	assert.True(t, strings.Contains(strings.Join(found[0].Up, "\n"), "CREATE TABLE IF NOT EXISTS meetings"))
}

func TestPoolStatsCollector_NilDB(t *testing.T) {
	c := NewPoolStatsCollector(nil, "meeting_notes")

	descs := make(chan *prometheus.Desc, 10)
	c.Describe(descs)
	close(descs)
	assert.Len(t, descs, 4)

	metrics := make(chan prometheus.Metric, 10)
	c.Collect(metrics)
	close(metrics)
	assert.Len(t, metrics, 0)
}

func TestRegisterPoolStats_Twice(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, RegisterPoolStats(reg, nil, "meeting_notes"))
	assert.NoError(t, RegisterPoolStats(reg, nil, "meeting_notes"))
}
