package database

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestPoolStatsCollector_Describe(t *testing.T) {
	var c prometheus.Collector = NewPoolStatsCollector(nil, "storefront")

	ch := make(chan *prometheus.Desc, 20)
	c.Describe(ch)
	close(ch)

	var names []string
	for d := range ch {
		names = append(names, d.String())
	}
	assert.Len(t, names, 8)

	joined := strings.Join(names, "\n")
	for _, want := range []string{
		"storefront_db_pool_acquired_connections",
		"storefront_db_pool_idle_connections",
		"storefront_db_pool_total_connections",
		"storefront_db_pool_max_connections",
		"storefront_db_pool_acquire_count_total",
		"storefront_db_pool_new_connections_total",
	} {
		assert.Contains(t, joined, want)
	}
}
