package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestIncrementProjectStats_EmptyLevelIsNone(t *testing.T) {
	before := testutil.ToFloat64(ProjectStatsComputed.WithLabelValues("none"))

	IncrementProjectStats("")

	assert.Equal(t, before+1, testutil.ToFloat64(ProjectStatsComputed.WithLabelValues("none")))
}

func TestIncrementExchangeRateLookup(t *testing.T) {
	before := testutil.ToFloat64(ExchangeRateLookups.WithLabelValues("cache"))

	IncrementExchangeRateLookup("cache")
	IncrementExchangeRateLookup("cache")

	assert.Equal(t, before+2, testutil.ToFloat64(ExchangeRateLookups.WithLabelValues("cache")))
}

func TestRecordHTTPRequestDuration(t *testing.T) {
	RecordHTTPRequestDuration("GET", "/api/projects/stats", "200", 5*time.Millisecond)

	assert.Equal(t, 1, testutil.CollectAndCount(HTTPRequestDuration))
}
