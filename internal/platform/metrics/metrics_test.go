package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	count := 3

	c, err := New(reg, func() int { return count })
	require.NoError(t, err)

	c.ObserveSync(2, 0, 1)
	c.ObserveSync(0, 1, 2)
	c.ObserveSync(0, 1, 1)
	c.ObserveImport(4)

	assert.InDelta(t, 1, testutil.ToFloat64(c.syncRuns.WithLabelValues(OutcomeOK)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.syncRuns.WithLabelValues(OutcomePartial)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.syncRuns.WithLabelValues(OutcomeFailed)), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(c.syncMerged), 0)
	assert.InDelta(t, 4, testutil.ToFloat64(c.imported), 0)

	count = 7

	err = testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP quotebook_quotes Quotes currently held.
# TYPE quotebook_quotes gauge
quotebook_quotes 7
`), "quotebook_quotes")
	assert.NoError(t, err)
}

func TestNew_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()

	_, err := New(reg, func() int { return 0 })
	require.NoError(t, err)

	_, err = New(reg, func() int { return 0 })
	assert.Error(t, err)
}
