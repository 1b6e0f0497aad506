package metrics_test

import (
	"testing"

	"github.com/ardanlabs/powledger/business/sys/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chain struct {
	height  int
	pending int
}

func (c *chain) Height() int       { return c.height }
func (c *chain) PendingCount() int { return c.pending }

func TestRegisterChain(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := chain{height: 1}

	require.NoError(t, metrics.RegisterChain(reg, &c))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, mfs, 2)

	c.height = 3
	c.pending = 2

	mfs, err = reg.Gather()
	require.NoError(t, err)

	values := make(map[string]float64)
	for _, mf := range mfs {
		values[mf.GetName()] = mf.GetMetric()[0].GetGauge().GetValue()
	}
	assert.Equal(t, float64(3), values["powledger_chain_height"])
	assert.Equal(t, float64(2), values["powledger_pending_transactions"])

	assert.Error(t, metrics.RegisterChain(reg, &c), "registering twice should fail")
}
