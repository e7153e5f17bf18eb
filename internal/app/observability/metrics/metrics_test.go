package metrics

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetIsSafeUnderConcurrentFirstUse(t *testing.T) {
	const goroutines = 16
	results := make([]*AppMetrics, goroutines)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Get()
		}(i)
	}
	wg.Wait()

	require.NotNil(t, results[0])
	for _, m := range results[1:] {
		assert.Same(t, results[0], m, "every caller sees the same instance")
	}
}

func TestGetInstrumentsAreUsable(t *testing.T) {
	m := Get()

	require.NotNil(t, m.HTTPRequestsTotal)
	require.NotNil(t, m.DiscoveryRequestsTotal)
	require.NotNil(t, m.ProviderCallDuration)
	require.NotNil(t, m.ProviderCallErrorsTotal)
	require.NotNil(t, m.PoolOperationsTotal)
	require.NotNil(t, m.ActiveSessionsGauge)

	m.DiscoveryRequestsTotal.Add(context.Background(), 1)
}
