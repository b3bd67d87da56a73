package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCacheLookupThreadSafety(t *testing.T) {
	before := testutil.ToFloat64(cacheLookups.WithLabelValues("max-facet-counting", Hit))

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			CacheLookup("max-facet-counting", true)
		}()
	}
	wg.Wait()

	require.Equal(t, before+100, testutil.ToFloat64(cacheLookups.WithLabelValues("max-facet-counting", Hit)))
}

func TestCacheLookupMiss(t *testing.T) {
	before := testutil.ToFloat64(cacheLookups.WithLabelValues("counts", Miss))
	CacheLookup("counts", false)
	require.Equal(t, before+1, testutil.ToFloat64(cacheLookups.WithLabelValues("counts", Miss)))
}

func TestOracleQuerySummary(t *testing.T) {
	RegisterOracleQuerySuccess("brave", time.Millisecond)
	RegisterOracleQueryFailure("brave", time.Millisecond)
	require.Equal(t, 2, testutil.CollectAndCount(oracleQuerySummary))
}

func TestGauges(t *testing.T) {
	SetCurrentFacets(4)
	require.Equal(t, float64(4), testutil.ToFloat64(currentFacets))

	SetSampleSize("dgreedy", 3)
	require.Equal(t, float64(3), testutil.ToFloat64(sampleSize.WithLabelValues("dgreedy")))
}
