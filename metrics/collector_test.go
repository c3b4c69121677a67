package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/spatial-index/rtree"
)

func TestCollector(t *testing.T) {
	c, err := rtree.NewCapacity(1, 2)
	require.NoError(t, err)
	s := rtree.QuadraticStrategy(c)
	tree := rtree.New[string]()
	for i, name := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, tree.Insert(s, name, rtree.NewRect(float64(i), 0, 1, 1)))
	}
	require.True(t, tree.Remove("e"))

	collector := NewCollector("test", tree.Stats)
	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(collector))

	families, err := reg.Gather()
	require.NoError(t, err)
	var names []string
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	require.ElementsMatch(t, []string{
		"test_rtree_elements",
		"test_rtree_height",
		"test_rtree_inserts_total",
		"test_rtree_leaves",
		"test_rtree_nodes",
		"test_rtree_reinserted_total",
		"test_rtree_removals_total",
		"test_rtree_splits_total",
	}, names)

	st := tree.Stats()
	expected := `
# HELP test_rtree_elements Number of elements in the tree.
# TYPE test_rtree_elements gauge
test_rtree_elements 4
# HELP test_rtree_inserts_total Elements inserted.
# TYPE test_rtree_inserts_total counter
test_rtree_inserts_total 5
# HELP test_rtree_removals_total Elements removed.
# TYPE test_rtree_removals_total counter
test_rtree_removals_total 1
`
	require.NoError(t, testutil.CollectAndCompare(collector, strings.NewReader(expected),
		"test_rtree_elements", "test_rtree_inserts_total", "test_rtree_removals_total"))

	require.Equal(t, 2, testutil.CollectAndCount(collector, "test_rtree_splits_total"))
	require.Equal(t, float64(st.Height), gatheredValue(t, reg, "test_rtree_height"))
	require.Equal(t, float64(st.Nodes), gatheredValue(t, reg, "test_rtree_nodes"))
}

func TestCollectorFollowsTree(t *testing.T) {
	tree := rtree.New[int]()
	collector := NewCollector("", tree.Stats)
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(collector))
	require.Zero(t, gatheredValue(t, reg, "rtree_elements"))

	s := rtree.RStarStrategy(rtree.DefaultCapacity())
	for i := 0; i < 25; i++ {
		require.NoError(t, tree.Insert(s, i, rtree.NewRect(float64(i), float64(i), 1, 1)))
	}
	require.Equal(t, 25.0, gatheredValue(t, reg, "rtree_elements"))
	require.Equal(t, float64(tree.Height()), gatheredValue(t, reg, "rtree_height"))
}

func gatheredValue(t *testing.T, g prometheus.Gatherer, name string) float64 {
	t.Helper()
	families, err := g.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		require.Len(t, mf.GetMetric(), 1)
		m := mf.GetMetric()[0]
		if gauge := m.GetGauge(); gauge != nil {
			return gauge.GetValue()
		}
		return m.GetCounter().GetValue()
	}
	t.Fatalf("metric %s not gathered", name)
	return 0
}
