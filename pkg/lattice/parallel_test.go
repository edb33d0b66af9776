package lattice

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chazu/sphgen/pkg/geometry"
)

func TestParallelMatchesSerial(t *testing.T) {
	g, err := New(annulusRegion(t), 0.1)
	require.NoError(t, err)

	serial := g.Generate()
	for _, workers := range []int{1, 2, 3, 7, 64} {
		got := g.GenerateParallel(workers)
		require.Equal(t, serial, got, "workers=%d", workers)
	}
}

func TestParallelDefaultWorkers(t *testing.T) {
	g, err := New(annulusRegion(t), 0.25)
	require.NoError(t, err)
	require.Equal(t, g.Generate(), g.GenerateParallel(0))
}

func TestParallelOverSolid(t *testing.T) {
	ball, err := geometry.NewSphere(1)
	require.NoError(t, err)

	g, err := New(ball, 0.2)
	require.NoError(t, err)
	require.Equal(t, g.Generate(), g.GenerateParallel(4))
}

func TestParallelMoreWorkersThanSlabs(t *testing.T) {
	// Two cells along the outermost axis; the worker count is capped.
	g, err := New(annulusRegion(t), 1.0)
	require.NoError(t, err)
	require.Equal(t, g.Generate(), g.GenerateParallel(16))
}
