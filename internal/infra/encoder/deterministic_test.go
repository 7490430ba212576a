package encoder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeterministicEncodeIsStable(t *testing.T) {
	enc := NewDeterministic(64)

	first, err := enc.Encode(context.Background(), "How do I reset my password?")
	require.NoError(t, err)
	second, err := enc.Encode(context.Background(), "How do I reset my password?")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestDeterministicDistinctInputsDiffer(t *testing.T) {
	enc := NewDeterministic(64)

	a, err := enc.Encode(context.Background(), "refund policy")
	require.NoError(t, err)
	b, err := enc.Encode(context.Background(), "support hours")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestDeterministicDimension(t *testing.T) {
	require.Equal(t, 64, NewDeterministic(64).Dimension())
	require.Equal(t, 384, NewDeterministic(0).Dimension(), "non-positive dimension falls back to the default")

	vector, err := NewDeterministic(16).Encode(context.Background(), "anything")
	require.NoError(t, err)
	require.Len(t, vector, 16)
}

func TestDeterministicEmptyTextIsZeroVector(t *testing.T) {
	vector, err := NewDeterministic(8).Encode(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, vector, 8)
	for _, component := range vector {
		require.Zero(t, component)
	}
}

func TestDeterministicVectorsAreUnitLength(t *testing.T) {
	vector, err := NewDeterministic(32).Encode(context.Background(), "two-factor authentication")
	require.NoError(t, err)

	var norm float64
	for _, component := range vector {
		norm += float64(component) * float64(component)
	}
	require.InDelta(t, 1.0, norm, 1e-3)
}
