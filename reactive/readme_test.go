package reactive_test

import (
	"log"
	"testing"

	"github.com/delaneyj/reactor/reactive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// from README
func TestBasicUsage(t *testing.T) {
	rs := reactive.CreateReactiveSystem()
	count := reactive.Signal(rs, 1)
	doubleCount := reactive.Computed1(rs, count, func(c int) int {
		return c * 2
	})

	effect, err := reactive.Effect(rs, func() error {
		log.Printf("Count is: %d", count.Value())
		return nil
	})
	require.NoError(t, err)
	defer effect.Dispose()

	v, err := doubleCount.Value()
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	require.NoError(t, count.SetValue(2))
	v, err = doubleCount.Value()
	require.NoError(t, err)
	assert.Equal(t, 4, v)
}

// should track a derived value through an effect and skip unchanged writes
func TestEndToEnd(t *testing.T) {
	rs := reactive.CreateReactiveSystem()
	a := reactive.Signal(rs, 1)
	b := reactive.Computed(rs, func() (int, error) {
		return a.Value() * 2, nil
	})

	seen, runs := 0, 0
	_, err := reactive.Effect(rs, func() error {
		runs++
		v, err := b.Value()
		if err != nil {
			return err
		}
		seen = v
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, seen)
	assert.Equal(t, 1, runs)

	require.NoError(t, a.SetValue(5))
	assert.Equal(t, 10, seen)
	assert.Equal(t, 2, runs)

	require.NoError(t, a.SetValue(5))
	assert.Equal(t, 10, seen)
	assert.Equal(t, 2, runs)
}

// should keep independent systems apart
func TestSystemsAreIsolated(t *testing.T) {
	rs1 := reactive.CreateReactiveSystem()
	rs2 := reactive.CreateReactiveSystem()

	a := reactive.Signal(rs1, 1)
	runs := 0
	_, err := reactive.Effect(rs2, func() error {
		runs++
		a.Value()
		return nil
	})
	require.NoError(t, err)

	// a belongs to rs1, so rs2's effect was never the active subscriber there
	require.NoError(t, a.SetValue(2))
	assert.Equal(t, 1, runs)
	assert.Equal(t, 0, a.SubscriberCount())
	assert.False(t, rs1.Tracking())
	assert.False(t, rs2.Tracking())
}
