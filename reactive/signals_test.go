package reactive_test

import (
	"math"
	"testing"

	"github.com/delaneyj/reactor/reactive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countRuns[T comparable](t *testing.T, rs *reactive.ReactiveSystem, s *reactive.WriteableSignal[T]) *int {
	t.Helper()
	runs := 0
	e, err := reactive.Effect(rs, func() error {
		runs++
		s.Value()
		return nil
	})
	require.NoError(t, err)
	t.Cleanup(e.Dispose)
	return &runs
}

// should not notify when the written value is the current one
func TestSignalIdempotentWrite(t *testing.T) {
	rs := reactive.CreateReactiveSystem()
	s := reactive.Signal(rs, "a")
	runs := countRuns(t, rs, s)

	require.NoError(t, s.SetValue("a"))
	assert.Equal(t, 1, *runs)

	require.NoError(t, s.SetValue("b"))
	assert.Equal(t, 2, *runs)

	require.NoError(t, s.SetValue("b"))
	assert.Equal(t, 2, *runs)
}

// should treat NaN replaced by NaN as unchanged
func TestSignalNaNIsUnchanged(t *testing.T) {
	rs := reactive.CreateReactiveSystem()
	s := reactive.Signal(rs, math.NaN())
	runs := countRuns(t, rs, s)

	require.NoError(t, s.SetValue(math.NaN()))
	assert.Equal(t, 1, *runs)

	require.NoError(t, s.SetValue(1.5))
	assert.Equal(t, 2, *runs)
}

type point struct {
	X, Y int
}

type sample struct {
	X float64
	Y int
}

// should store and notify writes to a struct that holds a NaN
func TestSignalStructWithNaNChanges(t *testing.T) {
	rs := reactive.CreateReactiveSystem()
	s := reactive.Signal(rs, sample{X: math.NaN(), Y: 1})
	runs := countRuns(t, rs, s)

	require.NoError(t, s.SetValue(sample{X: math.NaN(), Y: 2}))
	assert.Equal(t, 2, s.Peek().Y)
	assert.Equal(t, 2, *runs)

	// never equal to itself, so even an identical rewrite notifies
	require.NoError(t, s.SetValue(s.Peek()))
	assert.Equal(t, 3, *runs)
}

// should treat float32 NaN like float64 NaN
func TestSignalFloat32NaNIsUnchanged(t *testing.T) {
	rs := reactive.CreateReactiveSystem()
	s := reactive.Signal(rs, float32(math.NaN()))
	runs := countRuns(t, rs, s)

	require.NoError(t, s.SetValue(float32(math.NaN())))
	assert.Equal(t, 1, *runs)

	require.NoError(t, s.SetValue(2))
	assert.Equal(t, 2, *runs)
}

// should compare pointers by identity, not by what they point to
func TestSignalPointerIdentity(t *testing.T) {
	rs := reactive.CreateReactiveSystem()
	p := &point{X: 1, Y: 2}
	s := reactive.Signal(rs, p)
	runs := countRuns(t, rs, s)

	require.NoError(t, s.SetValue(p))
	assert.Equal(t, 1, *runs)

	require.NoError(t, s.SetValue(&point{X: 1, Y: 2}))
	assert.Equal(t, 2, *runs)
}

// should compare struct values field by field
func TestSignalStructValue(t *testing.T) {
	rs := reactive.CreateReactiveSystem()
	s := reactive.Signal(rs, point{X: 1, Y: 2})
	runs := countRuns(t, rs, s)

	require.NoError(t, s.SetValue(point{X: 1, Y: 2}))
	assert.Equal(t, 1, *runs)

	require.NoError(t, s.SetValue(point{X: 2, Y: 2}))
	assert.Equal(t, 2, *runs)
}

func TestSignalUpdate(t *testing.T) {
	rs := reactive.CreateReactiveSystem()
	s := reactive.Signal(rs, 1)
	runs := countRuns(t, rs, s)

	require.NoError(t, s.Update(func(oldValue int) int {
		return oldValue + 1
	}))
	assert.Equal(t, 2, s.Peek())
	assert.Equal(t, 2, *runs)

	err := s.Update(nil)
	assert.ErrorIs(t, err, reactive.ErrInvalidOperation)
	assert.Equal(t, 2, s.Peek())
}

func TestSignalSetAny(t *testing.T) {
	rs := reactive.CreateReactiveSystem()
	s := reactive.Signal(rs, 1, reactive.WithName("count"))

	var cell reactive.Cell = s
	require.NoError(t, cell.SetAny(3))
	assert.Equal(t, 3, s.Peek())

	err := cell.SetAny("three")
	require.ErrorIs(t, err, reactive.ErrInvalidOperation)
	assert.Contains(t, err.Error(), "count")
	assert.Equal(t, 3, s.Peek())
}

// should not subscribe when peeking
func TestSignalPeekDoesNotTrack(t *testing.T) {
	rs := reactive.CreateReactiveSystem()
	s := reactive.Signal(rs, 1)
	runs := 0
	_, err := reactive.Effect(rs, func() error {
		runs++
		s.Peek()
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, s.SetValue(2))
	assert.Equal(t, 1, runs)
	assert.Equal(t, 0, s.SubscriberCount())
}

// should re-run once per distinct change across unrelated signals
func TestSignalExactlyOncePerChange(t *testing.T) {
	rs := reactive.CreateReactiveSystem()
	a := reactive.Signal(rs, 0)
	b := reactive.Signal(rs, 0)

	var seen []int
	_, err := reactive.Effect(rs, func() error {
		seen = append(seen, a.Value()+b.Value())
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, a.SetValue(1))
	require.NoError(t, b.SetValue(10))
	require.NoError(t, a.SetValue(1))
	require.NoError(t, a.SetValue(2))
	assert.Equal(t, []int{0, 1, 11, 12}, seen)
}
