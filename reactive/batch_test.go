package reactive_test

import (
	"errors"
	"testing"

	"github.com/delaneyj/reactor/reactive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// should run effects once with only the final value
func TestBatchCoalescesWrites(t *testing.T) {
	rs := reactive.CreateReactiveSystem()
	a := reactive.Signal(rs, 0)
	var seen []int
	_, err := reactive.Effect1(rs, a, func(v int) error {
		seen = append(seen, v)
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, rs.Batch(func() error {
		if err := a.SetValue(1); err != nil {
			return err
		}
		assert.Equal(t, []int{0}, seen)
		return a.SetValue(2)
	}))
	assert.Equal(t, []int{0, 2}, seen)
}

// should coalesce writes to several signals behind a computed
func TestBatchMultipleSignals(t *testing.T) {
	rs := reactive.CreateReactiveSystem()
	first := reactive.Signal(rs, "John")
	last := reactive.Signal(rs, "Doe")
	full := reactive.Computed2(rs, first, last, func(f, l string) string {
		return f + " " + l
	})

	var seen []string
	_, err := reactive.Effect1(rs, full, func(v string) error {
		seen = append(seen, v)
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, rs.Batch(func() error {
		if err := first.SetValue("Jane"); err != nil {
			return err
		}
		// reads inside the batch see the new value straight away
		v, err := full.Value()
		if err != nil {
			return err
		}
		assert.Equal(t, "Jane Doe", v)
		return last.SetValue("Roe")
	}))
	assert.Equal(t, []string{"John Doe", "Jane Roe"}, seen)
}

// should only flush when the outermost batch closes
func TestBatchNested(t *testing.T) {
	rs := reactive.CreateReactiveSystem()
	a := reactive.Signal(rs, 0)
	runs := 0
	_, err := reactive.Effect1(rs, a, func(int) error {
		runs++
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, rs.Batch(func() error {
		assert.Equal(t, 1, rs.BatchDepth())
		err := rs.Batch(func() error {
			assert.Equal(t, 2, rs.BatchDepth())
			return a.SetValue(1)
		})
		assert.Equal(t, 1, runs)
		if err != nil {
			return err
		}
		return a.SetValue(2)
	}))
	assert.Equal(t, 2, runs)
	assert.Equal(t, 0, rs.BatchDepth())
}

func TestBatchValue(t *testing.T) {
	rs := reactive.CreateReactiveSystem()
	a := reactive.Signal(rs, 1)
	b := reactive.Signal(rs, 2)
	sum := reactive.Computed2(rs, a, b, func(a, b int) int {
		return a + b
	})

	runs := 0
	_, err := reactive.Effect1(rs, sum, func(int) error {
		runs++
		return nil
	})
	require.NoError(t, err)

	v, err := reactive.BatchValue(rs, func() (int, error) {
		if err := a.SetValue(10); err != nil {
			return 0, err
		}
		if err := b.SetValue(20); err != nil {
			return 0, err
		}
		return sum.Value()
	})
	require.NoError(t, err)
	assert.Equal(t, 30, v)
	assert.Equal(t, 2, runs)
}

// should close the batch and still flush when the callback fails
func TestBatchErrorStillFlushes(t *testing.T) {
	rs := reactive.CreateReactiveSystem()
	a := reactive.Signal(rs, 0)
	errEffect := errors.New("effect")
	errBatch := errors.New("batch")
	_, err := reactive.Effect1(rs, a, func(v int) error {
		if v > 0 {
			return errEffect
		}
		return nil
	})
	require.NoError(t, err)

	err = rs.Batch(func() error {
		if err := a.SetValue(1); err != nil {
			return err
		}
		return errBatch
	})
	assert.ErrorIs(t, err, errBatch)
	assert.ErrorIs(t, err, errEffect)
	assert.Equal(t, 0, rs.BatchDepth())
}

// should close the batch when the callback panics
func TestBatchPanic(t *testing.T) {
	rs := reactive.CreateReactiveSystem()
	assert.Panics(t, func() {
		rs.Batch(func() error {
			panic("fail")
		})
	})
	assert.Equal(t, 0, rs.BatchDepth())
}

func TestBatchExplicitScope(t *testing.T) {
	rs := reactive.CreateReactiveSystem()
	a := reactive.Signal(rs, 0)
	runs := 0
	_, err := reactive.Effect1(rs, a, func(int) error {
		runs++
		return nil
	})
	require.NoError(t, err)

	rs.StartBatch()
	require.NoError(t, a.SetValue(1))
	require.NoError(t, a.SetValue(2))
	assert.Equal(t, 1, runs)
	require.NoError(t, rs.EndBatch())
	assert.Equal(t, 2, runs)

	assert.ErrorIs(t, rs.EndBatch(), reactive.ErrInvalidOperation)
}

func TestBatchNilCallback(t *testing.T) {
	rs := reactive.CreateReactiveSystem()
	assert.ErrorIs(t, rs.Batch(nil), reactive.ErrInvalidOperation)
	_, err := reactive.BatchValue[int](rs, nil)
	assert.ErrorIs(t, err, reactive.ErrInvalidOperation)
	assert.Equal(t, 0, rs.BatchDepth())
}
