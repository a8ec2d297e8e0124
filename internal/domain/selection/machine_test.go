package selection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcos-nsantos/geocrop/internal/domain/selection"
	"github.com/marcos-nsantos/geocrop/internal/domain/valueobject"
)

type recorder struct {
	finalized []valueobject.ExtentBox
	discarded int
}

func (r *recorder) SelectionFinalized(box valueobject.ExtentBox) {
	r.finalized = append(r.finalized, box)
}

func (r *recorder) SelectionDiscarded() {
	r.discarded++
}

func pt(lat, lng float64) valueobject.GeoPoint {
	return valueobject.NewGeoPoint(lat, lng)
}

func TestMachine_Register(t *testing.T) {
	t.Run("one point waits for a second", func(t *testing.T) {
		rec := &recorder{}
		m := selection.NewMachine(rec)

		_, done := m.Register(pt(1, 1))

		assert.False(t, done)
		assert.Equal(t, selection.StateOnePoint, m.State())
		assert.Equal(t, []valueobject.GeoPoint{pt(1, 1)}, m.Buffer())
		_, ok := m.Box()
		assert.False(t, ok)
		assert.Empty(t, rec.finalized)
	})

	t.Run("two points finalize a normalized box", func(t *testing.T) {
		rec := &recorder{}
		m := selection.NewMachine(rec)

		m.Register(pt(5, 5))
		box, done := m.Register(pt(1, 1))

		require.True(t, done)
		assert.Equal(t, selection.StateFinalized, m.State())
		assert.Equal(t, pt(1, 1), box.Min)
		assert.Equal(t, pt(5, 5), box.Max)
		assert.Equal(t, []valueobject.GeoPoint{pt(5, 5), pt(1, 1)}, m.Buffer())
		require.Len(t, rec.finalized, 1)
		assert.Equal(t, box, rec.finalized[0])
	})

	t.Run("third point restarts from that point", func(t *testing.T) {
		rec := &recorder{}
		m := selection.NewMachine(rec)

		m.Register(pt(1, 1))
		m.Register(pt(2, 2))
		_, done := m.Register(pt(3, 3))

		assert.False(t, done)
		assert.Equal(t, selection.StateOnePoint, m.State())
		assert.Equal(t, []valueobject.GeoPoint{pt(3, 3)}, m.Buffer())
		_, ok := m.Box()
		assert.False(t, ok)
		assert.Equal(t, 1, rec.discarded)
	})

	t.Run("fourth point finalizes the new pair", func(t *testing.T) {
		m := selection.NewMachine()

		m.Register(pt(1, 1))
		m.Register(pt(2, 2))
		m.Register(pt(10, -10))
		box, done := m.Register(pt(-10, 10))

		require.True(t, done)
		assert.Equal(t, pt(-10, -10), box.Min)
		assert.Equal(t, pt(10, 10), box.Max)
	})
}

func TestMachine_Reset(t *testing.T) {
	seqs := map[string][]valueobject.GeoPoint{
		"from empty":     nil,
		"from one point": {pt(1, 1)},
		"from finalized": {pt(1, 1), pt(2, 2)},
		"after restart":  {pt(1, 1), pt(2, 2), pt(3, 3)},
	}
	for name, seq := range seqs {
		t.Run(name, func(t *testing.T) {
			m := selection.NewMachine()
			for _, p := range seq {
				m.Register(p)
			}

			m.Reset()

			assert.Equal(t, selection.StateEmpty, m.State())
			assert.Empty(t, m.Buffer())
			_, ok := m.Box()
			assert.False(t, ok)
		})
	}

	t.Run("notifies only when a box is discarded", func(t *testing.T) {
		rec := &recorder{}
		m := selection.NewMachine(rec)

		m.Register(pt(1, 1))
		m.Reset()
		assert.Equal(t, 0, rec.discarded)

		m.Register(pt(1, 1))
		m.Register(pt(2, 2))
		m.Reset()
		assert.Equal(t, 1, rec.discarded)
	})
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "empty", selection.StateEmpty.String())
	assert.Equal(t, "one_point", selection.StateOnePoint.String())
	assert.Equal(t, "finalized", selection.StateFinalized.String())
}
