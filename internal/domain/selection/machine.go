// Package selection turns discrete map clicks into a crop rectangle: two
// points finalize an ExtentBox, a third starts a new selection.
package selection

import "github.com/marcos-nsantos/geocrop/internal/domain/valueobject"

type State int

const (
	StateEmpty State = iota
	StateOnePoint
	StateFinalized
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateOnePoint:
		return "one_point"
	case StateFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}

// Observer is notified synchronously on the goroutine driving the machine.
type Observer interface {
	// SelectionFinalized fires when a second point completes a box.
	SelectionFinalized(box valueobject.ExtentBox)
	// SelectionDiscarded fires when a finalized box is thrown away, either
	// by a restarting third point or by Reset.
	SelectionDiscarded()
}

// Machine is not safe for concurrent use.
type Machine struct {
	buffer    []valueobject.GeoPoint
	box       *valueobject.ExtentBox
	observers []Observer
}

func NewMachine(observers ...Observer) *Machine {
	return &Machine{
		buffer:    make([]valueobject.GeoPoint, 0, 2),
		observers: observers,
	}
}

func (m *Machine) Subscribe(o Observer) {
	m.observers = append(m.observers, o)
}

func (m *Machine) State() State {
	switch {
	case m.box != nil:
		return StateFinalized
	case len(m.buffer) == 1:
		return StateOnePoint
	default:
		return StateEmpty
	}
}

// Register feeds one point into the machine. It returns the finalized box
// and true when this point completed a selection.
func (m *Machine) Register(p valueobject.GeoPoint) (valueobject.ExtentBox, bool) {
	switch m.State() {
	case StateEmpty:
		m.buffer = append(m.buffer[:0], p)
		return valueobject.ExtentBox{}, false

	case StateOnePoint:
		m.buffer = append(m.buffer, p)
		box := valueobject.FromCorners(m.buffer[0], p)
		m.box = &box
		for _, o := range m.observers {
			o.SelectionFinalized(box)
		}
		return box, true

	default:
		m.discard()
		m.buffer = append(m.buffer[:0], p)
		return valueobject.ExtentBox{}, false
	}
}

// Reset is accepted from any state and always lands in StateEmpty.
func (m *Machine) Reset() {
	m.discard()
}

func (m *Machine) discard() {
	hadBox := m.box != nil
	m.buffer = m.buffer[:0]
	m.box = nil
	if hadBox {
		for _, o := range m.observers {
			o.SelectionDiscarded()
		}
	}
}

// Box returns the finalized box, if any.
func (m *Machine) Box() (valueobject.ExtentBox, bool) {
	if m.box == nil {
		return valueobject.ExtentBox{}, false
	}
	return *m.box, true
}

// Buffer returns a copy of the raw click buffer.
func (m *Machine) Buffer() []valueobject.GeoPoint {
	out := make([]valueobject.GeoPoint, len(m.buffer))
	copy(out, m.buffer)
	return out
}
