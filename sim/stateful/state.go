// Package stateful lets components expose their state so that it can be
// saved at the end of a run.
package stateful

import (
	"github.com/sarchlab/cachesim/sim/naming"
)

// A State is a collection of data that can be serialized.
type State interface {
	naming.Named

	Serialize() (map[string]any, error)
}

// A StateHolder is a component that has a state.
type StateHolder interface {
	naming.Named

	State() State
}
