package trace

import (
	"errors"
	"fmt"
	"io"

	"github.com/sarchlab/cachesim/mem/cache"
)

// A Handler performs accesses. *cache.Comp is a Handler.
type Handler interface {
	Handle(access cache.Access) cache.AccessResult
}

// State is the state of a replay.
type State int

const (
	// Running means more accesses may follow.
	Running State = iota

	// Exhausted means the source has no more accesses.
	Exhausted

	// Aborted means the source returned an error.
	Aborted
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Exhausted:
		return "exhausted"
	case Aborted:
		return "aborted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// A Replayer feeds the accesses of a source to a handler, one at a time and
// in order.
type Replayer struct {
	source   Source
	handler  Handler
	state    State
	consumed uint64
	err      error
}

// NewReplayer creates a replayer.
func NewReplayer(source Source, handler Handler) *Replayer {
	return &Replayer{
		source:  source,
		handler: handler,
	}
}

// State returns the current state.
func (r *Replayer) State() State {
	return r.state
}

// Consumed returns the number of accesses handed to the handler.
func (r *Replayer) Consumed() uint64 {
	return r.consumed
}

// Step replays one access. It returns false once the replay has stopped,
// together with the error that stopped it, if any.
func (r *Replayer) Step() (bool, error) {
	if r.state != Running {
		return false, r.err
	}

	access, err := r.source.Next()
	if errors.Is(err, io.EOF) {
		r.state = Exhausted
		return false, nil
	}

	if err != nil {
		r.state = Aborted
		r.err = err

		return false, err
	}

	r.handler.Handle(access)
	r.consumed++

	return true, nil
}

// Run replays until the source is exhausted or fails.
func (r *Replayer) Run() error {
	for {
		more, err := r.Step()
		if err != nil {
			return err
		}

		if !more {
			return nil
		}
	}
}
