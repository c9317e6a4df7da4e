// Package simulation keeps track of the components of one run.
package simulation

import (
	"fmt"
	"os"
	"sort"

	"github.com/sarchlab/cachesim/sim/id"
	"github.com/sarchlab/cachesim/sim/naming"
	"github.com/sarchlab/cachesim/sim/stateful"
)

// A Simulation provides the services required to define a run.
type Simulation struct {
	id          string
	idGenerator id.IDGenerator
	components  map[string]naming.Named
}

// NewSimulation creates a new simulation. The ID of the simulation is taken
// from the generator.
func NewSimulation(idGenerator id.IDGenerator) *Simulation {
	return &Simulation{
		id:          idGenerator.Generate(),
		idGenerator: idGenerator,
		components:  make(map[string]naming.Named),
	}
}

// ID returns the ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// IDGenerator returns the generator that the components of the simulation
// share.
func (s *Simulation) IDGenerator() id.IDGenerator {
	return s.idGenerator
}

// RegisterComponent registers a component with the simulation.
func (s *Simulation) RegisterComponent(c naming.Named) {
	name := c.Name()

	if _, ok := s.components[name]; ok {
		panic("component " + name + " already registered")
	}

	s.components[name] = c
}

// GetComponentByName returns the component with the given name.
func (s *Simulation) GetComponentByName(name string) naming.Named {
	return s.components[name]
}

// Components returns all the registered components, sorted by name.
func (s *Simulation) Components() []naming.Named {
	names := make([]string, 0, len(s.components))
	for name := range s.components {
		names = append(names, name)
	}

	sort.Strings(names)

	comps := make([]naming.Named, 0, len(names))
	for _, name := range names {
		comps = append(comps, s.components[name])
	}

	return comps
}

// Save writes the current state of every state holder to a file.
func (s *Simulation) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	data := map[string]any{"simulation": s.id}
	for name, c := range s.components {
		holder, ok := c.(stateful.StateHolder)
		if !ok {
			continue
		}

		state, err := holder.State().Serialize()
		if err != nil {
			return fmt.Errorf("serializing %s: %w", name, err)
		}

		data[name] = state
	}

	codec := stateful.JSONCodec{}

	return codec.Encode(file, data)
}
