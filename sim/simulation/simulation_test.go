package simulation

import (
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cachesim/sim/id"
	"github.com/sarchlab/cachesim/sim/naming"
	"github.com/sarchlab/cachesim/sim/stateful"
)

type fakeState struct {
	name string
	data map[string]any
	err  error
}

func (s fakeState) Name() string {
	return s.name
}

func (s fakeState) Serialize() (map[string]any, error) {
	return s.data, s.err
}

type fakeHolder struct {
	naming.NamedBase
	state fakeState
}

func (h *fakeHolder) State() stateful.State {
	return h.state
}

var _ = Describe("Simulation", func() {
	var s *Simulation

	BeforeEach(func() {
		s = NewSimulation(id.NewIDGenerator())
	})

	It("should take its ID from the generator", func() {
		Expect(s.ID()).To(Equal("1"))
		Expect(s.IDGenerator().Generate()).To(Equal("2"))
	})

	It("should register components", func() {
		b := &fakeHolder{NamedBase: naming.MakeNamedBase("B")}
		a := &fakeHolder{NamedBase: naming.MakeNamedBase("A")}

		s.RegisterComponent(b)
		s.RegisterComponent(a)

		Expect(s.GetComponentByName("A")).To(BeIdenticalTo(a))
		Expect(s.GetComponentByName("C")).To(BeNil())
		Expect(s.Components()).To(Equal([]naming.Named{a, b}))
	})

	It("should panic on duplicated names", func() {
		s.RegisterComponent(&fakeHolder{NamedBase: naming.MakeNamedBase("A")})

		Expect(func() {
			s.RegisterComponent(
				&fakeHolder{NamedBase: naming.MakeNamedBase("A")})
		}).To(Panic())
	})

	It("should save the states", func() {
		s.RegisterComponent(&fakeHolder{
			NamedBase: naming.MakeNamedBase("Cache"),
			state: fakeState{
				name: "Cache",
				data: map[string]any{"accesses": 3},
			},
		})
		path := filepath.Join(GinkgoT().TempDir(), "state.json")

		Expect(s.Save(path)).To(Succeed())

		file, err := os.Open(path)
		Expect(err).ToNot(HaveOccurred())
		defer file.Close()

		data, err := stateful.JSONCodec{}.Decode(file)
		Expect(err).ToNot(HaveOccurred())
		Expect(data).To(HaveKeyWithValue("simulation", "1"))
		Expect(data).To(HaveKeyWithValue("Cache",
			map[string]any{"accesses": float64(3)}))
	})

	It("should report serialization failures", func() {
		s.RegisterComponent(&fakeHolder{
			NamedBase: naming.MakeNamedBase("Cache"),
			state:     fakeState{name: "Cache", err: errors.New("boom")},
		})

		err := s.Save(filepath.Join(GinkgoT().TempDir(), "state.json"))

		Expect(err).To(MatchError(ContainSubstring("boom")))
	})
})
