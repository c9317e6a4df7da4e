package hooking

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type countingHook struct {
	positions []string
}

func (h *countingHook) Func(ctx HookCtx) {
	h.positions = append(h.positions, ctx.Pos.Name)
}

var _ = Describe("HookableBase", func() {
	var (
		base *HookableBase
		pos  *HookPos
	)

	BeforeEach(func() {
		base = NewHookableBase()
		pos = &HookPos{Name: "Test"}
	})

	It("should start with no hooks", func() {
		Expect(base.NumHooks()).To(Equal(0))
		Expect(base.Hooks()).To(BeEmpty())
	})

	It("should invoke hooks in registration order", func() {
		order := []int{}
		first := HookFunc(func(HookCtx) { order = append(order, 1) })
		second := HookFunc(func(HookCtx) { order = append(order, 2) })

		base.AcceptHook(&first)
		base.AcceptHook(&second)
		base.InvokeHook(HookCtx{Domain: base, Pos: pos})

		Expect(order).To(Equal([]int{1, 2}))
	})

	It("should pass the context through", func() {
		h := &countingHook{}
		base.AcceptHook(h)

		base.InvokeHook(HookCtx{Domain: base, Pos: pos, Item: 1})
		base.InvokeHook(HookCtx{Domain: base, Pos: pos, Item: 2})

		Expect(h.positions).To(Equal([]string{"Test", "Test"}))
	})

	It("should refuse the same hook twice", func() {
		h := &countingHook{}
		base.AcceptHook(h)

		Expect(func() { base.AcceptHook(h) }).To(Panic())
	})
})
