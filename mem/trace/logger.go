package trace

import (
	"log"

	"github.com/sarchlab/cachesim/mem/cache"
	"github.com/sarchlab/cachesim/sim/hooking"
)

// An AccessLogger is a hook that prints every access a cache handles.
type AccessLogger struct {
	logger *log.Logger
}

// NewAccessLogger creates an AccessLogger that writes to logger.
func NewAccessLogger(logger *log.Logger) *AccessLogger {
	return &AccessLogger{logger: logger}
}

// Func prints one line per access.
func (l *AccessLogger) Func(ctx hooking.HookCtx) {
	if ctx.Pos != cache.HookPosAccess {
		return
	}

	r, ok := ctx.Detail.(cache.AccessResult)
	if !ok {
		return
	}

	l.logger.Printf("%d %s 0x%x -> %s, %s slot %d\n",
		r.Seq,
		r.Access.Kind,
		r.Access.Address,
		r.Outcome,
		r.BankName,
		r.SlotID,
	)
}
