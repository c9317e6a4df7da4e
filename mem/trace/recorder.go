package trace

import (
	"github.com/sarchlab/cachesim/datarecording"
	"github.com/sarchlab/cachesim/mem/cache"
	"github.com/sarchlab/cachesim/sim/hooking"
	"github.com/sarchlab/cachesim/sim/id"
)

const (
	accessTable = "cache_accesses"
	runTable    = "cache_runs"
)

// accessEntry represents an access in the database
type accessEntry struct {
	ID         string
	RunID      string
	Seq        uint64
	Kind       string
	Address    uint64
	Bank       string
	Outcome    string
	Slot       int
	Tag        uint64
	EvictedTag uint64
}

// runEntry represents the summary of a run in the database
type runEntry struct {
	ID                string
	TotalByteSize     uint64
	Mapping           string
	Organization      string
	Accesses          uint64
	Hits              uint64
	ColdMisses        uint64
	ReplacementMisses uint64
	HitRate           float64
	HitRateDefined    bool
}

// A DBRecorder is a hook that records the accesses of a cache into a
// database using the data recorder.
type DBRecorder struct {
	dataRecorder datarecording.DataRecorder
	idGenerator  id.IDGenerator
	runID        string
}

// NewDBRecorder creates a DBRecorder and the tables it writes to. All the
// entries are tagged with runID.
func NewDBRecorder(
	dataRecorder datarecording.DataRecorder,
	idGenerator id.IDGenerator,
	runID string,
) *DBRecorder {
	r := &DBRecorder{
		dataRecorder: dataRecorder,
		idGenerator:  idGenerator,
		runID:        runID,
	}

	r.dataRecorder.CreateTable(accessTable, accessEntry{})
	r.dataRecorder.CreateTable(runTable, runEntry{})

	return r
}

// Func records an access.
func (r *DBRecorder) Func(ctx hooking.HookCtx) {
	if ctx.Pos != cache.HookPosAccess {
		return
	}

	result, ok := ctx.Detail.(cache.AccessResult)
	if !ok {
		return
	}

	entry := accessEntry{
		ID:         r.idGenerator.Generate(),
		RunID:      r.runID,
		Seq:        result.Seq,
		Kind:       result.Access.Kind.String(),
		Address:    uint64(result.Access.Address),
		Bank:       result.BankName,
		Outcome:    result.Outcome.String(),
		Slot:       result.SlotID,
		Tag:        result.Tag,
		EvictedTag: result.EvictedTag,
	}

	r.dataRecorder.InsertData(accessTable, entry)
}

// RecordRun records the configuration and final statistics of a cache.
func (r *DBRecorder) RecordRun(spec cache.Spec, stats cache.Statistics) {
	rate, err := stats.HitRate()
	if err != nil {
		rate = 0
	}

	r.dataRecorder.InsertData(runTable, runEntry{
		ID:                r.runID,
		TotalByteSize:     spec.TotalByteSize,
		Mapping:           spec.Mapping.String(),
		Organization:      spec.Organization.String(),
		Accesses:          stats.Accesses,
		Hits:              stats.Hits,
		ColdMisses:        stats.ColdMisses,
		ReplacementMisses: stats.ReplacementMisses,
		HitRate:           rate,
		HitRateDefined:    err == nil,
	})
}
