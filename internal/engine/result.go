package engine

import (
	"errors"
	"time"

	"github.com/vk/reactsynth/internal/mealy"
	"github.com/vk/reactsynth/internal/session"
)

// Mode selects what a run tries to prove.
type Mode string

const (
	Existence    Mode = "existence"
	NonExistence Mode = "non-existence"
)

// Verdict summarises a Result.
type Verdict string

const (
	VerdictRealizable   Verdict = "realizable"
	VerdictUnrealizable Verdict = "unrealizable"
	// VerdictUnknown is reported when a non-existence run finds no witness.
	VerdictUnknown Verdict = "unknown"
	VerdictError   Verdict = "error"
)

// Result is the outcome of one synthesis run.
type Result struct {
	Problem string
	Engine  string
	Mode    Mode

	// StrategyFound reports that the run found what it was looking for:
	// a controller in Existence mode, a witness in NonExistence mode.
	StrategyFound bool
	Message       string

	Machine *mealy.Machine
	// Witness lists input valuations that defeat every controller.
	Witness []string

	Diagnostics     []string
	SkippedIDs      int
	UnknownLiterals []string
	Timers          []string
	Elapsed         time.Duration

	Err error
}

// Verdict classifies the result.
func (r *Result) Verdict() Verdict {
	switch {
	case r.Err != nil:
		return VerdictError
	case r.Mode == NonExistence && r.StrategyFound:
		return VerdictUnrealizable
	case r.Mode == NonExistence:
		return VerdictUnknown
	case r.StrategyFound:
		return VerdictRealizable
	default:
		return VerdictUnrealizable
	}
}

// CapacityExhausted reports whether the run ran out of relation engine
// capacity.
func (r *Result) CapacityExhausted() bool {
	return errors.Is(r.Err, session.ErrCapacityExhausted)
}

// fail records err on r and returns it.
func (r *Result) fail(stage string, err error) *Result {
	r.StrategyFound = false
	r.Machine = nil
	r.Err = err
	if errors.Is(err, session.ErrCapacityExhausted) {
		r.Message = "relation engine capacity exhausted during " + stage
	} else {
		r.Message = stage + " failed: " + err.Error()
	}
	r.Diagnostics = append(r.Diagnostics, err.Error())
	return r
}
