// Package settle implements the arena matchmaking settlement pipeline: one
// request in, one random draw, one byte-exact instruction list out.
package settle

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/starforge-games/arena-settle/entropy"
	"github.com/starforge-games/arena-settle/fnrunner"
	"github.com/starforge-games/arena-settle/params"
)

// State is the orchestrator position in the single-run pipeline. There is no
// transition back to StateValidating; the machine runs exactly once per
// process lifetime.
type State uint8

const (
	StateValidating State = iota
	StateDrawing
	StateBuilding
	StateEmitting
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateValidating:
		return "validating"
	case StateDrawing:
		return "drawing"
	case StateBuilding:
		return "building"
	case StateEmitting:
		return "emitting"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state %d", uint8(s))
	}
}

// Settler drives one settlement invocation. All collaborators are bound at
// construction and passed by reference; there is no package-level state.
type Settler struct {
	runner  *fnrunner.Runner
	source  entropy.Source
	emitter fnrunner.Emitter
	log     *zap.Logger

	state State
}

func New(runner *fnrunner.Runner, source entropy.Source, emitter fnrunner.Emitter, log *zap.Logger) *Settler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Settler{
		runner:  runner,
		source:  source,
		emitter: emitter,
		log:     log,
	}
}

// State reports the current pipeline position.
func (s *Settler) State() State {
	return s.state
}

// Run executes the pipeline once: decode params, draw, build, emit. Failure
// exits signal their error code to the emission channel exactly once, best
// effort, and leave the machine in StateFailed. No step is retried; re-runs
// belong to whoever launches a fresh process.
func (s *Settler) Run(ctx context.Context, raw []byte) error {
	s.state = StateValidating
	p, err := DecodeContainerParams(raw)
	if err != nil {
		return s.fail(ctx, fnrunner.CodeInvalidParams, err)
	}

	s.state = StateDrawing
	value := entropy.Draw(s.source, params.SettleRandomMin, params.SettleRandomMax)
	s.log.Info("settlement draw complete",
		zap.Uint32("value", value),
		zap.Uint32("min", params.SettleRandomMin),
		zap.Uint32("max", params.SettleRandomMax),
	)

	s.state = StateBuilding
	computeBudget, err := BuildComputeBudget()
	if err != nil {
		// The compute budget instruction is constant; failing to build it is
		// not an input or emission error.
		panic(fmt.Sprintf("settle: compute budget instruction: %v", err))
	}
	ixns := []solana.Instruction{computeBudget, BuildSettle(s.runner, p, value)}

	s.state = StateEmitting
	if err := s.emitter.Emit(ctx, ixns); err != nil {
		return s.fail(ctx, fnrunner.CodeEmitFailed, err)
	}

	s.state = StateDone
	s.log.Info("settlement emitted",
		zap.Stringer("program", p.ProgramID),
		zap.Stringer("spaceship", p.SpaceshipPDA),
		zap.Uint8("faction", p.Faction),
	)
	return nil
}

func (s *Settler) fail(ctx context.Context, code fnrunner.ErrorCode, cause error) error {
	from := s.state
	s.state = StateFailed
	s.log.Error("settlement failed",
		zap.Stringer("state", from),
		zap.Uint32("code", uint32(code)),
		zap.Error(cause),
	)
	if err := s.emitter.EmitError(ctx, code); err != nil {
		// Best effort: the oracle treats a missing result as failure anyway.
		s.log.Warn("error signal not delivered", zap.Error(err))
	}
	return fmt.Errorf("settle: %s: %w", code, cause)
}
