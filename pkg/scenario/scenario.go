// Package scenario provides deterministic builders for the named test positions
// spec.md §8 walks through (S1-S5; there is no builder for S6), plus a small replay
// helper so a scenario can be
// driven straight through an *engine.Engine the way a host or a table test would
// (spec.md §4.7). Each builder returns an already-initialized engine; callers drive it
// further with the public pkg/engine API using WhiteSession/BlackSession.
package scenario

import (
	"context"
	"fmt"

	"github.com/gambitchess/gambit/pkg/board"
	"github.com/gambitchess/gambit/pkg/engine"
)

// WhiteSession and BlackSession are the fixed session IDs every builder uses.
const (
	WhiteSession = "white-session"
	BlackSession = "black-session"
)

// Step is one scripted half-move, applied by Play. Exactly one of Move, Allocate or
// Retreat is set.
type Step struct {
	Session string

	Move *MoveStep

	Allocate *int

	Retreat *RetreatStep
}

// MoveStep names a ProcessMove call.
type MoveStep struct {
	From, To  string
	Promotion board.PieceType
}

// RetreatStep names a ProcessTacticalRetreat call.
type RetreatStep struct {
	Square string
	Cost   int
}

func move(session, from, to string) Step {
	return Step{Session: session, Move: &MoveStep{From: from, To: to}}
}

func alloc(session string, amount int) Step {
	a := amount
	return Step{Session: session, Allocate: &a}
}

func doRetreat(session, square string, cost int) Step {
	return Step{Session: session, Retreat: &RetreatStep{Square: square, Cost: cost}}
}

func squareOf(s string) (board.Square, error) {
	sq, err := board.ParseSquareStr(s)
	if err != nil {
		return board.NoSquare, fmt.Errorf("invalid square %q: %w", s, err)
	}
	return sq, nil
}

// Play applies a scripted sequence of half-moves/allocations/retreats to e, stopping at
// the first error. It does not inspect e's state to decide who moves next -- the script
// carries that information, the way a recorded game transcript would.
func Play(ctx context.Context, e *engine.Engine, steps []Step) error {
	for i, s := range steps {
		var err error
		switch {
		case s.Move != nil:
			var from, to board.Square
			if from, err = squareOf(s.Move.From); err == nil {
				if to, err = squareOf(s.Move.To); err == nil {
					_, err = e.ProcessMove(ctx, s.Session, from, to, s.Move.Promotion)
				}
			}
		case s.Allocate != nil:
			_, err = e.ProcessBPAllocation(ctx, s.Session, *s.Allocate)
		case s.Retreat != nil:
			var sq board.Square
			if sq, err = squareOf(s.Retreat.Square); err == nil {
				_, err = e.ProcessTacticalRetreat(ctx, s.Session, sq, s.Retreat.Cost)
			}
		default:
			err = fmt.Errorf("step %d: empty step", i)
		}
		if err != nil {
			return fmt.Errorf("scenario step %d: %w", i, err)
		}
	}
	return nil
}

// Clone returns an independent copy of e's entire state, round-tripped through
// SaveState/LoadState -- mutating the clone never affects e (spec.md §4.7's "clone" duty
// of the Scenario/Snapshot component).
func Clone(e *engine.Engine) (*engine.Engine, error) {
	data, err := e.SaveState()
	if err != nil {
		return nil, fmt.Errorf("clone: %w", err)
	}
	clone := engine.New()
	if err := clone.LoadState(data); err != nil {
		return nil, fmt.Errorf("clone: %w", err)
	}
	return clone, nil
}

// Serialize and Deserialize expose the scenario component's "serialize for tests and
// persistence" duty; they're thin named wrappers over pkg/engine's own save/load so a
// caller working at the scenario level never has to reach into pkg/engine directly.
func Serialize(e *engine.Engine) ([]byte, error) { return e.SaveState() }

func Deserialize(data []byte) (*engine.Engine, error) {
	e := engine.New()
	if err := e.LoadState(data); err != nil {
		return nil, err
	}
	return e, nil
}

// newEngine builds a fresh engine from the standard starting position.
func newEngine(ctx context.Context, opts ...engine.Option) (*engine.Engine, error) {
	e := engine.New(opts...)
	if err := e.Initialize(ctx, WhiteSession, BlackSession); err != nil {
		return nil, err
	}
	return e, nil
}

// newEngineFromFEN builds a fresh engine from a custom starting position.
func newEngineFromFEN(ctx context.Context, position string, opts ...engine.Option) (*engine.Engine, error) {
	e := engine.New(opts...)
	if err := e.InitializeFromFEN(ctx, WhiteSession, BlackSession, position); err != nil {
		return nil, err
	}
	return e, nil
}

// FoolsMate builds spec.md §8 S4: f2-f3, e7-e5, g2-g4, d8-h4, CHECKMATE (Black wins).
func FoolsMate(ctx context.Context) (*engine.Engine, error) {
	e, err := newEngine(ctx)
	if err != nil {
		return nil, err
	}
	script := []Step{
		move(WhiteSession, "f2", "f3"), move(BlackSession, "e7", "e5"),
		move(WhiteSession, "g2", "g4"), move(BlackSession, "d8", "h4"),
	}
	if err := Play(ctx, e, script); err != nil {
		return nil, err
	}
	return e, nil
}

// Stalemate builds spec.md §8 S5: black king a8, white king c6, white queen c7, white to
// move, then plays c6-b6, yielding STALEMATE.
func Stalemate(ctx context.Context) (*engine.Engine, error) {
	const position = "k7/2Q5/2K5/8/8/8/8/8 w - - 0 1"
	e, err := newEngineFromFEN(ctx, position)
	if err != nil {
		return nil, err
	}
	if err := Play(ctx, e, []Step{move(WhiteSession, "c6", "b6")}); err != nil {
		return nil, err
	}
	return e, nil
}

// CaptureDuelAttackerWins builds spec.md §8 S1: e2-e4, d7-d5, e4xd5 (duel), white
// allocates 6, black 4. Leaves the engine in NORMAL_MOVE, turn BLACK.
func CaptureDuelAttackerWins(ctx context.Context) (*engine.Engine, error) {
	e, err := newEngine(ctx)
	if err != nil {
		return nil, err
	}
	script := []Step{
		move(WhiteSession, "e2", "e4"), move(BlackSession, "d7", "d5"),
		move(WhiteSession, "e4", "d5"),
		alloc(WhiteSession, 6), alloc(BlackSession, 4),
	}
	if err := Play(ctx, e, script); err != nil {
		return nil, err
	}
	return e, nil
}

// CaptureDuelDefenderWinsNonLongRange builds spec.md §8 S2's knight half: Nb1-c3,
// d7-d5, Nc3xd5 (duel), attacker allocates 2, defender 3. Not long-range, so no retreat
// phase; the knight stays at c3.
func CaptureDuelDefenderWinsNonLongRange(ctx context.Context) (*engine.Engine, error) {
	e, err := newEngine(ctx)
	if err != nil {
		return nil, err
	}
	script := []Step{
		move(WhiteSession, "b1", "c3"), move(BlackSession, "d7", "d5"),
		move(WhiteSession, "c3", "d5"),
		alloc(WhiteSession, 2), alloc(BlackSession, 3),
	}
	if err := Play(ctx, e, script); err != nil {
		return nil, err
	}
	return e, nil
}

// CaptureDuelDefenderWinsLongRange builds spec.md §8 S2's bishop contrast: a long-range
// attacker loses a duel and the engine enters TACTICAL_RETREAT, with both a cost-0 and a
// cost>0 option available (the diagonal has two empty squares before the target).
func CaptureDuelDefenderWinsLongRange(ctx context.Context) (*engine.Engine, error) {
	e, err := newEngine(ctx)
	if err != nil {
		return nil, err
	}
	script := []Step{
		move(WhiteSession, "e2", "e4"), move(BlackSession, "h7", "h6"),
		move(WhiteSession, "f1", "c4"), move(BlackSession, "h6", "h5"),
		move(WhiteSession, "c4", "f7"),
		alloc(WhiteSession, 1), alloc(BlackSession, 5),
	}
	if err := Play(ctx, e, script); err != nil {
		return nil, err
	}
	return e, nil
}

// RetreatCostMismatch builds spec.md §8 S3 on top of CaptureDuelDefenderWinsLongRange: a
// TACTICAL_RETREAT with a non-zero-cost option available, ready for a caller to submit a
// deliberately wrong declared cost and observe BPCostMismatch.
func RetreatCostMismatch(ctx context.Context) (*engine.Engine, error) {
	return CaptureDuelDefenderWinsLongRange(ctx)
}
