// Package retreat implements the Tactical Retreat Manager (spec.md §4.5): once a
// long-range attacker loses a duel, it enumerates the squares the attacker could fall
// back to along the attempted capture ray (and, for a queen, the remaining ray
// directions from its original square) and prices each by ray distance.
package retreat

import (
	"fmt"

	"github.com/gambitchess/gambit/pkg/board"
)

// ErrorKind enumerates the caller-visible retreat commit failures (spec.md §4.5, §7).
type ErrorKind int

const (
	BPCostMismatch ErrorKind = iota
	InvalidRetreatPosition
	InsufficientBP
)

func (k ErrorKind) String() string {
	switch k {
	case BPCostMismatch:
		return "BPCostMismatch"
	case InvalidRetreatPosition:
		return "InvalidRetreatPosition"
	case InsufficientBP:
		return "InsufficientBP"
	default:
		return "?"
	}
}

// Error is a caller-visible retreat validation error.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %v", e.Kind, e.Message)
}

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Option is one retreat destination and its BP cost.
type Option struct {
	Square board.Square
	Cost   int
}

// Pending is the retreat-option set for one failed long-range capture attempt. It exists
// only while the game's phase is TACTICAL_RETREAT (spec.md §3).
type Pending struct {
	Piece          *board.Piece
	OriginalSquare board.Square
	FailedTarget   board.Square
	Options        []Option
}

// queenExtraDirections returns the queen's ray lines other than the one containing dir
// (spec.md §4.5's "perpendicular diagonal/rank/file directions"), a fixed, deterministic
// table: the three remaining queen ray-lines, six directions in total.
func queenExtraDirections(dir board.Direction) []board.Direction {
	var extra []board.Direction
	for _, d := range board.AllDirections {
		if d == dir || d == opposite(dir) {
			continue
		}
		extra = append(extra, d)
	}
	return extra
}

func opposite(d board.Direction) board.Direction {
	return board.Direction{DX: -d.DX, DY: -d.DY}
}

// New enumerates the retreat options for attacker, which attempted (and failed) to
// capture on failedTarget from its originalSquare, on the given board.
func New(b *board.Board, attacker *board.Piece, originalSquare, failedTarget board.Square) *Pending {
	p := &Pending{Piece: attacker, OriginalSquare: originalSquare, FailedTarget: failedTarget}
	p.Options = append(p.Options, Option{Square: originalSquare, Cost: 0})

	dir, ok := board.RayDirection(originalSquare, failedTarget)
	if !ok {
		return p
	}

	p.Options = append(p.Options, rayOptions(b, originalSquare, dir)...)

	if attacker.Type == board.Queen {
		for _, extra := range queenExtraDirections(dir) {
			p.Options = append(p.Options, rayOptions(b, originalSquare, extra)...)
		}
	}
	return p
}

// rayOptions walks from s0 along dir, stopping at the board edge or the first occupied
// square (exclusive), pricing each empty square by its ray distance from s0.
func rayOptions(b *board.Board, s0 board.Square, dir board.Direction) []Option {
	var opts []Option
	for i, sq := range board.Walk(s0, dir) {
		if !b.IsEmpty(sq) {
			break
		}
		opts = append(opts, Option{Square: sq, Cost: i + 1})
	}
	return opts
}

// Find returns the option for the given square, if present in the option set.
func (p *Pending) Find(sq board.Square) (Option, bool) {
	for _, o := range p.Options {
		if o.Square == sq {
			return o, true
		}
	}
	return Option{}, false
}

// Commit validates (chosenSquare, declaredCost) against the option set and the mover's
// available BP, then relocates the attacker on b. On success it returns the BP cost to
// deduct; b has already advanced past the retreat half-move (RelocatePiece completes it:
// hasMoved is set, turn switches), matching spec.md §4.5's commit contract.
func (p *Pending) Commit(b *board.Board, chosenSquare board.Square, declaredCost, availableBP int) (cost int, err error) {
	opt, ok := p.Find(chosenSquare)
	if !ok {
		return 0, newError(InvalidRetreatPosition, "square %v is not a retreat option", chosenSquare)
	}
	if declaredCost != opt.Cost {
		return 0, newError(BPCostMismatch, "declared cost %v does not match computed cost %v", declaredCost, opt.Cost)
	}
	if opt.Cost > availableBP {
		return 0, newError(InsufficientBP, "retreat costs %v BP, only %v available", opt.Cost, availableBP)
	}

	if err := b.RelocatePiece(p.OriginalSquare, chosenSquare, true); err != nil {
		return 0, newError(InvalidRetreatPosition, "relocate failed: %v", err)
	}
	return opt.Cost, nil
}
