// Package duel implements the hidden-allocation auction that resolves every capture
// attempt (spec.md §4.4). A Pending duel is created the instant a syntactically legal
// move attempts a capture; it holds each side's allocation privately until both are
// present, at which point Resolve determines the winner.
package duel

import (
	"fmt"

	"github.com/gambitchess/gambit/pkg/board"
	"github.com/seekerror/stdlib/pkg/lang"
)

// ErrorKind enumerates the caller-visible duel validation failures (spec.md §4.4, §7).
type ErrorKind int

const (
	NotInDuelPhase ErrorKind = iota
	NotAParticipant
	InvalidBPAllocation
	AlreadyAllocated
)

func (k ErrorKind) String() string {
	switch k {
	case NotInDuelPhase:
		return "NotInDuelPhase"
	case NotAParticipant:
		return "NotAParticipant"
	case InvalidBPAllocation:
		return "InvalidBPAllocation"
	case AlreadyAllocated:
		return "AlreadyAllocated"
	default:
		return "?"
	}
}

// Error is a caller-visible duel validation error; never mutates state.
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

// Outcome is the result of resolving a duel.
type Outcome uint8

const (
	AttackerWins Outcome = iota
	DefenderWinsOrTie
)

func (o Outcome) String() string {
	if o == AttackerWins {
		return "ATTACKER_WINS"
	}
	return "DEFENDER_WINS_OR_TIE"
}

// Pending is the hidden-allocation auction state for one capture attempt. It exists only
// while the game's phase is DUEL_ALLOCATION (spec.md §3).
type Pending struct {
	AttackerColor board.Color
	Attacker      *board.Piece
	Defender      *board.Piece
	From, To      board.Square
	// Promotion carries the mover's declared promotion choice, if any, so the engine can
	// apply it if the attacker wins the duel.
	Promotion board.PieceType

	AttackerAllocation lang.Optional[int]
	DefenderAllocation lang.Optional[int]
}

// New starts a pending duel for a capture attempt from `from` to `to`.
func New(attackerColor board.Color, attacker, defender *board.Piece, from, to board.Square) *Pending {
	return &Pending{AttackerColor: attackerColor, Attacker: attacker, Defender: defender, From: from, To: to}
}

// DefenderColor returns the opponent of the attacker.
func (p *Pending) DefenderColor() board.Color {
	return p.AttackerColor.Opponent()
}

// Cost returns the BP cost of allocating `amount` for a piece with the given capacity
// (its classical value): costs 1:1 up to capacity, then double per unit above it
// (spec.md §4.4, §6 DUEL_CAPACITY).
func Cost(capacity, amount int) int {
	if amount <= capacity {
		return amount
	}
	return capacity + 2*(amount-capacity)
}

// Allocate records c's allocation, after validating it against maxAllocation (the hard
// per-duel cap) and availableBP (the color's current BP balance). Returns the BP cost to
// be deducted by the caller on success.
func (p *Pending) Allocate(c board.Color, amount, maxAllocation, availableBP int) (cost int, err error) {
	var piece *board.Piece
	switch c {
	case p.AttackerColor:
		piece = p.Attacker
		if _, ok := p.AttackerAllocation.V(); ok {
			return 0, newError(AlreadyAllocated, "attacker already allocated for this duel")
		}
	case p.DefenderColor():
		piece = p.Defender
		if _, ok := p.DefenderAllocation.V(); ok {
			return 0, newError(AlreadyAllocated, "defender already allocated for this duel")
		}
	default:
		return 0, newError(NotAParticipant, "color %v is not a participant in this duel", c)
	}

	if amount < 0 || amount > maxAllocation {
		return 0, newError(InvalidBPAllocation, "allocation %v exceeds max %v", amount, maxAllocation)
	}
	cost = Cost(piece.Type.ClassicalValue(), amount)
	if cost > availableBP {
		return 0, newError(InvalidBPAllocation, "allocation %v costs %v BP, only %v available", amount, cost, availableBP)
	}

	if c == p.AttackerColor {
		p.AttackerAllocation = lang.Some(amount)
	} else {
		p.DefenderAllocation = lang.Some(amount)
	}
	return cost, nil
}

// Ready returns true iff both sides have allocated.
func (p *Pending) Ready() bool {
	_, a := p.AttackerAllocation.V()
	_, d := p.DefenderAllocation.V()
	return a && d
}

// Resolve determines the duel outcome. Panics if not Ready -- an internal invariant
// violation, not a caller error (spec.md §7).
func (p *Pending) Resolve() Outcome {
	a, aok := p.AttackerAllocation.V()
	d, dok := p.DefenderAllocation.V()
	if !aok || !dok {
		panic("duel: Resolve called before both allocations were recorded")
	}
	if a > d {
		return AttackerWins
	}
	return DefenderWinsOrTie
}
