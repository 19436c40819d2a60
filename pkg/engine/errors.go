package engine

import (
	"errors"
	"fmt"

	"github.com/gambitchess/gambit/pkg/board"
	"github.com/gambitchess/gambit/pkg/duel"
	"github.com/gambitchess/gambit/pkg/retreat"
)

// ErrorKind enumerates the caller-visible validation failures of the core (spec.md §7).
type ErrorKind int

const (
	WrongPhase ErrorKind = iota
	NotYourTurn
	NotYourSession
	NotAParticipant
	NoPieceAtSource
	WrongPieceOwner
	IllegalMove
	MoveLeavesKingInCheck
	InvalidPosition
	InvalidBPAllocation
	InsufficientBP
	BPCostMismatch
	InvalidRetreatPosition
	AlreadyAllocated
	GameOver
	AlreadyInitialized
	NotInitialized
)

func (k ErrorKind) String() string {
	switch k {
	case WrongPhase:
		return "WrongPhase"
	case NotYourTurn:
		return "NotYourTurn"
	case NotYourSession:
		return "NotYourSession"
	case NotAParticipant:
		return "NotAParticipant"
	case NoPieceAtSource:
		return "NoPieceAtSource"
	case WrongPieceOwner:
		return "WrongPieceOwner"
	case IllegalMove:
		return "IllegalMove"
	case MoveLeavesKingInCheck:
		return "MoveLeavesKingInCheck"
	case InvalidPosition:
		return "InvalidPosition"
	case InvalidBPAllocation:
		return "InvalidBPAllocation"
	case InsufficientBP:
		return "InsufficientBP"
	case BPCostMismatch:
		return "BPCostMismatch"
	case InvalidRetreatPosition:
		return "InvalidRetreatPosition"
	case AlreadyAllocated:
		return "AlreadyAllocated"
	case GameOver:
		return "GameOver"
	case AlreadyInitialized:
		return "AlreadyInitialized"
	case NotInitialized:
		return "NotInitialized"
	default:
		return "?"
	}
}

// GambitError is the error type returned by every public Engine operation: a
// machine-readable Kind plus a short human message (spec.md §7). Never returned for
// internal-invariant violations -- those panic instead, after a logw.Errorf.
type GambitError struct {
	Kind    ErrorKind
	Message string
}

func (e *GambitError) Error() string {
	return fmt.Sprintf("%v: %v", e.Kind, e.Message)
}

func newError(kind ErrorKind, format string, args ...interface{}) *GambitError {
	return &GambitError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// fromBoardErr maps a pkg/board sentinel error onto the engine's error taxonomy.
func fromBoardErr(err error) *GambitError {
	switch {
	case errors.Is(err, board.ErrInvalidPosition):
		return newError(InvalidPosition, "%v", err)
	case errors.Is(err, board.ErrNoPieceAtSource):
		return newError(NoPieceAtSource, "%v", err)
	case errors.Is(err, board.ErrWrongPieceOwner):
		return newError(WrongPieceOwner, "%v", err)
	case errors.Is(err, board.ErrMoveLeavesKingInCheck):
		return newError(MoveLeavesKingInCheck, "%v", err)
	case errors.Is(err, board.ErrGameOver):
		return newError(GameOver, "%v", err)
	default:
		return newError(IllegalMove, "%v", err)
	}
}

// fromDuelErr maps a pkg/duel validation error onto the engine's error taxonomy.
func fromDuelErr(err *duel.Error) *GambitError {
	switch err.Kind {
	case duel.NotAParticipant:
		return newError(NotAParticipant, "%v", err.Message)
	case duel.AlreadyAllocated:
		return newError(AlreadyAllocated, "%v", err.Message)
	default:
		return newError(InvalidBPAllocation, "%v", err.Message)
	}
}

// fromRetreatErr maps a pkg/retreat validation error onto the engine's error taxonomy.
func fromRetreatErr(err *retreat.Error) *GambitError {
	switch err.Kind {
	case retreat.BPCostMismatch:
		return newError(BPCostMismatch, "%v", err.Message)
	case retreat.InvalidRetreatPosition:
		return newError(InvalidRetreatPosition, "%v", err.Message)
	case retreat.InsufficientBP:
		return newError(InsufficientBP, "%v", err.Message)
	default:
		return newError(InvalidRetreatPosition, "%v", err.Message)
	}
}
