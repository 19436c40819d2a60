package engine

import (
	"github.com/gambitchess/gambit/pkg/board"
	"github.com/gambitchess/gambit/pkg/duel"
	"github.com/gambitchess/gambit/pkg/tactics"
)

// MoveRecord is one entry of the append-only, replay-sufficient move history (spec.md
// §3). It captures a full logical move, including any duel or retreat resolution.
type MoveRecord struct {
	Number   int
	Color    board.Color
	Type     MoveKind
	From, To board.Square
	Piece    board.PieceType

	CapturedPiece *board.PieceType
	Promotion     board.PieceType

	DuelOutcome *duel.Outcome
	BPSpent     int

	RetreatSquare *board.Square
	RetreatCost   int

	CheckState      bool
	TacticsDetected []tactics.Tactic
}

func mapMoveKind(t board.MoveType) MoveKind {
	switch t {
	case board.Capture, board.CapturePromotion:
		return CaptureKind
	case board.EnPassant:
		return EnPassantKind
	case board.KingSideCastle, board.QueenSideCastle:
		return CastleKind
	case board.Promotion:
		return PromotionKind
	default:
		return NormalKind
	}
}
