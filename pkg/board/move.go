package board

import "fmt"

// MoveType indicates the kind of move, at board-execution granularity (finer than the
// spec.md §3 move-record taxonomy, which collapses Push/Jump/KingSideCastle/
// QueenSideCastle into NORMAL/CASTLE -- see pkg/engine.MoveRecord for that view).
type MoveType uint8

const (
	Normal MoveType = iota
	Push            // pawn forward move
	Jump            // pawn two-square advance
	EnPassant
	KingSideCastle
	QueenSideCastle
	Capture
	Promotion
	CapturePromotion
)

// Move represents a not-necessarily-legal move, in pure coordinate form.
type Move struct {
	Type       MoveType
	From, To   Square
	Piece      PieceType // mover's type, for convenience/logging
	Promotion  PieceType // desired promotion piece, if any
	Capture    PieceType // captured piece type, if any (including en passant)
}

// IsCapture returns true iff the move removes an enemy piece from the board.
func (m Move) IsCapture() bool {
	return m.Type == Capture || m.Type == CapturePromotion || m.Type == EnPassant
}

// ParseMove parses a move in pure algebraic coordinate notation, such as "a2a4" or "a7a8q".
// The parsed move carries no contextual information (castling, en passant, captures) --
// that's resolved against a position by Board.IsValidMove/MakeMove.
func ParseMove(str string) (Move, error) {
	runes := []rune(str)
	if len(runes) < 4 || len(runes) > 5 {
		return Move{}, fmt.Errorf("invalid move: '%v'", str)
	}

	from, err := ParseSquare(runes[0], runes[1])
	if err != nil {
		return Move{}, fmt.Errorf("invalid from in '%v': %w", str, err)
	}
	to, err := ParseSquare(runes[2], runes[3])
	if err != nil {
		return Move{}, fmt.Errorf("invalid to in '%v': %w", str, err)
	}

	if len(runes) == 5 {
		promo, ok := ParsePieceType(runes[4])
		if !ok || promo == Pawn || promo == King {
			return Move{}, fmt.Errorf("invalid promotion in '%v'", str)
		}
		return Move{From: from, To: to, Promotion: promo}, nil
	}
	return Move{From: from, To: to}, nil
}

func (m Move) Equals(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Promotion == o.Promotion
}

func (m Move) String() string {
	if m.Promotion.IsValid() {
		return fmt.Sprintf("%v%v%v", m.From, m.To, m.Promotion)
	}
	return fmt.Sprintf("%v%v", m.From, m.To)
}
