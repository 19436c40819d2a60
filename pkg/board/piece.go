package board

import "fmt"

// PieceID identifies a piece across its entire lifetime in a game, including after capture.
type PieceID int

// Piece is a single chess piece instance. Unlike PieceType/Color, a Piece carries identity and
// move history, needed by the tactic detector's (motif, attacker id, victim ids) keying and by
// move records that must refer to "the same bishop" across a game.
type Piece struct {
	ID    PieceID
	Type  PieceType
	Color Color

	// Square is the piece's current square, or NoSquare if captured.
	Square Square

	HasMoved bool
	// FirstMoveTurn and LastMoveTurn are 1-based half-move numbers (Board.MoveNumber at the
	// time of the move), valid only if HasMoved.
	FirstMoveTurn int
	LastMoveTurn  int
}

// Captured returns true iff the piece has been removed from the board.
func (p *Piece) Captured() bool {
	return p.Square == NoSquare
}

func (p *Piece) String() string {
	sq := "captured"
	if !p.Captured() {
		sq = p.Square.String()
	}
	return fmt.Sprintf("%v#%v@%v", printPiece(p.Color, p.Type), p.ID, sq)
}

func printPiece(c Color, t PieceType) string {
	if c == White {
		switch t {
		case Pawn:
			return "P"
		case Knight:
			return "N"
		case Bishop:
			return "B"
		case Rook:
			return "R"
		case Queen:
			return "Q"
		case King:
			return "K"
		}
		return "?"
	}
	return t.String()
}
