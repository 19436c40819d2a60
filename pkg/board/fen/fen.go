// Package fen reads and writes chess positions in Forsyth-Edwards Notation, used by
// pkg/engine to set up a game's starting position, including the custom positions
// pkg/scenario seeds through engine.InitializeFromFEN.
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/gambitchess/gambit/pkg/board"
)

// Initial is the FEN of the standard chess starting position.
const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Decode parses a FEN record into a position plus the turn, halfmove clock (plies since
// the last pawn move or capture) and fullmove number (incremented after Black's move),
// matching the standard FEN convention.
func Decode(fen string) (*board.Position, board.Color, int, int, error) {
	parts := strings.Split(strings.TrimSpace(fen), " ")
	if len(parts) != 6 {
		return nil, 0, 0, 0, fmt.Errorf("invalid number of sections in FEN: %q", fen)
	}

	placements, err := decodePlacement(parts[0])
	if err != nil {
		return nil, 0, 0, 0, fmt.Errorf("invalid placement in FEN %q: %w", fen, err)
	}

	turn, ok := parseColor(parts[1])
	if !ok {
		return nil, 0, 0, 0, fmt.Errorf("invalid active color in FEN: %q", fen)
	}

	// Castling availability is not stored directly: CastlingRights is derived from
	// HasMoved, so a granted right is honored by marking the corresponding king/rook
	// as not-yet-moved.
	rights, ok := parseCastling(parts[2])
	if !ok {
		return nil, 0, 0, 0, fmt.Errorf("invalid castling in FEN: %q", fen)
	}
	applyCastlingRights(placements, rights)

	ep := board.NoSquare
	if parts[3] != "-" {
		sq, err := board.ParseSquareStr(parts[3])
		if err != nil {
			return nil, 0, 0, 0, fmt.Errorf("invalid en passant in FEN %q: %w", fen, err)
		}
		ep = sq
	}

	halfmove, err := strconv.Atoi(parts[4])
	if err != nil || halfmove < 0 {
		return nil, 0, 0, 0, fmt.Errorf("invalid halfmove clock in FEN: %q", fen)
	}
	fullmove, err := strconv.Atoi(parts[5])
	if err != nil || fullmove < 1 {
		return nil, 0, 0, 0, fmt.Errorf("invalid fullmove number in FEN: %q", fen)
	}

	pos, err := board.NewPosition(placements, ep)
	if err != nil {
		return nil, 0, 0, 0, fmt.Errorf("invalid position in FEN %q: %w", fen, err)
	}
	return pos, turn, halfmove, fullmove, nil
}

// MoveNumber converts the FEN (turn, fullmove) pair into this module's 1-based
// half-move numbering (spec.md §3: "increments after each executed half-move").
func MoveNumber(turn board.Color, fullmove int) int {
	n := 2*(fullmove-1) + 1
	if turn == board.Black {
		n++
	}
	return n
}

func decodePlacement(field string) ([]board.Placement, error) {
	var placements []board.Placement
	x, y := 0, 7

	for _, r := range field {
		switch {
		case r == '/':
			if x != 8 {
				return nil, fmt.Errorf("short rank before '/'")
			}
			x, y = 0, y-1
		case unicode.IsDigit(r):
			x += int(r - '0')
		case unicode.IsLetter(r):
			color, pt, ok := parsePiece(r)
			if !ok {
				return nil, fmt.Errorf("invalid piece %q", string(r))
			}
			sq := board.NewSquareXY(x, y)
			if sq == board.NoSquare {
				return nil, fmt.Errorf("piece placement out of bounds")
			}
			placements = append(placements, board.Placement{Square: sq, Color: color, Type: pt})
			x++
		default:
			return nil, fmt.Errorf("invalid character %q", string(r))
		}
	}
	if x != 8 || y != 0 {
		return nil, fmt.Errorf("invalid number of squares")
	}
	return placements, nil
}

func applyCastlingRights(placements []board.Placement, rights board.Castling) {
	for i, pl := range placements {
		switch {
		case pl.Type == board.Rook && pl.Color == board.White && pl.Square == board.NewSquareXY(7, 0):
			if rights.IsAllowed(board.WhiteKingSideCastle) {
				placements[i].HasMoved = false
			}
		case pl.Type == board.Rook && pl.Color == board.White && pl.Square == board.NewSquareXY(0, 0):
			if rights.IsAllowed(board.WhiteQueenSideCastle) {
				placements[i].HasMoved = false
			}
		case pl.Type == board.Rook && pl.Color == board.Black && pl.Square == board.NewSquareXY(7, 7):
			if rights.IsAllowed(board.BlackKingSideCastle) {
				placements[i].HasMoved = false
			}
		case pl.Type == board.Rook && pl.Color == board.Black && pl.Square == board.NewSquareXY(0, 7):
			if rights.IsAllowed(board.BlackQueenSideCastle) {
				placements[i].HasMoved = false
			}
		case pl.Type == board.King && pl.Color == board.White:
			if rights.IsAllowed(board.WhiteKingSideCastle) || rights.IsAllowed(board.WhiteQueenSideCastle) {
				placements[i].HasMoved = false
			}
		case pl.Type == board.King && pl.Color == board.Black:
			if rights.IsAllowed(board.BlackKingSideCastle) || rights.IsAllowed(board.BlackQueenSideCastle) {
				placements[i].HasMoved = false
			}
		}
	}
}

// Encode encodes a position plus turn/halfmove/fullmove metadata in FEN.
func Encode(pos *board.Position, turn board.Color, halfmove, fullmove int) string {
	var sb strings.Builder
	for y := 7; y >= 0; y-- {
		blanks := 0
		for x := 0; x < 8; x++ {
			pc := pos.PieceAt(board.NewSquareXY(x, y))
			if pc == nil {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteRune(printPiece(pc.Color, pc.Type))
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if y > 0 {
			sb.WriteString("/")
		}
	}

	rights := pos.CastlingRights(board.White) | pos.CastlingRights(board.Black)

	ep := "-"
	if sq, ok := pos.EnPassant(); ok {
		ep = sq.String()
	}

	return fmt.Sprintf("%v %v %v %v %v %v", sb.String(), printColor(turn), rights.String(), ep, halfmove, fullmove)
}

func parseCastling(str string) (board.Castling, bool) {
	var ret board.Castling
	if str == "-" {
		return ret, true
	}
	for _, r := range str {
		switch r {
		case 'K':
			ret |= board.WhiteKingSideCastle
		case 'Q':
			ret |= board.WhiteQueenSideCastle
		case 'k':
			ret |= board.BlackKingSideCastle
		case 'q':
			ret |= board.BlackQueenSideCastle
		default:
			return 0, false
		}
	}
	return ret, true
}

func parseColor(str string) (board.Color, bool) {
	switch str {
	case "w", "W":
		return board.White, true
	case "b", "B":
		return board.Black, true
	default:
		return 0, false
	}
}

func printColor(c board.Color) string {
	if c == board.White {
		return "w"
	}
	return "b"
}

func parsePiece(r rune) (board.Color, board.PieceType, bool) {
	pt, ok := board.ParsePieceType(r)
	if !ok {
		return 0, 0, false
	}
	if unicode.IsUpper(r) {
		return board.White, pt, true
	}
	return board.Black, pt, true
}

func printPiece(c board.Color, t board.PieceType) rune {
	r := []rune(t.String())[0]
	if c == board.White {
		return unicode.ToUpper(r)
	}
	return r
}
