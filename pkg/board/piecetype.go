package board

// PieceType represents a chess piece kind (King, Pawn, etc), with no color or identity.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

const (
	ZeroPieceType PieceType = Pawn
	NumPieceTypes PieceType = King + 1
)

// IsLongRange returns true iff the piece type is a sliding piece: bishop, rook or queen.
func (t PieceType) IsLongRange() bool {
	return t == Bishop || t == Rook || t == Queen
}

// ClassicalValue is the nominal chess value of the piece type, in pawns. The King has no
// classical value (it is never captured or traded), per spec.md §3: P=1, N=B=3, R=5, Q=9, K=0.
// It also doubles as a piece's duel capacity (spec.md §6's DUEL_CAPACITY).
func (t PieceType) ClassicalValue() int {
	switch t {
	case Pawn:
		return 1
	case Knight, Bishop:
		return 3
	case Rook:
		return 5
	case Queen:
		return 9
	default:
		return 0
	}
}

func ParsePieceType(r rune) (PieceType, bool) {
	switch r {
	case 'p', 'P':
		return Pawn, true
	case 'n', 'N':
		return Knight, true
	case 'b', 'B':
		return Bishop, true
	case 'r', 'R':
		return Rook, true
	case 'q', 'Q':
		return Queen, true
	case 'k', 'K':
		return King, true
	default:
		return NoPieceType, false
	}
}

func (t PieceType) IsValid() bool {
	return Pawn <= t && t <= King
}

func (t PieceType) String() string {
	switch t {
	case NoPieceType:
		return " "
	case Pawn:
		return "p"
	case Knight:
		return "n"
	case Bishop:
		return "b"
	case Rook:
		return "r"
	case Queen:
		return "q"
	case King:
		return "k"
	default:
		return "?"
	}
}
