package board

import "fmt"

// Square represents a square on the board. The numbering is file-major,
// rank-minor: A1=0, B1=1, .., H1=7, A2=8, .., H8=63. Equivalently,
// Square = Rank*8 + File with File A=0..H=7 and Rank 1=0..8=7.
//
// This fixes, once and for all, the (x,y) convention left ambiguous by
// the source this specification was distilled from: x is File (0..7,
// A..H), y is Rank (0..7, ranks 1..8), and Rank 0 is White's back rank.
// The competing convention -- y=1 meaning rank 2 in some call sites and
// rank 7 in others -- is rejected at this boundary: NewSquareXY,
// NewSquare and ParseSquare/ParseSquareStr construct a Square, and all
// are total and bijective over the valid range.
type Square int8

const (
	// NoSquare is the sentinel for "no square" (spec.md's NONE), used for
	// captured pieces, which retain identity but leave the board.
	NoSquare Square = -1

	ZeroSquare Square = 0
	NumSquares Square = 64
)

// NewSquareXY returns the square at the given zero-based file/rank, or
// NoSquare if out of range.
func NewSquareXY(x, y int) Square {
	if x < 0 || x > 7 || y < 0 || y > 7 {
		return NoSquare
	}
	return Square(y*8 + x)
}

func NewSquare(f File, r Rank) Square {
	return Square(int(r)*8 + int(f))
}

func ParseSquare(f, r rune) (Square, error) {
	file, ok := ParseFile(f)
	if !ok {
		return NoSquare, fmt.Errorf("invalid file: %v", string(f))
	}
	rank, ok := ParseRank(r)
	if !ok {
		return NoSquare, fmt.Errorf("invalid rank: %v", string(r))
	}
	return NewSquare(file, rank), nil
}

func ParseSquareStr(str string) (Square, error) {
	runes := []rune(str)
	if len(runes) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %v", str)
	}
	return ParseSquare(runes[0], runes[1])
}

func (s Square) IsValid() bool {
	return s >= ZeroSquare && s < NumSquares
}

// X returns the zero-based file (0=a..7=h).
func (s Square) X() int {
	return int(s) % 8
}

// Y returns the zero-based rank (0=rank1..7=rank8).
func (s Square) Y() int {
	return int(s) / 8
}

func (s Square) Rank() Rank {
	return Rank(s.Y())
}

func (s Square) File() File {
	return File(s.X())
}

func (s Square) String() string {
	if !s.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%v%v", s.File(), s.Rank())
}

// Rank represents a chess board rank from Rank1=0, ..Rank8=7. 3bits.
type Rank uint8

const (
	Rank1 Rank = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

const (
	ZeroRank Rank = 0
	NumRanks Rank = 8
)

func ParseRank(r rune) (Rank, bool) {
	switch r {
	case '1':
		return Rank1, true
	case '2':
		return Rank2, true
	case '3':
		return Rank3, true
	case '4':
		return Rank4, true
	case '5':
		return Rank5, true
	case '6':
		return Rank6, true
	case '7':
		return Rank7, true
	case '8':
		return Rank8, true
	default:
		return 0, false
	}
}

func (r Rank) IsValid() bool {
	return r <= Rank8
}

func (r Rank) V() int {
	return int(r)
}

func (r Rank) String() string {
	switch r {
	case Rank1:
		return "1"
	case Rank2:
		return "2"
	case Rank3:
		return "3"
	case Rank4:
		return "4"
	case Rank5:
		return "5"
	case Rank6:
		return "6"
	case Rank7:
		return "7"
	case Rank8:
		return "8"
	default:
		return "?"
	}
}

// File represents a chess board file from FileA=0, ..FileH=7.
type File uint8

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

const (
	ZeroFile File = 0
	NumFiles File = 8
)

func ParseFile(r rune) (File, bool) {
	switch r {
	case 'a', 'A':
		return FileA, true
	case 'b', 'B':
		return FileB, true
	case 'c', 'C':
		return FileC, true
	case 'd', 'D':
		return FileD, true
	case 'e', 'E':
		return FileE, true
	case 'f', 'F':
		return FileF, true
	case 'g', 'G':
		return FileG, true
	case 'h', 'H':
		return FileH, true
	default:
		return 0, false
	}
}

func (f File) IsValid() bool {
	return f <= FileH
}

func (f File) V() int {
	return int(f)
}

func (f File) String() string {
	switch f {
	case FileA:
		return "a"
	case FileB:
		return "b"
	case FileC:
		return "c"
	case FileD:
		return "d"
	case FileE:
		return "e"
	case FileF:
		return "f"
	case FileG:
		return "g"
	case FileH:
		return "h"
	default:
		return "?"
	}
}
