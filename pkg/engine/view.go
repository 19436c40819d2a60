package engine

import "github.com/gambitchess/gambit/pkg/board"

// Role is the viewer's relationship to the game, determining what CreateStateView
// filters out (spec.md §6).
type Role int

const (
	RoleWhite Role = iota
	RoleBlack
	RoleSpectator
)

// PieceView is one piece's public state.
type PieceView struct {
	ID     board.PieceID
	Type   board.PieceType
	Color  board.Color
	Square board.Square
}

// PendingDuelView is the viewer-filtered projection of a pending duel (spec.md §6): the
// fact that a duel is pending and the squares involved are always visible; the viewer's
// own allocation is visible once submitted; the opponent's never is, before resolution.
type PendingDuelView struct {
	AttackerColor      board.Color
	From, To           board.Square
	OwnAllocation      *int
	OpponentAllocated  bool
}

// RetreatOptionView is one retreat choice, visible only to the retreating attacker.
type RetreatOptionView struct {
	Square board.Square
	Cost   int
}

// PendingRetreatView is the viewer-filtered projection of a pending retreat. Spectators
// and the non-attacker see only that a retreat is pending (Options is nil); the attacker's
// own view carries the full priced option list.
type PendingRetreatView struct {
	PieceSquare board.Square
	Options     []RetreatOptionView // nil unless the viewer is the retreating attacker
}

// GameStateView is the role-filtered snapshot returned by CreateStateView (spec.md §6). It
// is a value type: mutating it never affects engine state.
type GameStateView struct {
	Role   Role
	Pieces []PieceView
	History []MoveRecord
	Phase  Phase
	Turn   board.Color
	Result board.Result

	OwnBP int
	TimeControl TimeControl

	PendingDuel    *PendingDuelView
	PendingRetreat *PendingRetreatView
}
