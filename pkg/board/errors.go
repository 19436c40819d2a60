package board

import "errors"

// Sentinel errors returned by Board.Classify/MakeMove/RelocatePiece, matching the
// move-legality failure modes of spec.md §4.1: invalid position, no piece at source,
// wrong piece owner, illegal move shape/path, and moves that leave the mover's own king
// in check. Callers (pkg/engine) wrap these into the caller-visible GambitError taxonomy.
var (
	ErrInvalidPosition      = errors.New("board: invalid position")
	ErrNoPieceAtSource      = errors.New("board: no piece at source square")
	ErrWrongPieceOwner      = errors.New("board: piece does not belong to the side to move")
	ErrIllegalMove          = errors.New("board: illegal move")
	ErrMoveLeavesKingInCheck = errors.New("board: move leaves own king in check")
	ErrGameOver             = errors.New("board: game is already over")
)
