package board

// Surface is the minimal read-only view of a position that a tactic detector or retreat
// enumerator needs: get piece at square, get pieces by color, king position, attack/check
// queries. Pushing this into an interface (rather than a shared mutable base) is how this
// package breaks the cycle between the board and its check/tactic detector (spec.md §9).
// *Position satisfies it directly; callers typically pass board.Board.Position().
type Surface interface {
	PieceAt(sq Square) *Piece
	PiecesByColor(c Color) []*Piece
	KingSquare(c Color) Square
	IsEmpty(sq Square) bool
	IsAttacked(by Color, sq Square) bool
	IsChecked(c Color) bool
	Attacks(attacker *Piece, sq Square) bool
}

var _ Surface = (*Position)(nil)
