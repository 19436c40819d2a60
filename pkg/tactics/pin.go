package tactics

import "github.com/gambitchess/gambit/pkg/board"

// detectPinsAndSkewers walks each of attacking's long-range pieces along their rays,
// looking for two enemy pieces in a row with nothing but empty squares between them and
// in front of the nearer one. If the farther piece (or king) is worth more than the
// nearer, it's a pin; if the nearer is worth more, it's a skewer (spec.md §4.2).
func detectPinsAndSkewers(pos board.Surface, attacking board.Color) []Tactic {
	var ret []Tactic
	opponent := attacking.Opponent()

	for _, pc := range pos.PiecesByColor(attacking) {
		if !pc.Type.IsLongRange() {
			continue
		}
		for _, dir := range raysFor(pc.Type) {
			nearer := firstOccupied(pos, pc.Square, dir)
			if nearer == nil || nearer.Color != opponent {
				continue
			}
			farther := firstOccupied(pos, nearer.Square, dir)
			if farther == nil || farther.Color != opponent {
				continue
			}

			nv, fv := nearer.Type.ClassicalValue(), farther.Type.ClassicalValue()
			switch {
			case farther.Type == board.King || fv > nv:
				ret = append(ret, newTactic(Pin, pc.ID, nearer.ID, farther.ID))
			case nv > fv:
				ret = append(ret, newTactic(Skewer, pc.ID, nearer.ID, farther.ID))
			}
		}
	}
	return ret
}

func raysFor(t board.PieceType) []board.Direction {
	switch t {
	case board.Bishop:
		return board.DiagonalDirections
	case board.Rook:
		return board.OrthogonalDirections
	case board.Queen:
		return board.AllDirections
	default:
		return nil
	}
}

// firstOccupied returns the first occupied square's piece along dir from `from`, or nil
// if the ray runs off the board without hitting one.
func firstOccupied(pos board.Surface, from board.Square, dir board.Direction) *board.Piece {
	for _, sq := range board.Walk(from, dir) {
		if pc := pos.PieceAt(sq); pc != nil {
			return pc
		}
	}
	return nil
}
