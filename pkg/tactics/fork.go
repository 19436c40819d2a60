package tactics

import "github.com/gambitchess/gambit/pkg/board"

// detectForks finds, for each of attacking's pieces, the set of enemy pieces it attacks
// simultaneously; two or more makes a fork (spec.md §4.2).
func detectForks(pos board.Surface, attacking board.Color) []Tactic {
	var ret []Tactic
	opponent := attacking.Opponent()

	for _, pc := range pos.PiecesByColor(attacking) {
		var victims []board.PieceID
		for _, target := range pos.PiecesByColor(opponent) {
			if pos.Attacks(pc, target.Square) {
				victims = append(victims, target.ID)
			}
		}
		if len(victims) >= 2 {
			ret = append(ret, newTactic(Fork, pc.ID, victims...))
		}
	}
	return ret
}
