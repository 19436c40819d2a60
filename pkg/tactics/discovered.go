package tactics

import "github.com/gambitchess/gambit/pkg/board"

// DetectDiscovered finds discovered attacks and discovered checks caused by the piece
// that just vacated `vacated` (spec.md §4.2). Unlike Fork/Pin/Skewer, these motifs are
// defined relative to the move just played, not a single snapshot: a discovered attack
// is one that became possible only because the mover's own piece stopped blocking it.
//
// movedPieceID is excluded as a discovering attacker (it cannot discover its own line)
// and, for checks, from the set of pieces whose attack on the enemy king counts as
// "discovered" rather than a direct check by the mover.
func DetectDiscovered(before, after board.Surface, attacking board.Color, vacated board.Square, movedPieceID board.PieceID) []Tactic {
	var ret []Tactic
	opponent := attacking.Opponent()

	for _, pc := range after.PiecesByColor(attacking) {
		if pc.ID == movedPieceID || !pc.Type.IsLongRange() {
			continue
		}
		dir, ok := board.RayDirection(pc.Square, vacated)
		if !ok {
			continue
		}
		for _, sq := range board.Walk(pc.Square, dir) {
			target := after.PieceAt(sq)
			if target == nil {
				continue
			}
			if target.Color == attacking {
				break
			}
			if target.Type != board.King {
				ret = append(ret, newTactic(DiscoveredAttack, pc.ID, target.ID))
			}
			break
		}
	}

	if !before.IsChecked(opponent) && after.IsChecked(opponent) {
		kingSq := after.KingSquare(opponent)
		king := after.PieceAt(kingSq)
		for _, pc := range after.PiecesByColor(attacking) {
			if pc.ID == movedPieceID {
				continue
			}
			if after.Attacks(pc, kingSq) {
				ret = append(ret, newTactic(DiscoveredCheck, pc.ID, king.ID))
			}
		}
	}

	return ret
}
