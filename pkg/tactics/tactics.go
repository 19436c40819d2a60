// Package tactics classifies tactical motifs -- forks, pins, skewers, discovered attacks
// and discovered checks -- on a board snapshot, and diffs two snapshots to isolate which
// motifs are new (spec.md §4.2). It depends only on board.Surface, never on *board.Board,
// so it cannot reach into move-execution or game-phase state: the detector answers "what
// tactics exist right now", nothing else.
package tactics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gambitchess/gambit/pkg/board"
)

// MotifType identifies the kind of tactical pattern.
type MotifType uint8

const (
	Fork MotifType = iota
	Pin
	Skewer
	DiscoveredAttack
	DiscoveredCheck
)

func (m MotifType) String() string {
	switch m {
	case Fork:
		return "fork"
	case Pin:
		return "pin"
	case Skewer:
		return "skewer"
	case DiscoveredAttack:
		return "discovered-attack"
	case DiscoveredCheck:
		return "discovered-check"
	default:
		return "?"
	}
}

// Tactic is one instance of a motif, from the perspective of the attacking color.
// Attacker is the piece id executing the motif; Victims are the enemy piece ids it
// implicates, always sorted, forming the canonical (type, attacker, victims) key that
// spec.md §4.2 uses to tell new tactics from pre-existing ones.
type Tactic struct {
	Type     MotifType
	Attacker board.PieceID
	Victims  []board.PieceID
}

// Key returns the canonical identity of the tactic instance.
func (t Tactic) Key() string {
	ids := make([]string, len(t.Victims))
	for i, v := range t.Victims {
		ids[i] = fmt.Sprintf("%v", v)
	}
	return fmt.Sprintf("%v/%v/%v", t.Type, t.Attacker, strings.Join(ids, ","))
}

func newTactic(typ MotifType, attacker board.PieceID, victims ...board.PieceID) Tactic {
	sorted := append([]board.PieceID(nil), victims...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return Tactic{Type: typ, Attacker: attacker, Victims: sorted}
}

// Diff partitions `after`'s tactics into those whose canonical key is absent from
// `before` (new) and those present in both (preExisting). Only `new` tactics accrue BP
// bonuses (spec.md §4.2, §4.3).
func Diff(before, after []Tactic) (new_ []Tactic, preExisting []Tactic) {
	seen := make(map[string]bool, len(before))
	for _, t := range before {
		seen[t.Key()] = true
	}
	for _, t := range after {
		if seen[t.Key()] {
			preExisting = append(preExisting, t)
		} else {
			new_ = append(new_, t)
		}
	}
	return new_, preExisting
}

// Detect returns every Fork/Pin/Skewer instance on pos, attacking color's pieces against
// the opponent's. Discovered attacks/checks are computed separately by DetectDiscovered,
// since they require the square vacated by the just-moved piece, not just a snapshot.
func Detect(pos board.Surface, attacking board.Color) []Tactic {
	var ret []Tactic
	ret = append(ret, detectForks(pos, attacking)...)
	ret = append(ret, detectPinsAndSkewers(pos, attacking)...)
	return ret
}
