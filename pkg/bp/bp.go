// Package bp implements the Battle Point economy (spec.md §4.3): a clamped per-color pool
// plus a pending regeneration buffer that's credited only once a mover's half-move --
// including any duel or retreat it triggers -- fully completes.
package bp

import "github.com/gambitchess/gambit/pkg/board"

// Pool holds the BP balances for both colors, clamped to [0, Max].
type Pool struct {
	Max int

	balance map[board.Color]int
	pending map[board.Color]int
}

// NewPool creates a pool with both colors starting at initial BP, clamped to [0, max].
func NewPool(initial, max int) *Pool {
	p := &Pool{
		Max:     max,
		balance: map[board.Color]int{},
		pending: map[board.Color]int{},
	}
	for _, c := range []board.Color{board.White, board.Black} {
		p.balance[c] = clamp(initial, max)
	}
	return p
}

func clamp(v, max int) int {
	switch {
	case v < 0:
		return 0
	case v > max:
		return max
	default:
		return v
	}
}

// BP returns the color's current balance.
func (p *Pool) BP(c board.Color) int {
	return p.balance[c]
}

// Pending returns the color's pending regeneration bucket.
func (p *Pool) Pending(c board.Color) int {
	return p.pending[c]
}

// Add applies delta to the color's balance directly, clamped to [0, Max]. Used by
// CommitPendingRegen and for any immediate adjustment that bypasses the pending buffer.
func (p *Pool) Add(c board.Color, delta int) {
	p.balance[c] = clamp(p.balance[c]+delta, p.Max)
}

// AddPendingRegen accumulates delta into the color's pending regeneration bucket.
func (p *Pool) AddPendingRegen(c board.Color, delta int) {
	p.pending[c] += delta
}

// CommitPendingRegen moves the color's pending bucket into its balance and zeroes it.
func (p *Pool) CommitPendingRegen(c board.Color) {
	p.Add(c, p.pending[c])
	p.pending[c] = 0
}

// Spend deducts cost from the color's balance if affordable, returning false (balance
// unchanged) otherwise. Duel allocation and retreat payment both go through this, never
// through Add, so insufficient-BP checks are centralized.
func (p *Pool) Spend(c board.Color, cost int) bool {
	if cost > p.balance[c] {
		return false
	}
	p.balance[c] -= cost
	return true
}

// Snapshot is a value copy of the pool's state, used by pkg/engine's SaveState/LoadState.
type Snapshot struct {
	Max     int
	Balance map[board.Color]int
	Pending map[board.Color]int
}

func (p *Pool) Snapshot() Snapshot {
	s := Snapshot{Max: p.Max, Balance: map[board.Color]int{}, Pending: map[board.Color]int{}}
	for c, v := range p.balance {
		s.Balance[c] = v
	}
	for c, v := range p.pending {
		s.Pending[c] = v
	}
	return s
}

func FromSnapshot(s Snapshot) *Pool {
	p := &Pool{Max: s.Max, balance: map[board.Color]int{}, pending: map[board.Color]int{}}
	for c, v := range s.Balance {
		p.balance[c] = v
	}
	for c, v := range s.Pending {
		p.pending[c] = v
	}
	return p
}
