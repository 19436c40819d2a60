package engine

import (
	"encoding/json"
	"fmt"

	"github.com/gambitchess/gambit/pkg/board"
	"github.com/gambitchess/gambit/pkg/bp"
	"github.com/gambitchess/gambit/pkg/duel"
	"github.com/gambitchess/gambit/pkg/retreat"
	"github.com/seekerror/stdlib/pkg/lang"
)

// snapshot is the full core state in a stable, JSON-serializable shape (spec.md §4.6
// loadState/saveState, §6 "opaque byte string, stable format"). Pending duel/retreat state
// is flattened into plain fields rather than re-using pkg/duel.Pending/pkg/retreat.Pending
// directly, since those reference live *board.Piece pointers that don't survive a byte
// round-trip.
type snapshot struct {
	Config                         Config
	WhiteSessionID, BlackSessionID string
	Pieces                         []board.PieceSnapshot
	EnPassant                      board.Square
	MoveNumber                     int
	Result                         board.Result
	NoProgress                     int
	Phase                          Phase
	BPPool                         bp.Snapshot
	History                        []MoveRecord

	PendingDuel    *pendingDuelSnapshot    `json:",omitempty"`
	PendingRetreat *pendingRetreatSnapshot `json:",omitempty"`
}

type pendingDuelSnapshot struct {
	AttackerColor                  board.Color
	AttackerSquare, DefenderSquare board.Square
	From, To                       board.Square
	Promotion                      board.PieceType
	AttackerAllocation             *int
	DefenderAllocation             *int
}

type pendingRetreatSnapshot struct {
	PieceSquare    board.Square
	OriginalSquare board.Square
	FailedTarget   board.Square
	Options        []retreatOptionSnapshot
}

type retreatOptionSnapshot struct {
	Square board.Square
	Cost   int
}

// SaveState serializes the entire core state to a stable byte format (spec.md §4.6, §6).
func (e *Engine) SaveState() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireInitialized(); err != nil {
		return nil, err
	}

	pieces, enpassant, moveNumber, result, noprogress := e.b.Snapshot()
	s := snapshot{
		Config:         e.config,
		WhiteSessionID: e.whiteSessionID,
		BlackSessionID: e.blackSessionID,
		Pieces:         pieces,
		EnPassant:      enpassant,
		MoveNumber:     moveNumber,
		Result:         result,
		NoProgress:     noprogress,
		Phase:          e.phase,
		BPPool:         e.bpPool.Snapshot(),
		History:        e.history,
	}

	if pd := e.pendingDuel; pd != nil {
		ds := &pendingDuelSnapshot{
			AttackerColor:  pd.AttackerColor,
			AttackerSquare: pd.Attacker.Square,
			DefenderSquare: pd.Defender.Square,
			From:           pd.From,
			To:             pd.To,
			Promotion:      pd.Promotion,
		}
		if v, ok := pd.AttackerAllocation.V(); ok {
			ds.AttackerAllocation = &v
		}
		if v, ok := pd.DefenderAllocation.V(); ok {
			ds.DefenderAllocation = &v
		}
		s.PendingDuel = ds
	}

	if pr := e.pendingRetreat; pr != nil {
		rs := &pendingRetreatSnapshot{
			PieceSquare:    pr.Piece.Square,
			OriginalSquare: pr.OriginalSquare,
			FailedTarget:   pr.FailedTarget,
		}
		for _, o := range pr.Options {
			rs.Options = append(rs.Options, retreatOptionSnapshot{Square: o.Square, Cost: o.Cost})
		}
		s.PendingRetreat = rs
	}

	return json.Marshal(s)
}

// LoadState restores the entire core state from bytes produced by SaveState.
func (e *Engine) LoadState(data []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid saved state: %w", err)
	}

	e.config = s.Config
	e.whiteSessionID, e.blackSessionID = s.WhiteSessionID, s.BlackSessionID
	b, err := board.RestoreBoard(s.Pieces, s.EnPassant, s.MoveNumber, s.Result, s.NoProgress, e.config.DrawRules)
	if err != nil {
		return fmt.Errorf("invalid saved position: %w", err)
	}
	e.b = b
	e.phase = s.Phase
	e.bpPool = bp.FromSnapshot(s.BPPool)
	e.history = s.History
	e.pendingDuel = nil
	e.pendingRetreat = nil

	if ds := s.PendingDuel; ds != nil {
		pending := duel.New(ds.AttackerColor, e.b.GetPieceAt(ds.AttackerSquare), e.b.GetPieceAt(ds.DefenderSquare), ds.From, ds.To)
		pending.Promotion = ds.Promotion
		if ds.AttackerAllocation != nil {
			pending.AttackerAllocation = lang.Some(*ds.AttackerAllocation)
		}
		if ds.DefenderAllocation != nil {
			pending.DefenderAllocation = lang.Some(*ds.DefenderAllocation)
		}
		e.pendingDuel = pending
	}
	if rs := s.PendingRetreat; rs != nil {
		pending := &retreat.Pending{
			Piece:          e.b.GetPieceAt(rs.PieceSquare),
			OriginalSquare: rs.OriginalSquare,
			FailedTarget:   rs.FailedTarget,
		}
		for _, o := range rs.Options {
			pending.Options = append(pending.Options, retreat.Option{Square: o.Square, Cost: o.Cost})
		}
		e.pendingRetreat = pending
	}

	e.initialized = true
	return nil
}
