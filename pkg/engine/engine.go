// Package engine is the top-level orchestrator of Gambit Chess (spec.md §4.6): it owns a
// board, a BP pool, and the pending duel/retreat state, and exposes the phase-gated
// operation set a transport layer drives a game through. It is a pure, synchronous,
// in-memory state machine -- no goroutines, no suspension points (spec.md §5).
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/gambitchess/gambit/pkg/board"
	"github.com/gambitchess/gambit/pkg/board/fen"
	"github.com/gambitchess/gambit/pkg/bp"
	"github.com/gambitchess/gambit/pkg/duel"
	"github.com/gambitchess/gambit/pkg/retreat"
	"github.com/gambitchess/gambit/pkg/tactics"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
)

var version = build.NewVersion(0, 1, 0)

// MoveResult is the outcome of a successful ProcessMove call.
type MoveResult struct {
	Success      bool
	TriggersDuel bool
	MoveType     MoveKind
}

// AllocationResult is the outcome of a successful ProcessBPAllocation call.
type AllocationResult struct {
	Success bool
}

// RetreatResult is the outcome of a successful ProcessTacticalRetreat call.
type RetreatResult struct {
	Success bool
}

// Engine owns one game's entire authoritative state. Internally self-serializing: every
// operation takes the same mutex (spec.md §5's "per-game single-threaded cooperative"
// model -- different Engines may run in parallel; one Engine's operations must not be
// interleaved by the host regardless).
type Engine struct {
	mu sync.Mutex

	config Config

	initialized                    bool
	whiteSessionID, blackSessionID string

	b      *board.Board
	bpPool *bp.Pool
	phase  Phase

	pendingDuel    *duel.Pending
	pendingRetreat *retreat.Pending

	history []MoveRecord
}

// New constructs an engine with the given config overrides. Initialize must be called
// before any other operation.
func New(opts ...Option) *Engine {
	cfg := DefaultConfig()
	for _, fn := range opts {
		fn(&cfg)
	}
	return &Engine{config: cfg, phase: PhaseGameOver}
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("gambit %v", version)
}

// Initialize resets the engine to a fresh game from the standard starting position
// (spec.md §4.6).
func (e *Engine) Initialize(ctx context.Context, whiteSessionID, blackSessionID string) error {
	return e.InitializeFromFEN(ctx, whiteSessionID, blackSessionID, fen.Initial)
}

// InitializeFromFEN resets the engine to a game starting from an arbitrary position,
// used by pkg/scenario to seed deterministic test positions (spec.md §4.7).
func (e *Engine) InitializeFromFEN(ctx context.Context, whiteSessionID, blackSessionID, position string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized {
		return newError(AlreadyInitialized, "engine already initialized")
	}

	pos, turn, _, fullmove, err := fen.Decode(position)
	if err != nil {
		return newError(InvalidPosition, "%v", err)
	}

	e.b = board.NewBoard(pos, fen.MoveNumber(turn, fullmove), e.config.DrawRules)
	e.bpPool = bp.NewPool(e.config.InitialBPPool, e.config.BPMax)
	e.phase = PhaseNormalMove
	e.whiteSessionID, e.blackSessionID = whiteSessionID, blackSessionID
	e.pendingDuel = nil
	e.pendingRetreat = nil
	e.history = nil
	e.initialized = true

	logw.Infof(ctx, "Initialized game: white=%v black=%v, config=%+v", whiteSessionID, blackSessionID, e.config)
	return nil
}

func (e *Engine) sessionRole(sessionID string) Role {
	switch sessionID {
	case e.whiteSessionID:
		return RoleWhite
	case e.blackSessionID:
		return RoleBlack
	default:
		return RoleSpectator
	}
}

func (e *Engine) sessionColor(sessionID string) (board.Color, bool) {
	switch sessionID {
	case e.whiteSessionID:
		return board.White, true
	case e.blackSessionID:
		return board.Black, true
	default:
		return 0, false
	}
}

// captureTarget returns the square and piece a move from->to would capture, including
// en passant (the captured pawn stands behind the destination square), and ok=false for a
// non-capturing move.
func captureTarget(b *board.Board, from, to board.Square) (board.Square, *board.Piece, bool) {
	if p := b.GetPieceAt(to); p != nil {
		return to, p, true
	}
	mover := b.GetPieceAt(from)
	if mover == nil || mover.Type != board.Pawn || to.X() == from.X() {
		return board.NoSquare, nil, false
	}
	ep, ok := b.EnPassantTarget()
	if !ok || ep != to {
		return board.NoSquare, nil, false
	}
	capSq := board.NewSquareXY(to.X(), from.Y())
	return capSq, b.GetPieceAt(capSq), true
}

// ProcessMove validates and, for a non-capturing move, commits one half-move; a capturing
// move instead opens DUEL_ALLOCATION without mutating the board (spec.md §4.6).
func (e *Engine) ProcessMove(ctx context.Context, sessionID string, from, to board.Square, promotion board.PieceType) (MoveResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireInitialized(); err != nil {
		return MoveResult{}, err
	}
	if e.phase == PhaseGameOver {
		return MoveResult{}, newError(GameOver, "game has ended: %v", e.b.Result())
	}
	if e.phase != PhaseNormalMove {
		return MoveResult{}, newError(WrongPhase, "cannot process move in phase %v", e.phase)
	}
	color, ok := e.sessionColor(sessionID)
	if !ok {
		return MoveResult{}, newError(NotYourSession, "session %v is not a participant", sessionID)
	}
	if color != e.b.Turn() {
		return MoveResult{}, newError(NotYourTurn, "it is %v's turn", e.b.Turn())
	}

	m, err := e.b.Classify(from, to, promotion)
	if err != nil {
		return MoveResult{}, fromBoardErr(err)
	}
	if !e.b.IsValidMove(from, to, promotion) {
		return MoveResult{}, newError(MoveLeavesKingInCheck, "move %v leaves own king in check", m)
	}

	if m.IsCapture() {
		_, defender, ok := captureTarget(e.b, from, to)
		if !ok {
			logw.Errorf(ctx, "invariant violation: capture move %v has no defender", m)
			panic("engine: capture move classified with no defender")
		}
		attacker := e.b.GetPieceAt(from)

		pending := duel.New(color, attacker, defender, from, to)
		pending.Promotion = promotion
		e.pendingDuel = pending
		e.phase = PhaseDuelAllocation

		logw.Infof(ctx, "Duel pending: %v attacks %v at %v", attacker, defender, to)
		return MoveResult{Success: true, TriggersDuel: true, MoveType: mapMoveKind(m.Type)}, nil
	}

	before := e.b.Position().Clone()
	mover := e.b.GetPieceAt(from)
	res, err := e.b.MakeMove(from, to, promotion)
	if err != nil {
		return MoveResult{}, fromBoardErr(err)
	}
	e.completeHalfMove(ctx, color, res.Move, res.Captured, res.Check, before, from, mover.ID, 0, nil, nil)

	return MoveResult{Success: true, TriggersDuel: false, MoveType: mapMoveKind(res.Move.Type)}, nil
}

// ProcessBPAllocation records one side's hidden allocation and, once both are present,
// resolves the duel (spec.md §4.4, §4.6).
func (e *Engine) ProcessBPAllocation(ctx context.Context, sessionID string, amount int) (AllocationResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireInitialized(); err != nil {
		return AllocationResult{}, err
	}
	if e.phase != PhaseDuelAllocation {
		return AllocationResult{}, newError(WrongPhase, "cannot allocate BP in phase %v", e.phase)
	}
	color, ok := e.sessionColor(sessionID)
	if !ok {
		return AllocationResult{}, newError(NotYourSession, "session %v is not a participant", sessionID)
	}

	pending := e.pendingDuel
	if _, err := pending.Allocate(color, amount, e.config.MaxBPAllocation, e.bpPool.BP(color)); err != nil {
		de, ok := err.(*duel.Error)
		if !ok {
			return AllocationResult{}, newError(InvalidBPAllocation, "%v", err)
		}
		return AllocationResult{}, fromDuelErr(de)
	}
	logw.Debugf(ctx, "Allocation recorded for %v: %v BP", color, amount)

	if !pending.Ready() {
		return AllocationResult{Success: true}, nil
	}

	e.resolveDuel(ctx, pending)
	return AllocationResult{Success: true}, nil
}

func (e *Engine) resolveDuel(ctx context.Context, pending *duel.Pending) {
	attackerAmount, _ := pending.AttackerAllocation.V()
	defenderAmount, _ := pending.DefenderAllocation.V()
	attackerCost := duel.Cost(pending.Attacker.Type.ClassicalValue(), attackerAmount)
	defenderCost := duel.Cost(pending.Defender.Type.ClassicalValue(), defenderAmount)
	e.bpPool.Spend(pending.AttackerColor, attackerCost)
	e.bpPool.Spend(pending.DefenderColor(), defenderCost)

	outcome := pending.Resolve()
	logw.Infof(ctx, "Duel resolved: %v (attacker %vBP vs defender %vBP)", outcome, attackerCost, defenderCost)

	switch outcome {
	case duel.AttackerWins:
		before := e.b.Position().Clone()
		mover := pending.Attacker
		res, err := e.b.MakeMove(pending.From, pending.To, pending.Promotion)
		if err != nil {
			logw.Errorf(ctx, "invariant violation: attacker-wins capture %v->%v failed to apply: %v", pending.From, pending.To, err)
			panic(err)
		}
		e.pendingDuel = nil
		e.phase = PhaseNormalMove
		e.completeHalfMove(ctx, pending.AttackerColor, res.Move, res.Captured, res.Check, before, pending.From, mover.ID, attackerCost+defenderCost, &outcome, nil)

	case duel.DefenderWinsOrTie:
		if pending.Attacker.Type.IsLongRange() {
			e.pendingRetreat = retreat.New(e.b, pending.Attacker, pending.From, pending.To)
			e.phase = PhaseTacticalRetreat
			logw.Infof(ctx, "Tactical retreat pending for %v", pending.Attacker)
			return
		}
		before := e.b.Position().Clone()
		mover := pending.Attacker
		if err := e.b.RelocatePiece(pending.From, pending.From, false); err != nil {
			logw.Errorf(ctx, "invariant violation: no-op relocation failed: %v", err)
			panic(err)
		}
		e.pendingDuel = nil
		e.phase = PhaseNormalMove
		check := e.b.IsChecked(pending.AttackerColor.Opponent())
		noop := board.Move{Type: board.Normal, From: pending.From, To: pending.From, Piece: mover.Type}
		e.completeHalfMove(ctx, pending.AttackerColor, noop, nil, check, before, board.NoSquare, mover.ID, attackerCost+defenderCost, &outcome, nil)
	}
}

// ProcessTacticalRetreat validates and commits the attacker's chosen retreat square
// (spec.md §4.5, §4.6).
func (e *Engine) ProcessTacticalRetreat(ctx context.Context, sessionID string, square board.Square, declaredCost int) (RetreatResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireInitialized(); err != nil {
		return RetreatResult{}, err
	}
	if e.phase != PhaseTacticalRetreat {
		return RetreatResult{}, newError(WrongPhase, "cannot process retreat in phase %v", e.phase)
	}
	color, ok := e.sessionColor(sessionID)
	if !ok {
		return RetreatResult{}, newError(NotYourSession, "session %v is not a participant", sessionID)
	}
	pending := e.pendingRetreat
	if color != pending.Piece.Color {
		return RetreatResult{}, newError(NotAParticipant, "session %v is not the retreating attacker", sessionID)
	}

	before := e.b.Position().Clone()
	mover := pending.Piece
	vacated := pending.OriginalSquare

	cost, err := pending.Commit(e.b, square, declaredCost, e.bpPool.BP(color))
	if err != nil {
		re, ok := err.(*retreat.Error)
		if !ok {
			return RetreatResult{}, newError(InvalidRetreatPosition, "%v", err)
		}
		return RetreatResult{}, fromRetreatErr(re)
	}
	e.bpPool.Spend(color, cost)
	e.pendingRetreat = nil
	e.phase = PhaseNormalMove

	check := e.b.IsChecked(color.Opponent())
	retreatSquare := square
	noop := board.Move{Type: board.Normal, From: vacated, To: square, Piece: mover.Type}
	e.completeHalfMove(ctx, color, noop, nil, check, before, vacated, mover.ID, cost, nil, &retreatSquare)

	logw.Infof(ctx, "Retreat committed: %v -> %v at cost %v", vacated, square, cost)
	return RetreatResult{Success: true}, nil
}

// completeHalfMove is the single place a half-move's BP regen, tactic diff, move record,
// and terminal-state check happen -- it's called at the point a half-move fully completes,
// whether immediately (no capture) or after a duel/retreat resolves (spec.md §9's
// "commit pending on mover's side when their half-move fully completes").
func (e *Engine) completeHalfMove(ctx context.Context, mover board.Color, m board.Move, captured *board.Piece, check bool, before *board.Position, vacated board.Square, movedID board.PieceID, bpSpent int, duelOutcome *duel.Outcome, retreatSquare *board.Square) {
	after := e.b.Position()
	opponent := mover.Opponent()

	beforeTactics := tactics.Detect(before, mover)
	afterTactics := tactics.Detect(after, mover)
	if vacated != board.NoSquare {
		afterTactics = append(afterTactics, tactics.DetectDiscovered(before, after, mover, vacated, movedID)...)
	}
	newTactics, _ := tactics.Diff(beforeTactics, afterTactics)

	regen := e.config.BaseBPRegen + len(newTactics)*e.config.BPBonusPerNewTactic
	if check && !before.IsChecked(opponent) {
		regen += e.config.BPBonusCheck
	}
	e.bpPool.AddPendingRegen(mover, regen)
	e.bpPool.CommitPendingRegen(mover)

	var capturedType *board.PieceType
	if captured != nil {
		t := captured.Type
		capturedType = &t
	}

	record := MoveRecord{
		Number:          e.b.MoveNumber() - 1,
		Color:           mover,
		Type:            mapMoveKind(m.Type),
		From:            m.From,
		To:              m.To,
		Piece:           m.Piece,
		CapturedPiece:   capturedType,
		Promotion:       m.Promotion,
		DuelOutcome:     duelOutcome,
		BPSpent:         bpSpent,
		RetreatSquare:   retreatSquare,
		RetreatCost:     bpSpent,
		CheckState:      check,
		TacticsDetected: newTactics,
	}
	e.history = append(e.history, record)

	e.checkTerminal(ctx)
}

// checkTerminal asks the board whether the side now to move has a legal reply; if not,
// it adjudicates CHECKMATE or STALEMATE (spec.md §4.6), including the checkmate-by-capture
// edge case (a successful duel capture that leaves the defender with no legal reply).
func (e *Engine) checkTerminal(ctx context.Context) {
	toMove := e.b.Turn()
	if e.b.HasLegalMove(toMove) {
		return
	}
	result := e.b.AdjudicateNoLegalMoves(toMove)
	e.phase = PhaseGameOver
	logw.Infof(ctx, "Game over: %v", result)
}

func (e *Engine) requireInitialized() error {
	if !e.initialized {
		return newError(NotInitialized, "engine not initialized")
	}
	return nil
}

// CreateStateView returns a role-filtered snapshot for sessionID (spec.md §6).
func (e *Engine) CreateStateView(sessionID string) (GameStateView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireInitialized(); err != nil {
		return GameStateView{}, err
	}
	role := e.sessionRole(sessionID)
	viewerColor, isPlayer := e.sessionColor(sessionID)

	var pieces []PieceView
	for _, c := range []board.Color{board.White, board.Black} {
		for _, p := range e.b.GetPiecesByColor(c) {
			pieces = append(pieces, PieceView{ID: p.ID, Type: p.Type, Color: p.Color, Square: p.Square})
		}
	}

	view := GameStateView{
		Role:        role,
		Pieces:      pieces,
		History:     append([]MoveRecord(nil), e.history...),
		Phase:       e.phase,
		Turn:        e.b.Turn(),
		Result:      e.b.Result(),
		TimeControl: e.config.TimeControl,
	}
	if isPlayer {
		view.OwnBP = e.bpPool.BP(viewerColor)
	}

	if e.pendingDuel != nil {
		pd := e.pendingDuel
		dv := &PendingDuelView{AttackerColor: pd.AttackerColor, From: pd.From, To: pd.To}
		if isPlayer {
			if v, ok := allocationFor(pd, viewerColor); ok {
				dv.OwnAllocation = &v
			}
			dv.OpponentAllocated = allocationPresent(pd, viewerColor.Opponent())
		}
		view.PendingDuel = dv
	}

	if e.pendingRetreat != nil {
		pr := e.pendingRetreat
		rv := &PendingRetreatView{PieceSquare: pr.Piece.Square}
		if isPlayer && viewerColor == pr.Piece.Color {
			for _, o := range pr.Options {
				rv.Options = append(rv.Options, RetreatOptionView{Square: o.Square, Cost: o.Cost})
			}
		}
		view.PendingRetreat = rv
	}

	return view, nil
}

func allocationFor(pd *duel.Pending, c board.Color) (int, bool) {
	if c == pd.AttackerColor {
		return pd.AttackerAllocation.V()
	}
	return pd.DefenderAllocation.V()
}

func allocationPresent(pd *duel.Pending, c board.Color) bool {
	_, ok := allocationFor(pd, c)
	return ok
}
