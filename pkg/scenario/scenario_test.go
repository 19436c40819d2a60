package scenario_test

import (
	"context"
	"testing"

	"github.com/gambitchess/gambit/pkg/board"
	"github.com/gambitchess/gambit/pkg/engine"
	"github.com/gambitchess/gambit/pkg/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoolsMate(t *testing.T) {
	ctx := context.Background()
	e, err := scenario.FoolsMate(ctx)
	require.NoError(t, err)

	view, err := e.CreateStateView(scenario.WhiteSession)
	require.NoError(t, err)
	assert.Equal(t, engine.PhaseGameOver, view.Phase)
	assert.Equal(t, board.Checkmate, view.Result.Reason)
	assert.Equal(t, board.BlackWins, view.Result.Outcome)
}

func TestStalemate(t *testing.T) {
	ctx := context.Background()
	e, err := scenario.Stalemate(ctx)
	require.NoError(t, err)

	view, err := e.CreateStateView(scenario.WhiteSession)
	require.NoError(t, err)
	assert.Equal(t, engine.PhaseGameOver, view.Phase)
	assert.Equal(t, board.Stalemate, view.Result.Reason)
}

func TestCaptureDuelAttackerWins(t *testing.T) {
	ctx := context.Background()
	e, err := scenario.CaptureDuelAttackerWins(ctx)
	require.NoError(t, err)

	view, err := e.CreateStateView(scenario.WhiteSession)
	require.NoError(t, err)
	assert.Equal(t, engine.PhaseNormalMove, view.Phase)
	assert.Equal(t, board.Black, view.Turn)
}

func TestCaptureDuelDefenderWinsNonLongRange(t *testing.T) {
	ctx := context.Background()
	e, err := scenario.CaptureDuelDefenderWinsNonLongRange(ctx)
	require.NoError(t, err)

	view, err := e.CreateStateView(scenario.WhiteSession)
	require.NoError(t, err)
	assert.Equal(t, engine.PhaseNormalMove, view.Phase)
}

func TestCaptureDuelDefenderWinsLongRange(t *testing.T) {
	ctx := context.Background()
	e, err := scenario.CaptureDuelDefenderWinsLongRange(ctx)
	require.NoError(t, err)

	view, err := e.CreateStateView(scenario.WhiteSession)
	require.NoError(t, err)
	require.Equal(t, engine.PhaseTacticalRetreat, view.Phase)
	require.NotEmpty(t, view.PendingRetreat.Options)
}

func TestRetreatCostMismatch(t *testing.T) {
	ctx := context.Background()
	e, err := scenario.RetreatCostMismatch(ctx)
	require.NoError(t, err)

	view, err := e.CreateStateView(scenario.WhiteSession)
	require.NoError(t, err)

	var square string
	var cost int
	for _, o := range view.PendingRetreat.Options {
		if o.Cost > 0 {
			cost = o.Cost
			square = o.Square.String()
			break
		}
	}
	require.NotZero(t, cost)

	err = scenario.Play(ctx, e, []scenario.Step{
		{Session: scenario.WhiteSession, Retreat: &scenario.RetreatStep{Square: square, Cost: cost - 1}},
	})
	require.Error(t, err)
}

func TestCloneIsIndependent(t *testing.T) {
	ctx := context.Background()
	e, err := scenario.CaptureDuelAttackerWins(ctx)
	require.NoError(t, err)

	clone, err := scenario.Clone(e)
	require.NoError(t, err)

	_, err = clone.ProcessMove(ctx, scenario.BlackSession, mustSquare(t, "b8"), mustSquare(t, "c6"), board.NoPieceType)
	require.NoError(t, err)

	origView, err := e.CreateStateView(scenario.WhiteSession)
	require.NoError(t, err)
	cloneView, err := clone.CreateStateView(scenario.WhiteSession)
	require.NoError(t, err)
	assert.Len(t, origView.History, 3)
	assert.Len(t, cloneView.History, 4)
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	ctx := context.Background()
	e, err := scenario.FoolsMate(ctx)
	require.NoError(t, err)

	data, err := scenario.Serialize(e)
	require.NoError(t, err)

	restored, err := scenario.Deserialize(data)
	require.NoError(t, err)

	view, err := restored.CreateStateView(scenario.WhiteSession)
	require.NoError(t, err)
	assert.Equal(t, engine.PhaseGameOver, view.Phase)
}

func mustSquare(t *testing.T, s string) board.Square {
	t.Helper()
	sq, err := board.ParseSquareStr(s)
	require.NoError(t, err)
	return sq
}
