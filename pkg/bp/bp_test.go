package bp_test

import (
	"testing"

	"github.com/gambitchess/gambit/pkg/bp"
	"github.com/gambitchess/gambit/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestPool_InitialClamp(t *testing.T) {
	p := bp.NewPool(39, 39)
	assert.Equal(t, 39, p.BP(board.White))
	assert.Equal(t, 39, p.BP(board.Black))
}

func TestPool_AddClampsAtBounds(t *testing.T) {
	p := bp.NewPool(0, 10)
	p.Add(board.White, -5)
	assert.Equal(t, 0, p.BP(board.White))

	p.Add(board.White, 50)
	assert.Equal(t, 10, p.BP(board.White))
}

func TestPool_SpendRejectsInsufficientBP(t *testing.T) {
	p := bp.NewPool(5, 39)
	assert.False(t, p.Spend(board.White, 6))
	assert.Equal(t, 5, p.BP(board.White))

	assert.True(t, p.Spend(board.White, 5))
	assert.Equal(t, 0, p.BP(board.White))
}

func TestPool_PendingRegenCommit(t *testing.T) {
	p := bp.NewPool(10, 39)
	p.AddPendingRegen(board.White, 1)
	p.AddPendingRegen(board.White, 2)
	assert.Equal(t, 3, p.Pending(board.White))
	assert.Equal(t, 10, p.BP(board.White)) // not yet committed

	p.CommitPendingRegen(board.White)
	assert.Equal(t, 13, p.BP(board.White))
	assert.Equal(t, 0, p.Pending(board.White))
}

func TestPool_SnapshotRoundTrip(t *testing.T) {
	p := bp.NewPool(20, 39)
	p.Add(board.Black, -4)
	p.AddPendingRegen(board.White, 1)

	snap := p.Snapshot()
	restored := bp.FromSnapshot(snap)

	assert.Equal(t, p.BP(board.White), restored.BP(board.White))
	assert.Equal(t, p.BP(board.Black), restored.BP(board.Black))
	assert.Equal(t, p.Pending(board.White), restored.Pending(board.White))
}
