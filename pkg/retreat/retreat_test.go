package retreat_test

import (
	"testing"

	"github.com/gambitchess/gambit/pkg/board"
	"github.com/gambitchess/gambit/pkg/retreat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sq(x, y int) board.Square { return board.NewSquareXY(x, y) }

func newTestBoard(t *testing.T, placements []board.Placement) *board.Board {
	t.Helper()
	pos, err := board.NewPosition(placements, board.NoSquare)
	require.NoError(t, err)
	return board.NewBoard(pos, 1, board.DefaultDrawRules())
}

func TestRetreat_RookAlongAttemptedRay(t *testing.T) {
	// White rook on a1 attempted to capture on a5; a2-a4 are empty.
	b := newTestBoard(t, []board.Placement{
		{Square: sq(0, 0), Color: board.White, Type: board.Rook},
		{Square: sq(0, 4), Color: board.Black, Type: board.Pawn},
		{Square: sq(7, 0), Color: board.White, Type: board.King},
		{Square: sq(7, 7), Color: board.Black, Type: board.King},
	})
	rook := b.GetPieceAt(sq(0, 0))
	require.NotNil(t, rook)

	p := retreat.New(b, rook, sq(0, 0), sq(0, 4))

	want := map[board.Square]int{
		sq(0, 0): 0,
		sq(0, 1): 1,
		sq(0, 2): 2,
		sq(0, 3): 3,
	}
	assert.Len(t, p.Options, len(want))
	for s, cost := range want {
		opt, ok := p.Find(s)
		require.True(t, ok, "missing option %v", s)
		assert.Equal(t, cost, opt.Cost)
	}
}

func TestRetreat_BlockedRayStopsEnumeration(t *testing.T) {
	// White rook a1, own pawn on a3 blocks further retreat beyond a2.
	b := newTestBoard(t, []board.Placement{
		{Square: sq(0, 0), Color: board.White, Type: board.Rook},
		{Square: sq(0, 2), Color: board.White, Type: board.Pawn},
		{Square: sq(0, 4), Color: board.Black, Type: board.Pawn},
		{Square: sq(7, 0), Color: board.White, Type: board.King},
		{Square: sq(7, 7), Color: board.Black, Type: board.King},
	})
	rook := b.GetPieceAt(sq(0, 0))
	p := retreat.New(b, rook, sq(0, 0), sq(0, 4))

	_, ok := p.Find(sq(0, 2))
	assert.False(t, ok)
	_, ok = p.Find(sq(0, 1))
	assert.True(t, ok)
}

func TestRetreat_QueenExtraDirections(t *testing.T) {
	// White queen on d4 attempted capture along the file to d7; should also get
	// perpendicular-ray options (rank/diagonals) from d4.
	b := newTestBoard(t, []board.Placement{
		{Square: sq(3, 3), Color: board.White, Type: board.Queen},
		{Square: sq(3, 6), Color: board.Black, Type: board.Pawn},
		{Square: sq(7, 0), Color: board.White, Type: board.King},
		{Square: sq(7, 7), Color: board.Black, Type: board.King},
	})
	queen := b.GetPieceAt(sq(3, 3))
	p := retreat.New(b, queen, sq(3, 3), sq(3, 6))

	// Along-file options d5, d6 plus origin.
	for _, s := range []board.Square{sq(3, 3), sq(3, 4), sq(3, 5)} {
		_, ok := p.Find(s)
		assert.True(t, ok, "missing along-ray option %v", s)
	}
	// Perpendicular rank option c4/e4 should also be present.
	_, ok := p.Find(sq(2, 3))
	assert.True(t, ok, "missing perpendicular option c4")
}

func TestRetreat_BishopNoExtraDirections(t *testing.T) {
	// Bishop gets no perpendicular options -- only the attempted ray.
	b := newTestBoard(t, []board.Placement{
		{Square: sq(0, 0), Color: board.White, Type: board.Bishop},
		{Square: sq(3, 3), Color: board.Black, Type: board.Pawn},
		{Square: sq(7, 0), Color: board.White, Type: board.King},
		{Square: sq(7, 7), Color: board.Black, Type: board.King},
	})
	bishop := b.GetPieceAt(sq(0, 0))
	p := retreat.New(b, bishop, sq(0, 0), sq(3, 3))

	// Only origin, (1,1), (2,2) -- no rank/file options from a1.
	assert.Len(t, p.Options, 3)
}

func TestPending_CommitSuccess(t *testing.T) {
	b := newTestBoard(t, []board.Placement{
		{Square: sq(0, 0), Color: board.White, Type: board.Rook},
		{Square: sq(0, 4), Color: board.Black, Type: board.Pawn},
		{Square: sq(7, 0), Color: board.White, Type: board.King},
		{Square: sq(7, 7), Color: board.Black, Type: board.King},
	})
	rook := b.GetPieceAt(sq(0, 0))
	p := retreat.New(b, rook, sq(0, 0), sq(0, 4))

	cost, err := p.Commit(b, sq(0, 2), 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, cost)
	assert.NotNil(t, b.GetPieceAt(sq(0, 2)))
	assert.Nil(t, b.GetPieceAt(sq(0, 0)))
}

func TestPending_CommitToOriginalSquareStillSetsHasMoved(t *testing.T) {
	// A retreat that lands back on the attacker's own original square (the cost-0 option)
	// is still a real half-move: spec.md:151's "set hasMoved" applies unconditionally.
	b := newTestBoard(t, []board.Placement{
		{Square: sq(0, 0), Color: board.White, Type: board.Rook},
		{Square: sq(0, 4), Color: board.Black, Type: board.Pawn},
		{Square: sq(7, 0), Color: board.White, Type: board.King},
		{Square: sq(7, 7), Color: board.Black, Type: board.King},
	})
	rook := b.GetPieceAt(sq(0, 0))
	require.False(t, rook.HasMoved)
	p := retreat.New(b, rook, sq(0, 0), sq(0, 4))

	cost, err := p.Commit(b, sq(0, 0), 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, cost)
	assert.True(t, rook.HasMoved)
	assert.NotZero(t, rook.FirstMoveTurn)
	assert.NotZero(t, rook.LastMoveTurn)
}

func TestPending_CommitRejectsCostMismatch(t *testing.T) {
	b := newTestBoard(t, []board.Placement{
		{Square: sq(0, 0), Color: board.White, Type: board.Rook},
		{Square: sq(0, 4), Color: board.Black, Type: board.Pawn},
		{Square: sq(7, 0), Color: board.White, Type: board.King},
		{Square: sq(7, 7), Color: board.Black, Type: board.King},
	})
	rook := b.GetPieceAt(sq(0, 0))
	p := retreat.New(b, rook, sq(0, 0), sq(0, 4))

	_, err := p.Commit(b, sq(0, 2), 99, 10)
	require.Error(t, err)
	var re *retreat.Error
	require.ErrorAs(t, err, &re)
	assert.Equal(t, retreat.BPCostMismatch, re.Kind)
}

func TestPending_CommitRejectsInvalidSquare(t *testing.T) {
	b := newTestBoard(t, []board.Placement{
		{Square: sq(0, 0), Color: board.White, Type: board.Rook},
		{Square: sq(0, 4), Color: board.Black, Type: board.Pawn},
		{Square: sq(7, 0), Color: board.White, Type: board.King},
		{Square: sq(7, 7), Color: board.Black, Type: board.King},
	})
	rook := b.GetPieceAt(sq(0, 0))
	p := retreat.New(b, rook, sq(0, 0), sq(0, 4))

	_, err := p.Commit(b, sq(5, 5), 0, 10)
	require.Error(t, err)
	var re *retreat.Error
	require.ErrorAs(t, err, &re)
	assert.Equal(t, retreat.InvalidRetreatPosition, re.Kind)
}

func TestPending_CommitRejectsInsufficientBP(t *testing.T) {
	b := newTestBoard(t, []board.Placement{
		{Square: sq(0, 0), Color: board.White, Type: board.Rook},
		{Square: sq(0, 4), Color: board.Black, Type: board.Pawn},
		{Square: sq(7, 0), Color: board.White, Type: board.King},
		{Square: sq(7, 7), Color: board.Black, Type: board.King},
	})
	rook := b.GetPieceAt(sq(0, 0))
	p := retreat.New(b, rook, sq(0, 0), sq(0, 4))

	_, err := p.Commit(b, sq(0, 3), 3, 2)
	require.Error(t, err)
	var re *retreat.Error
	require.ErrorAs(t, err, &re)
	assert.Equal(t, retreat.InsufficientBP, re.Kind)
}
