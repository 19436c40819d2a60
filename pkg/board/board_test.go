package board_test

import (
	"testing"

	"github.com/gambitchess/gambit/pkg/board"
	"github.com/gambitchess/gambit/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInitialBoard(t *testing.T) *board.Board {
	t.Helper()
	pos, turn, _, fullmove, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	return board.NewBoard(pos, fen.MoveNumber(turn, fullmove), board.DefaultDrawRules())
}

func TestBoard_InitialPosition(t *testing.T) {
	b := newInitialBoard(t)
	assert.Equal(t, board.White, b.Turn())
	assert.Equal(t, 1, b.MoveNumber())
	assert.False(t, b.Result().IsOver())
}

func TestBoard_MakeMove_PawnPush(t *testing.T) {
	b := newInitialBoard(t)

	from, _ := board.ParseSquareStr("e2")
	to, _ := board.ParseSquareStr("e4")

	require.True(t, b.IsValidMove(from, to, board.NoPieceType))
	res, err := b.MakeMove(from, to, board.NoPieceType)
	require.NoError(t, err)
	assert.Equal(t, board.Jump, res.Move.Type)
	assert.Nil(t, res.Captured)
	assert.Equal(t, board.Black, b.Turn())
	assert.Equal(t, 2, b.MoveNumber())

	ep, ok := b.EnPassantTarget()
	require.True(t, ok)
	want, _ := board.ParseSquareStr("e3")
	assert.Equal(t, want, ep)
}

func TestBoard_MakeMove_IllegalPieceOwner(t *testing.T) {
	b := newInitialBoard(t)
	from, _ := board.ParseSquareStr("e7") // black pawn, white to move
	to, _ := board.ParseSquareStr("e5")

	_, err := b.MakeMove(from, to, board.NoPieceType)
	assert.ErrorIs(t, err, board.ErrWrongPieceOwner)
}

func TestBoard_EnPassantCapture(t *testing.T) {
	b := newInitialBoard(t)

	moves := []string{"e2e4", "a7a6", "e4e5", "d7d5"}
	for _, s := range moves {
		m, err := board.ParseMove(s)
		require.NoError(t, err)
		_, err = b.MakeMove(m.From, m.To, board.NoPieceType)
		require.NoError(t, err, s)
	}

	from, _ := board.ParseSquareStr("e5")
	to, _ := board.ParseSquareStr("d6")
	require.True(t, b.IsValidMove(from, to, board.NoPieceType))

	res, err := b.MakeMove(from, to, board.NoPieceType)
	require.NoError(t, err)
	assert.Equal(t, board.EnPassant, res.Move.Type)
	require.NotNil(t, res.Captured)
	assert.Equal(t, board.Pawn, res.Captured.Type)

	capturedSq, _ := board.ParseSquareStr("d5")
	assert.Nil(t, b.GetPieceAt(capturedSq))
}

func TestBoard_CastlingKingSide(t *testing.T) {
	pos, turn, _, fullmove, err := fen.Decode("rnbqk2r/pppp1ppp/5n2/2b1p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4")
	require.NoError(t, err)
	b := board.NewBoard(pos, fen.MoveNumber(turn, fullmove), board.DefaultDrawRules())

	from, _ := board.ParseSquareStr("e1")
	to, _ := board.ParseSquareStr("g1")
	require.True(t, b.IsValidMove(from, to, board.NoPieceType))

	res, err := b.MakeMove(from, to, board.NoPieceType)
	require.NoError(t, err)
	assert.Equal(t, board.KingSideCastle, res.Move.Type)

	rookSq, _ := board.ParseSquareStr("f1")
	rook := b.GetPieceAt(rookSq)
	require.NotNil(t, rook)
	assert.Equal(t, board.Rook, rook.Type)
}

func TestBoard_CastlingBlockedByCheck(t *testing.T) {
	// White king on e1, rook on h1, black rook checks the f1 crossing square.
	placements := []board.Placement{
		{Square: square(4, 0), Color: board.White, Type: board.King},
		{Square: square(7, 0), Color: board.White, Type: board.Rook},
		{Square: square(5, 7), Color: board.Black, Type: board.Rook},
		{Square: square(4, 7), Color: board.Black, Type: board.King},
	}
	pos, err := board.NewPosition(placements, board.NoSquare)
	require.NoError(t, err)
	b := board.NewBoard(pos, 1, board.DefaultDrawRules())

	from, to := square(4, 0), square(6, 0)
	assert.False(t, b.IsValidMove(from, to, board.NoPieceType))
}

func TestBoard_PromotionDefaultsToQueen(t *testing.T) {
	placements := []board.Placement{
		{Square: square(0, 6), Color: board.White, Type: board.Pawn},
		{Square: square(4, 0), Color: board.White, Type: board.King},
		{Square: square(4, 7), Color: board.Black, Type: board.King},
	}
	pos, err := board.NewPosition(placements, board.NoSquare)
	require.NoError(t, err)
	b := board.NewBoard(pos, 1, board.DefaultDrawRules())

	from, to := square(0, 6), square(0, 7)
	res, err := b.MakeMove(from, to, board.NoPieceType)
	require.NoError(t, err)
	assert.Equal(t, board.Promotion, res.Move.Type)
	assert.Equal(t, board.Queen, res.Move.Promotion)

	promoted := b.GetPieceAt(to)
	require.NotNil(t, promoted)
	assert.Equal(t, board.Queen, promoted.Type)
}

func TestBoard_FoolsMateCheckmate(t *testing.T) {
	b := newInitialBoard(t)

	for _, s := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		m, err := board.ParseMove(s)
		require.NoError(t, err)
		_, err = b.MakeMove(m.From, m.To, board.NoPieceType)
		require.NoError(t, err, s)
	}

	assert.True(t, b.IsChecked(board.White))
	assert.False(t, b.HasLegalMove(board.White))

	result := b.AdjudicateNoLegalMoves(board.White)
	assert.Equal(t, board.Checkmate, result.Reason)
	assert.Equal(t, board.BlackWins, result.Outcome)
}

func TestBoard_Stalemate(t *testing.T) {
	pos, err := board.NewPosition([]board.Placement{
		{Square: square(0, 7), Color: board.Black, Type: board.King}, // a8
		{Square: square(2, 5), Color: board.White, Type: board.King}, // c6
		{Square: square(2, 6), Color: board.White, Type: board.Queen},
	}, board.NoSquare)
	require.NoError(t, err)

	b := board.NewBoard(pos, 1, board.DefaultDrawRules())
	from, to := square(2, 5), square(1, 5) // c6-b6
	_, err = b.MakeMove(from, to, board.NoPieceType)
	require.NoError(t, err)

	assert.False(t, b.IsChecked(board.Black))
	assert.False(t, b.HasLegalMove(board.Black))

	result := b.AdjudicateNoLegalMoves(board.Black)
	assert.Equal(t, board.Stalemate, result.Reason)
	assert.Equal(t, board.Draw, result.Outcome)
}

func TestBoard_Clone_Independent(t *testing.T) {
	b := newInitialBoard(t)
	clone := b.Clone()

	m, _ := board.ParseMove("e2e4")
	_, err := b.MakeMove(m.From, m.To, board.NoPieceType)
	require.NoError(t, err)

	assert.Equal(t, 1, clone.MoveNumber())
	assert.Equal(t, 2, b.MoveNumber())
	assert.NotNil(t, clone.GetPieceAt(m.From))
}

func TestBoard_SnapshotRestore_PreservesCapturedPieceIDAndMoveHistory(t *testing.T) {
	b := newInitialBoard(t)

	e2, e4 := square(4, 1), square(4, 3)
	_, err := b.MakeMove(e2, e4, board.NoPieceType)
	require.NoError(t, err)
	d7, d5 := square(3, 6), square(3, 4)
	_, err = b.MakeMove(d7, d5, board.NoPieceType)
	require.NoError(t, err)

	captured := b.GetPieceAt(d5)
	require.NotNil(t, captured)
	res, err := b.MakeMove(e4, d5, board.NoPieceType)
	require.NoError(t, err)
	require.NotNil(t, res.Captured)
	capturedID := res.Captured.ID

	before := b.Position().AllPieces()

	pieces, enpassant, moveNumber, result, noprogress := b.Snapshot()
	restored, err := board.RestoreBoard(pieces, enpassant, moveNumber, result, noprogress, board.DefaultDrawRules())
	require.NoError(t, err)

	after := restored.Position().AllPieces()
	require.Len(t, after, len(before))
	for i, pc := range before {
		assert.Equal(t, pc.ID, after[i].ID)
		assert.Equal(t, pc.Type, after[i].Type)
		assert.Equal(t, pc.Color, after[i].Color)
		assert.Equal(t, pc.Square, after[i].Square)
		assert.Equal(t, pc.HasMoved, after[i].HasMoved)
		assert.Equal(t, pc.FirstMoveTurn, after[i].FirstMoveTurn)
		assert.Equal(t, pc.LastMoveTurn, after[i].LastMoveTurn)
	}

	var foundCaptured bool
	for _, pc := range after {
		if pc.ID == capturedID {
			foundCaptured = true
			assert.True(t, pc.Captured())
		}
	}
	assert.True(t, foundCaptured, "captured piece must retain its id across a snapshot/restore round trip")

	movedPawn := restored.GetPieceAt(d5)
	require.NotNil(t, movedPawn)
	assert.True(t, movedPawn.HasMoved)
	assert.Equal(t, b.MoveNumber(), restored.MoveNumber())
	assert.Equal(t, b.Result(), restored.Result())
}

func square(x, y int) board.Square {
	return board.NewSquareXY(x, y)
}
