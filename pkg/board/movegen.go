package board

// candidateMove classifies and validates the geometry/occupancy of a from->to move,
// without regard to whether it leaves the mover's own king in check (that's the caller's
// job, via a trial-apply-and-check-in-check, since it requires mutating a clone). This
// mirrors the source's split between pseudo-legal generation and full legality.
func candidateMove(pos *Position, turn Color, from, to Square, promotion PieceType) (Move, error) {
	if !from.IsValid() || !to.IsValid() {
		return Move{}, ErrInvalidPosition
	}
	piece := pos.PieceAt(from)
	if piece == nil {
		return Move{}, ErrNoPieceAtSource
	}
	if piece.Color != turn {
		return Move{}, ErrWrongPieceOwner
	}
	if from == to {
		return Move{}, ErrIllegalMove
	}
	target := pos.PieceAt(to)
	if target != nil && target.Color == turn {
		return Move{}, ErrIllegalMove
	}

	switch piece.Type {
	case Pawn:
		return pawnMove(pos, turn, from, to, promotion)
	case Knight:
		if !containsOffset(knightOffsets, from, to) {
			return Move{}, ErrIllegalMove
		}
		return captureOrNormal(piece, from, to, target), nil
	case King:
		dx := to.X() - from.X()
		dy := to.Y() - from.Y()
		if dy == 0 && (dx == 2 || dx == -2) {
			return castleMove(pos, turn, from, to)
		}
		if !containsOffset(kingOffsets, from, to) {
			return Move{}, ErrIllegalMove
		}
		return captureOrNormal(piece, from, to, target), nil
	case Bishop, Rook, Queen:
		return sliderMove(pos, piece, from, to, target)
	default:
		return Move{}, ErrIllegalMove
	}
}

func captureOrNormal(piece *Piece, from, to Square, target *Piece) Move {
	if target != nil {
		return Move{Type: Capture, From: from, To: to, Piece: piece.Type, Capture: target.Type}
	}
	return Move{Type: Normal, From: from, To: to, Piece: piece.Type}
}

func sliderMove(pos *Position, piece *Piece, from, to Square, target *Piece) (Move, error) {
	dx := to.X() - from.X()
	dy := to.Y() - from.Y()
	switch piece.Type {
	case Bishop:
		if dx == 0 || dy == 0 || abs(dx) != abs(dy) {
			return Move{}, ErrIllegalMove
		}
	case Rook:
		if dx != 0 && dy != 0 {
			return Move{}, ErrIllegalMove
		}
	case Queen:
		if dx != 0 && dy != 0 && abs(dx) != abs(dy) {
			return Move{}, ErrIllegalMove
		}
	}

	dir, ok := RayDirection(from, to)
	if !ok {
		return Move{}, ErrIllegalMove
	}
	for _, sq := range Walk(from, dir) {
		if sq == to {
			return captureOrNormal(piece, from, to, target), nil
		}
		if !pos.IsEmpty(sq) {
			return Move{}, ErrIllegalMove
		}
	}
	return Move{}, ErrIllegalMove
}

func pawnMove(pos *Position, turn Color, from, to Square, promotion PieceType) (Move, error) {
	dir := 1
	startRank, lastRank := Rank2, Rank8
	if turn == Black {
		dir = -1
		startRank, lastRank = Rank7, Rank1
	}

	dx := to.X() - from.X()
	dy := to.Y() - from.Y()
	target := pos.PieceAt(to)

	var m Move
	switch {
	case dx == 0 && dy == dir && target == nil:
		m = Move{Type: Push, From: from, To: to, Piece: Pawn}

	case dx == 0 && dy == 2*dir && from.Rank() == startRank && target == nil:
		mid := NewSquareXY(from.X(), from.Y()+dir)
		if !pos.IsEmpty(mid) {
			return Move{}, ErrIllegalMove
		}
		m = Move{Type: Jump, From: from, To: to, Piece: Pawn}

	case (dx == 1 || dx == -1) && dy == dir && target != nil && target.Color != turn:
		m = Move{Type: Capture, From: from, To: to, Piece: Pawn, Capture: target.Type}

	case (dx == 1 || dx == -1) && dy == dir && target == nil:
		ep, ok := pos.EnPassant()
		if !ok || to != ep {
			return Move{}, ErrIllegalMove
		}
		m = Move{Type: EnPassant, From: from, To: to, Piece: Pawn, Capture: Pawn}

	default:
		return Move{}, ErrIllegalMove
	}

	if to.Rank() != lastRank {
		return m, nil
	}

	// Promotion: defaults to Queen absent an explicit (legal) choice (spec.md §4.1).
	promo := promotion
	if !promo.IsValid() || promo == Pawn || promo == King {
		promo = Queen
	}
	m.Promotion = promo
	if m.Type == Capture {
		m.Type = CapturePromotion
	} else {
		m.Type = Promotion
	}
	return m, nil
}

func castleMove(pos *Position, turn Color, from, to Square) (Move, error) {
	backRank := Rank1
	y := 0
	if turn == Black {
		backRank = Rank8
		y = 7
	}
	if from != NewSquare(FileE, backRank) {
		return Move{}, ErrIllegalMove
	}

	dx := to.X() - from.X()
	var side Castling
	var mtype MoveType
	var rookFrom Square
	var step int
	switch dx {
	case 2:
		side, mtype, rookFrom, step = kingSideCastleFor(turn), KingSideCastle, NewSquareXY(7, y), 1
	case -2:
		side, mtype, rookFrom, step = queenSideCastleFor(turn), QueenSideCastle, NewSquareXY(0, y), -1
	default:
		return Move{}, ErrIllegalMove
	}

	if pos.CastlingRights(turn)&side == 0 {
		return Move{}, ErrIllegalMove
	}
	for x := from.X() + step; x != rookFrom.X(); x += step {
		if !pos.IsEmpty(NewSquareXY(x, y)) {
			return Move{}, ErrIllegalMove
		}
	}

	opp := turn.Opponent()
	mid := NewSquareXY(from.X()+step, y)
	if pos.IsAttacked(opp, from) || pos.IsAttacked(opp, mid) || pos.IsAttacked(opp, to) {
		return Move{}, ErrIllegalMove
	}

	return Move{Type: mtype, From: from, To: to, Piece: King}, nil
}

func kingSideCastleFor(c Color) Castling {
	if c == White {
		return WhiteKingSideCastle
	}
	return BlackKingSideCastle
}

func queenSideCastleFor(c Color) Castling {
	if c == White {
		return WhiteQueenSideCastle
	}
	return BlackQueenSideCastle
}

// applyMove mutates pos in place to reflect m, assumed already validated by candidateMove,
// and returns the captured piece, if any. moveNumber is the half-move number at which this
// move executes, recorded on the moved (and, for castling, rook) pieces.
func applyMove(pos *Position, turn Color, m Move, moveNumber int) *Piece {
	mover := pos.PieceAt(m.From)

	var captured *Piece
	switch m.Type {
	case EnPassant:
		epSq := NewSquareXY(m.To.X(), m.From.Y())
		captured = pos.grid[epSq]
		pos.grid[epSq] = nil
		if captured != nil {
			captured.Square = NoSquare
		}
	default:
		if m.IsCapture() {
			captured = pos.grid[m.To]
			if captured != nil {
				captured.Square = NoSquare
			}
		}
	}

	pos.grid[m.From] = nil
	pos.grid[m.To] = mover
	mover.Square = m.To
	mover.HasMoved = true
	mover.LastMoveTurn = moveNumber
	if mover.FirstMoveTurn == 0 {
		mover.FirstMoveTurn = moveNumber
	}

	if m.Promotion.IsValid() {
		mover.Type = m.Promotion
	}

	if m.Type == KingSideCastle || m.Type == QueenSideCastle {
		y := m.From.Y()
		rookFrom, rookTo := NewSquareXY(7, y), NewSquareXY(5, y)
		if m.Type == QueenSideCastle {
			rookFrom, rookTo = NewSquareXY(0, y), NewSquareXY(3, y)
		}
		rook := pos.grid[rookFrom]
		pos.grid[rookFrom] = nil
		pos.grid[rookTo] = rook
		if rook != nil {
			rook.Square = rookTo
			rook.HasMoved = true
			rook.LastMoveTurn = moveNumber
			if rook.FirstMoveTurn == 0 {
				rook.FirstMoveTurn = moveNumber
			}
		}
	}

	if m.Type == Jump {
		pos.enpassant = NewSquareXY(m.From.X(), (m.From.Y()+m.To.Y())/2)
	} else {
		pos.enpassant = NoSquare
	}

	return captured
}
