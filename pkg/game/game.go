// Package game defines the abstract two-player Game interface consumed by
// the MCTS search core, and implements it for Omega: stone placement on a
// hexagonal board scored by same-colour connected-group products.
package game

// Move is a single placement: player who placed it, the piece (colour)
// placed, and the board position. Move index is a bijection of (piece, pos).
type Move struct {
	Player int
	Piece  int
	Pos    int
}

// Game is the mutable game-state abstraction the MCTS core depends on. All
// positions are addressed by a move index m = toMoveIdx(piece, pos) in
// [0, TotalValidMoveNum()).
type Game interface {
	// PieceNum is the number of distinct piece kinds (2 for Omega).
	PieceNum() int

	// ValidMoves returns the legal moves at the current state. The slice is
	// owned by the Game and is invalidated by the next Update/Undo call.
	ValidMoves() []Move

	// CurrentDepth is the number of moves applied since the start of the
	// game, monotone with Update/Undo.
	CurrentDepth() int

	// NextPlayer returns the player (0 or 1) to move next.
	NextPlayer() int

	ToMoveIdx(piece, pos int) int
	ToPos(m int) int
	ToPiece(m int) int

	// Update applies move index m. Must be a currently valid move.
	Update(m int)
	// Undo reverses the most recent Update. Stack-structured.
	Undo()

	// End reports whether the state is terminal, or the configured maximum
	// depth has been reached (guards against infinite transposition loops).
	End() bool
	// Outcome is defined only when End() holds: 1 = player 0 wins, 0 =
	// player 1 wins, 0.5 = draw.
	Outcome() float64

	// SelectRoot restores the state to the search root recorded by the
	// driver's last checkpoint.
	SelectRoot()
	// Checkpoint records the current state as the new search root for a
	// subsequent SelectRoot.
	Checkpoint()

	// AvailablePieces are the piece kinds placeable from the current state.
	AvailablePieces() []int
	// PieceMaxMoveNum is the number of board positions a given piece kind
	// could ever occupy; shapes RAVE's AMAF tables.
	PieceMaxMoveNum(piece int) int

	// LastMoveIdx is the most recently applied move; undefined at depth 0.
	LastMoveIdx() int
	// MovesSince returns, in play order, the moves applied between depth
	// `from` (inclusive) and the current depth (exclusive).
	MovesSince(from int) []Move

	// TotalValidMoveNum is the upper bound M on move indices, sizing the
	// Zobrist tables and MAST's per-depth score rows.
	TotalValidMoveNum() int
	// MaxValidMoveNum is the maximum number of legal moves at any one
	// state.
	MaxValidMoveNum() int
	// MaxTurnNum is the maximum number of plies a game can run for.
	MaxTurnNum() int
	// NumExpectedMoves estimates the remaining moves in the game, used by
	// the scheduler to allocate per-move time budgets.
	NumExpectedMoves() int
}
