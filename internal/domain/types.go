package domain

// GenerateMode selects what kind of board the generator may return.
type GenerateMode int

const (
	// GenerateSolvable reshuffles until the parity check passes.
	GenerateSolvable GenerateMode = iota
	// GenerateAny returns the first shuffle, solvable or not.
	GenerateAny
)

// SolveOutcome is the terminal state of a supervised solve attempt.
type SolveOutcome int

const (
	OutcomeSolved SolveOutcome = iota
	OutcomeUnsolvable
	OutcomeTimeout
	OutcomeAborted
	OutcomeExhausted
	// OutcomeRejected marks an attempt that never started: the session
	// was locked or another solve already owned the board.
	OutcomeRejected
)

func (o SolveOutcome) String() string {
	switch o {
	case OutcomeSolved:
		return "solved"
	case OutcomeUnsolvable:
		return "unsolvable"
	case OutcomeTimeout:
		return "timeout"
	case OutcomeAborted:
		return "aborted"
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeRejected:
		return "rejected"
	}
	return "unknown"
}

// Game is a generated puzzle with metadata.
type Game struct {
	ID        string       `json:"id,omitempty"`
	Seed      int64        `json:"seed,omitempty"`
	Mode      GenerateMode `json:"mode,omitempty"`
	Board     Board        `json:"board"`
	CreatedAt int64        `json:"createdAt,omitempty"`
}

// GameRecord summarizes one finished game for the stats sideband and
// persistence. Emitted exactly once per fully solved game.
type GameRecord struct {
	ID         string  `json:"id,omitempty"`
	ClientType string  `json:"clientType,omitempty"`
	Width      int     `json:"cols"`
	Height     int     `json:"rows"`
	Moves      int     `json:"moves"`
	Seconds    float64 `json:"time"`
	Solved     bool    `json:"solved"`
	CreatedAt  int64   `json:"createdAt,omitempty"`
}

// Hint is the next suggested move for the UI.
type Hint struct {
	Move    Move   `json:"move"`
	Message string `json:"message,omitempty"`
}
