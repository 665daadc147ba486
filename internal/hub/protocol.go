// Package hub is the statistics and logging sideband: game clients
// connect over websocket, stream leveled log events, and report one
// stats record per solved game. The hub aggregates per client type and
// exposes the totals over HTTP and Prometheus.
package hub

// Message types on the hub connection.
const (
	TypeConnect    = "connect"
	TypeLog        = "log"
	TypeStats      = "stats"
	TypeDisconnect = "disconnect"
	TypeError      = "error"
)

// Message is the single envelope exchanged with the hub; the Type field
// decides which of the optional fields are meaningful.
type Message struct {
	Type       string `json:"type"`
	ClientType string `json:"client_type,omitempty"`

	// log fields
	Timestamp string `json:"timestamp,omitempty"`
	Level     string `json:"level,omitempty"`
	Text      string `json:"message,omitempty"`
	Source    string `json:"source,omitempty"`

	// stats fields; Seconds keeps the original wire name "time"
	Rows    int     `json:"rows,omitempty"`
	Cols    int     `json:"cols,omitempty"`
	Moves   int     `json:"moves,omitempty"`
	Seconds float64 `json:"time,omitempty"`
	Solved  bool    `json:"solved,omitempty"`

	Error string `json:"error,omitempty"`
}

// ClientStats is one aggregate row of the hub's report.
type ClientStats struct {
	ClientType string  `json:"clientType"`
	Games      int     `json:"games"`
	AvgMoves   float64 `json:"avgMoves"`
	AvgSeconds float64 `json:"avgSeconds"`
}
