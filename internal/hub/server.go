package hub

import (
	"log/slog"
	"net/http"
	"sort"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
)

// aggregate sums per-client-type results; averages are derived on read.
type aggregate struct {
	games   int
	moves   int64
	seconds float64
}

// Hub accepts game-client websocket connections, routes their log
// events into its own logger, and aggregates their solved-game stats.
// One active client per client type, as in the original hub.
type Hub struct {
	mu      sync.Mutex
	active  map[string]bool
	agg     map[string]*aggregate
	log     *slog.Logger
	metrics *metrics

	upgrader websocket.Upgrader
}

// New builds a hub. reg may be nil to skip metric registration.
func New(log *slog.Logger, reg prometheus.Registerer) *Hub {
	if log == nil {
		log = slog.Default()
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	return &Hub{
		active:  make(map[string]bool),
		agg:     make(map[string]*aggregate),
		log:     log,
		metrics: newMetrics(reg),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleWS upgrades the request and serves one client connection until
// it disconnects.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()
	h.log.Info("connection established", "remote", r.RemoteAddr)

	clientType := ""
	defer func() {
		if clientType != "" {
			h.release(clientType)
			h.log.Info("client disconnected", "client_type", clientType)
		}
	}()

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Error("connection error", "remote", r.RemoteAddr, "err", err)
			}
			return
		}

		switch msg.Type {
		case TypeConnect:
			if clientType != "" {
				// A connection identifies itself once; a second connect
				// must not claim another singleton slot.
				h.log.Warn("repeat connect ignored", "client_type", clientType, "requested", msg.ClientType)
				continue
			}
			if !h.claim(msg.ClientType) {
				h.log.Error("client rejected, type already active", "client_type", msg.ClientType)
				_ = conn.WriteJSON(Message{Type: TypeError, Error: "a " + msg.ClientType + " game is already running"})
				return
			}
			clientType = msg.ClientType
			h.log.Info("client connected", "client_type", clientType)

		case TypeLog:
			h.routeLog(clientType, msg)

		case TypeStats:
			if clientType == "" {
				h.log.Warn("stats received before connect")
				continue
			}
			// Aborted and unsolved sessions never count.
			if !msg.Solved {
				continue
			}
			h.record(clientType, msg)
			h.log.Info("stats received", "client_type", clientType, "moves", msg.Moves, "seconds", msg.Seconds)

		case TypeDisconnect:
			return

		default:
			h.log.Warn("unknown message type", "type", msg.Type, "remote", r.RemoteAddr)
		}
	}
}

// routeLog replays a client's leveled log line through the hub logger.
func (h *Hub) routeLog(clientType string, msg Message) {
	logf := h.log.Info
	switch msg.Level {
	case "DEBUG":
		logf = h.log.Debug
	case "WARN":
		logf = h.log.Warn
	case "ERROR":
		logf = h.log.Error
	}
	source := msg.Source
	if clientType != "" {
		source = clientType
	}
	logf(msg.Text, "from", source)
}

func (h *Hub) claim(clientType string) bool {
	if clientType == "" {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active[clientType] {
		return false
	}
	h.active[clientType] = true
	return true
}

func (h *Hub) release(clientType string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.active, clientType)
}

func (h *Hub) record(clientType string, msg Message) {
	h.mu.Lock()
	a := h.agg[clientType]
	if a == nil {
		a = &aggregate{}
		h.agg[clientType] = a
	}
	a.games++
	a.moves += int64(msg.Moves)
	a.seconds += msg.Seconds
	h.mu.Unlock()

	h.metrics.observe(clientType, msg.Moves, msg.Seconds)
}

// Snapshot reports the aggregates, sorted by client type for stable
// output.
func (h *Hub) Snapshot() []ClientStats {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]ClientStats, 0, len(h.agg))
	for ct, a := range h.agg {
		row := ClientStats{ClientType: ct, Games: a.games}
		if a.games > 0 {
			row.AvgMoves = float64(a.moves) / float64(a.games)
			row.AvgSeconds = a.seconds / float64(a.games)
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClientType < out[j].ClientType })
	return out
}
