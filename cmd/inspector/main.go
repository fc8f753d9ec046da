// Command inspector serves a live view of a running scenario: it loads a
// scenario and a rules file, advances turns on a timer or on client request,
// and broadcasts object, meter and accounting snapshots to websocket
// subscribers.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"stardrift/engine/internal/effect"
	"stardrift/engine/internal/pathfind"
	"stardrift/engine/internal/scenario"
	"stardrift/engine/internal/universe"
	"stardrift/engine/logging"
	"stardrift/engine/logging/sinks"
)

const writeWait = 10 * time.Second

type objectSnapshot struct {
	ID     int                `json:"id"`
	Kind   string             `json:"kind"`
	Name   string             `json:"name"`
	Owner  int                `json:"owner"`
	X      float64            `json:"x"`
	Y      float64            `json:"y"`
	System int                `json:"system"`
	Meters map[string]float64 `json:"meters,omitempty"`
}

type accountingSnapshot struct {
	Target int     `json:"target"`
	Meter  string  `json:"meter"`
	Cause  string  `json:"cause"`
	Change float64 `json:"change"`
	Total  float64 `json:"total"`
}

type stateMessage struct {
	Type       string               `json:"type"`
	Turn       int                  `json:"turn"`
	Objects    []objectSnapshot     `json:"objects"`
	Accounting []accountingSnapshot `json:"accounting,omitempty"`
	ServerTime int64                `json:"serverTime"`
}

type clientMessage struct {
	Type string `json:"type"`
}

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// Hub owns the game state and fans snapshots out to subscribers. All state
// mutation happens under mu on the hub's goroutine handling the request.
type Hub struct {
	mu          sync.Mutex
	state       *scenario.State
	groups      []*effect.Group
	turn        int
	lastAcct    effect.AccountingMap
	subscribers map[uint64]*subscriber
	nextSubID   atomic.Uint64
	log         logging.Publisher
}

func newHub(state *scenario.State, groups []*effect.Group, log logging.Publisher) *Hub {
	return &Hub{
		state:       state,
		groups:      groups,
		turn:        state.Turn,
		subscribers: make(map[uint64]*subscriber),
		log:         log,
	}
}

// Step advances the game one turn and returns the snapshot to broadcast.
func (h *Hub) Step() stateMessage {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := &effect.Context{
		CurrentTurn: h.turn,
		Universe:    h.state.Universe,
		Empires:     h.state.Empires,
		Species:     h.state.Species,
		Content:     h.state.Content,
		Pathfinder:  &pathfind.Finder{},
		Log:         h.log,
	}
	sourced := make([]effect.SourcedGroup, 0, len(h.groups))
	for _, g := range h.groups {
		sourced = append(sourced, effect.SourcedGroup{
			Group: g,
			Cause: effect.Cause{CauseType: effect.CauseInherent, SpecificCause: g.ContentName()},
		})
	}
	h.lastAcct = effect.RunTurn(ctx, sourced)
	h.turn++
	return h.snapshotLocked()
}

func (h *Hub) Snapshot() stateMessage {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.snapshotLocked()
}

func (h *Hub) snapshotLocked() stateMessage {
	objects := make([]objectSnapshot, 0, h.state.Universe.Count())
	for _, o := range h.state.Universe.Objects() {
		snap := objectSnapshot{
			ID:     o.ID(),
			Kind:   o.Kind().String(),
			Name:   o.Name(),
			Owner:  o.Owner(),
			X:      o.X(),
			Y:      o.Y(),
			System: o.SystemID(),
		}
		meters := make(map[string]float64)
		for _, mt := range universe.MeterTypes(o) {
			meters[mt.String()] = o.Meter(mt).Current()
		}
		if len(meters) > 0 {
			snap.Meters = meters
		}
		objects = append(objects, snap)
	}

	var acct []accountingSnapshot
	for targetID, byMeter := range h.lastAcct {
		for mt, entries := range byMeter {
			for _, entry := range entries {
				acct = append(acct, accountingSnapshot{
					Target: targetID,
					Meter:  mt.String(),
					Cause:  entry.Cause.SpecificCause,
					Change: entry.MeterChange,
					Total:  entry.RunningTotal,
				})
			}
		}
	}

	return stateMessage{
		Type:       "state",
		Turn:       h.turn,
		Objects:    objects,
		Accounting: acct,
		ServerTime: time.Now().UnixMilli(),
	}
}

func (h *Hub) Subscribe(conn *websocket.Conn) (uint64, *subscriber) {
	id := h.nextSubID.Add(1)
	sub := &subscriber{conn: conn}
	h.mu.Lock()
	h.subscribers[id] = sub
	h.mu.Unlock()
	return id, sub
}

func (h *Hub) Unsubscribe(id uint64) {
	h.mu.Lock()
	delete(h.subscribers, id)
	h.mu.Unlock()
}

func (h *Hub) Broadcast(msg stateMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("inspector: marshal state: %v", err)
		return
	}
	h.mu.Lock()
	subs := make(map[uint64]*subscriber, len(h.subscribers))
	for id, sub := range h.subscribers {
		subs[id] = sub
	}
	h.mu.Unlock()

	for id, sub := range subs {
		sub.mu.Lock()
		sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
		err := sub.conn.WriteMessage(websocket.TextMessage, data)
		sub.mu.Unlock()
		if err != nil {
			log.Printf("inspector: drop subscriber %d: %v", id, err)
			h.Unsubscribe(id)
			sub.conn.Close()
		}
	}
}

func main() {
	var (
		addr         string
		scenarioPath string
		rulesPath    string
		autoStep     time.Duration
	)
	flag.StringVar(&addr, "addr", ":8080", "listen address")
	flag.StringVar(&scenarioPath, "scenario", "", "scenario YAML path")
	flag.StringVar(&rulesPath, "rules", "", "rules YAML path")
	flag.DurationVar(&autoStep, "auto", 0, "advance a turn automatically at this interval (0 disables)")
	flag.Parse()

	if scenarioPath == "" {
		log.Fatal("inspector: missing -scenario path")
	}
	pub := sinks.NewConsoleSink(os.Stderr)

	state, err := scenario.LoadFile(scenarioPath)
	if err != nil {
		log.Fatalf("inspector: %v", err)
	}
	var groups []*effect.Group
	if rulesPath != "" {
		groups, err = scenario.LoadRulesFile(rulesPath, pub)
		if err != nil {
			log.Fatalf("inspector: %v", err)
		}
	}

	hub := newHub(state, groups, logging.MinSeverity(pub, logging.SeverityInfo))

	if autoStep > 0 {
		go func() {
			ticker := time.NewTicker(autoStep)
			defer ticker.Stop()
			for range ticker.C {
				hub.Broadcast(hub.Step())
			}
		}()
	}

	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	http.HandleFunc("/state", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(hub.Snapshot()); err != nil {
			http.Error(w, "failed to encode", http.StatusInternalServerError)
		}
	})

	http.HandleFunc("/step", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		msg := hub.Step()
		hub.Broadcast(msg)
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(msg); err != nil {
			http.Error(w, "failed to encode", http.StatusInternalServerError)
		}
	})

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("inspector: upgrade: %v", err)
			return
		}
		id, sub := hub.Subscribe(conn)
		defer func() {
			hub.Unsubscribe(id)
			conn.Close()
		}()

		// Greet new subscribers with the current state.
		data, err := json.Marshal(hub.Snapshot())
		if err == nil {
			sub.mu.Lock()
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			err = conn.WriteMessage(websocket.TextMessage, data)
			sub.mu.Unlock()
		}
		if err != nil {
			return
		}

		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var msg clientMessage
			if err := json.Unmarshal(raw, &msg); err != nil {
				continue
			}
			if msg.Type == "step" {
				hub.Broadcast(hub.Step())
			}
		}
	})

	log.Printf("inspector: listening on %s", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatalf("inspector: %v", err)
	}
}
