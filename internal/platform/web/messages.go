// Package web serves the game to browser clients over websockets: one
// shared simulation per server, JSON state broadcasts every tick, and
// client input messages steering the hole.
package web

import "github.com/velmoga/sinkhole/internal/games/sinkhole"

// clientMessage is the envelope for everything a browser client sends.
type clientMessage struct {
	Type string `json:"type"`

	// Actions holds held input names for "input" messages:
	// "up", "down", "left", "right", "pause", "restart".
	Actions []string `json:"actions,omitempty"`

	// SentAt is the client clock in unix millis for "heartbeat" messages.
	SentAt int64 `json:"sentAt,omitempty"`
}

// stateMessage carries one simulation snapshot to clients.
type stateMessage struct {
	Type       string            `json:"type"`
	ServerTime int64             `json:"serverTime"`
	State      sinkhole.Snapshot `json:"state"`
}

// heartbeatMessage acknowledges a client heartbeat.
type heartbeatMessage struct {
	Type       string `json:"type"`
	ServerTime int64  `json:"serverTime"`
	ClientTime int64  `json:"clientTime"`
	RTTMillis  int64  `json:"rttMillis"`
}
