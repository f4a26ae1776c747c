package domain

import (
	"sync"
	"time"
)

type NodeType string
type NodeStatus string

const (
	SERVER     NodeType = "SERVER"
	CLASSIFIER NodeType = "CLASSIFIER"

	ALIVE NodeStatus = "ALIVE"
	GHOST NodeStatus = "GHOST"
)

// ghostAfter is how long a node may stay silent before it is reported as a ghost.
const ghostAfter = 15 * time.Second

type NodeHealth struct {
	ID        string     `json:"id"`
	Type      NodeType   `json:"type"`
	Status    NodeStatus `json:"status"`
	PIDStatus PIDStatus  `json:"pid_status"`
	PID       int32      `json:"pid"`
	CPU       float64    `json:"cpu_percent"`
	Memory    float32    `json:"memory_percent"`
	RAM       uint64     `json:"ram_bytes"`
	Threads   int32      `json:"threads"`
	LastSeen  time.Time  `json:"last_seen"`
}

// GlobalMonitoring keeps the latest health sample of every process of the service.
type GlobalMonitoring struct {
	mu    sync.RWMutex
	nodes map[string]NodeHealth
	now   func() time.Time
}

func NewGlobalMonitoring() *GlobalMonitoring {
	return &GlobalMonitoring{nodes: make(map[string]NodeHealth), now: time.Now}
}

func (m *GlobalMonitoring) UpdateNode(n NodeHealth) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n.LastSeen = m.now()
	n.Status = ALIVE
	m.nodes[n.ID] = n
}

// Snapshot copies the nodes, the ones not seen recently are flagged GHOST.
func (m *GlobalMonitoring) Snapshot() map[string]NodeHealth {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := make(map[string]NodeHealth, len(m.nodes))
	for id, node := range m.nodes {
		if m.now().Sub(node.LastSeen) > ghostAfter {
			node.Status = GHOST
		}
		snapshot[id] = node
	}
	return snapshot
}
