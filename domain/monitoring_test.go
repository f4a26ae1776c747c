package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGlobalMonitoring_Snapshot(t *testing.T) {
	req := require.New(t)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewGlobalMonitoring()
	m.now = func() time.Time { return now }

	// Given two nodes reporting at the same time
	m.UpdateNode(NodeHealth{ID: "server", Type: SERVER, PID: 10})
	m.UpdateNode(NodeHealth{ID: "classifier", Type: CLASSIFIER, PID: 11})
	req.Equal(ALIVE, m.Snapshot()["server"].Status)

	// When only the server keeps reporting
	now = now.Add(20 * time.Second)
	m.UpdateNode(NodeHealth{ID: "server", Type: SERVER, PID: 10})

	// Then the silent classifier is a ghost
	snapshot := m.Snapshot()
	req.Equal(ALIVE, snapshot["server"].Status)
	req.Equal(GHOST, snapshot["classifier"].Status)
}

func TestToPIDStatus(t *testing.T) {
	req := require.New(t)
	req.Equal(RUNNING, ToPIDStatus("R"))
	req.Equal(ZOMBIE, ToPIDStatus("Z"))
	req.Equal(UNKNOWN, ToPIDStatus("?"))
}
