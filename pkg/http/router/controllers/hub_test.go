package controllers

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/gobwas/ws/wsutil"
	da "github.com/lintang-b-s/Windnav/pkg/datastructure"
	"github.com/lintang-b-s/Windnav/pkg/engine"
	"github.com/lintang-b-s/Windnav/pkg/geo"
	"github.com/lintang-b-s/Windnav/pkg/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubWindService struct {
	field engine.WindField
}

func (s *stubWindService) WindField() (engine.WindField, error) {
	return s.field, nil
}

func (s *stubWindService) WindFieldOf(pair *snapshot.Pair) (engine.WindField, error) {
	field := s.field
	field.SnapshotVersion = pair.Version
	return field, nil
}

func (s *stubWindService) SnapshotInfo() (engine.SnapshotInfo, error) {
	return engine.SnapshotInfo{Version: s.field.SnapshotVersion, Points: len(s.field.Samples)}, nil
}

func TestHubDropsStalledUser(t *testing.T) {
	hub := NewHub(&stubWindService{field: engine.WindField{
		Samples: []engine.WindSample{{Coordinate: geo.NewCoordinate(1, 2), Wind: da.NewWindVector(3, 4)}},
	}}, zap.NewNop())
	hub.writeTimeout = 50 * time.Millisecond

	// net.Pipe is unbuffered, so a peer that never reads blocks every write
	stalledServer, stalledClient := net.Pipe()
	defer stalledClient.Close()
	hub.Register(stalledServer)

	liveServer, liveClient := net.Pipe()
	defer liveClient.Close()
	live := hub.Register(liveServer)

	received := make(chan []byte, 1)
	go func() {
		msg, err := wsutil.ReadServerText(liveClient)
		if err == nil {
			received <- msg
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	updates := make(chan *snapshot.Pair, 1)
	go hub.Run(ctx, updates)
	updates <- &snapshot.Pair{Version: 7}

	select {
	case msg := <-received:
		var out map[string]map[string]interface{}
		require.NoError(t, json.Unmarshal(msg, &out))
		assert.Equal(t, 7.0, out["data"]["snapshot_version"])
	case <-time.After(2 * time.Second):
		t.Fatal("live user did not receive the publication")
	}

	require.Eventually(t, func() bool { return hub.NumUsers() == 1 }, time.Second, 5*time.Millisecond)
	hub.mu.RLock()
	_, ok := hub.users[live.id]
	hub.mu.RUnlock()
	assert.True(t, ok)
}

func TestHubWriteTimesOut(t *testing.T) {
	hub := NewHub(&stubWindService{}, zap.NewNop())
	server, client := net.Pipe()
	defer client.Close()
	user := hub.Register(server)

	start := time.Now()
	err := user.write(envelope{"data": "x"}, 20*time.Millisecond)
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}
