package controllers

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/Windnav/pkg/snapshot"
	"go.uber.org/zap"
)

const defaultWriteTimeout = 10 * time.Second

// User. one websocket subscriber of the wind feed.
type User struct {
	io   sync.Mutex
	conn net.Conn

	id  uint
	hub *Hub
}

// write. a peer that does not drain its socket within timeout fails the write.
func (u *User) write(x interface{}, timeout time.Duration) error {
	w := wsutil.NewWriter(u.conn, ws.StateServerSide, ws.OpText)
	encoder := json.NewEncoder(w)

	u.io.Lock()
	defer u.io.Unlock()

	if err := u.conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		return err
	}
	if err := encoder.Encode(x); err != nil {
		return err
	}

	return w.Flush()
}

// readLoop. drains client frames until the peer goes away. Control frames are answered by wsutil.
func (u *User) readLoop() {
	defer u.hub.Remove(u)
	for {
		if _, _, err := wsutil.ReadClientData(u.conn); err != nil {
			return
		}
	}
}

/*
Hub. pushes the wind field of every newly published snapshot to all connected users.
A user whose write fails or does not complete within writeTimeout is dropped.
*/
type Hub struct {
	mu           sync.RWMutex
	seq          uint
	users        map[uint]*User
	windService  WindService
	writeTimeout time.Duration
	log          *zap.Logger
}

func NewHub(windService WindService, log *zap.Logger) *Hub {
	return &Hub{
		users:        make(map[uint]*User),
		windService:  windService,
		writeTimeout: defaultWriteTimeout,
		log:          log,
	}
}

func (h *Hub) Register(conn net.Conn) *User {
	user := &User{
		hub:  h,
		conn: conn,
	}

	h.mu.Lock()
	user.id = h.seq
	h.users[user.id] = user
	h.seq++
	h.mu.Unlock()

	return user
}

func (h *Hub) Remove(user *User) {
	h.mu.Lock()
	_, ok := h.users[user.id]
	delete(h.users, user.id)
	h.mu.Unlock()

	if ok {
		user.conn.Close()
	}
}

func (h *Hub) RemoveAllUser() {
	h.mu.RLock()
	users := make([]*User, 0, len(h.users))
	for _, u := range h.users {
		users = append(users, u)
	}
	h.mu.RUnlock()

	for _, u := range users {
		h.Remove(u)
	}
}

func (h *Hub) NumUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.users)
}

func (h *Hub) Broadcast(x interface{}) {
	h.mu.RLock()
	users := make([]*User, 0, len(h.users))
	for _, u := range h.users {
		users = append(users, u)
	}
	h.mu.RUnlock()

	for _, u := range users {
		if err := u.write(x, h.writeTimeout); err != nil {
			h.log.Info("dropping wind feed user", zap.Uint("user", u.id), zap.Error(err))
			h.Remove(u)
		}
	}
}

// Run. broadcasts each pair received on updates until ctx is done or updates is closed.
func (h *Hub) Run(ctx context.Context, updates <-chan *snapshot.Pair) {
	for {
		select {
		case <-ctx.Done():
			h.RemoveAllUser()
			return
		case pair, ok := <-updates:
			if !ok {
				h.RemoveAllUser()
				return
			}
			field, err := h.windService.WindFieldOf(pair)
			if err != nil {
				h.log.Error("wind feed: compute wind field", zap.Error(err))
				continue
			}
			h.Broadcast(envelope{"data": NewWindFieldResponse(field)})
		}
	}
}

// ServeWS. upgrades the request and sends the current wind field, later fields follow on publication.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	conn, _, _, err := ws.UpgradeHTTP(r, w)
	if err != nil {
		h.log.Info("websocket upgrade error", zap.Error(err), zap.String("remote", r.RemoteAddr))
		return
	}
	// hijacked connections keep the server's read/write deadlines, writes set their own
	_ = conn.SetDeadline(time.Time{})
	user := h.Register(conn)
	h.log.Info("established websocket connection", zap.Uint("user", user.id),
		zap.String("connection", nameConn(conn)))

	if field, err := h.windService.WindField(); err == nil {
		if err := user.write(envelope{"data": NewWindFieldResponse(field)}, h.writeTimeout); err != nil {
			h.Remove(user)
			return
		}
	}
	go user.readLoop()
}

func nameConn(conn net.Conn) string {
	return conn.LocalAddr().String() + " > " + conn.RemoteAddr().String()
}
