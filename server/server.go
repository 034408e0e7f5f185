package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/wfunc/maestro/broadcast"
	"github.com/wfunc/maestro/logger"
	"github.com/wfunc/maestro/monitor"
	"github.com/wfunc/maestro/network"
	"github.com/wfunc/maestro/room"
	"github.com/wfunc/maestro/session"
)

// heartbeatInterval bounds how long a connection may stay silent. The
// read deadline is set to twice this and refreshed on every command.
const heartbeatInterval = 60 * time.Second

type GameServer struct {
	addr           string
	upgrader       websocket.Upgrader
	roomManager    *room.Manager
	sessionManager *session.Manager
	broadcaster    broadcast.Broadcaster
	monitor        *monitor.Monitor
	shutdownChan   chan struct{}
}

// commandContext carries the resolved room and player references for one
// inbound command, so handlers never rely on state captured in connection
// closures.
type commandContext struct {
	sess *session.Session
	room *room.Room
}

func NewGameServer(addr string, mon *monitor.Monitor) *GameServer {
	s := &GameServer{
		addr:           addr,
		sessionManager: session.NewManager(),
		monitor:        mon,
		shutdownChan:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // 允许所有跨域请求
			},
		},
	}

	s.broadcaster = broadcast.NewRoomBroadcaster(s.sessionManager)
	s.roomManager = room.NewManager(s.broadcaster)
	if mon != nil {
		s.roomManager.SetCountHook(mon.SetActiveRooms)
	}

	return s
}

func (s *GameServer) Start() error {
	http.HandleFunc("/ws", s.handleWebSocket)
	logger.Log.Infof("Game server listening on %s", s.addr)
	return http.ListenAndServe(s.addr, nil)
}

func (s *GameServer) Shutdown() {
	close(s.shutdownChan)
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(conn)
}

func (s *GameServer) handleConnection(conn *websocket.Conn) {
	wsConn := network.NewWSConnection(conn)
	sess := session.NewSession(uuid.New().String(), wsConn)
	s.sessionManager.Add(sess)
	if s.monitor != nil {
		s.monitor.IncOnlinePlayers()
	}

	logger.Log.Infof("New connection from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())

	defer func() {
		logger.Log.Infof("Connection closed from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())
		s.sessionManager.Remove(sess.GetID())
		if s.monitor != nil {
			s.monitor.DecOnlinePlayers()
		}
		if sess.RoomID != "" {
			if r, exists := s.roomManager.Get(sess.RoomID); exists {
				r.Leave(sess.GetID())
			}
		}
		wsConn.Close()
	}()

	wsConn.SetHeartbeat(heartbeatInterval)

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
			cmd, err := wsConn.ReadCommand()
			if err != nil {
				if errors.Is(err, network.ErrMalformedCommand) {
					// 静默忽略畸形消息，不断连接
					logger.Log.Debugf("session %s: malformed command ignored", sess.GetID())
					continue
				}
				return
			}
			wsConn.SetHeartbeat(heartbeatInterval)
			s.handleCommand(sess, cmd, time.Now())
		}
	}
}

// handleCommand resolves the command's room and dispatches. Commands
// referencing no room, an unknown room, or carrying an unknown type are
// ignored silently.
func (s *GameServer) handleCommand(sess *session.Session, cmd *network.Command, at time.Time) {
	if s.monitor != nil {
		s.monitor.IncCommandsReceived()
		defer func() {
			s.monitor.ObserveCommandLatency(time.Since(at))
		}()
	}

	switch cmd.Type {
	case network.CmdJoin:
		s.handleJoin(sess, cmd)
	case network.CmdReady, network.CmdInput, network.CmdReset:
		ctx := s.resolve(sess)
		if ctx.room == nil {
			return
		}
		ctx.room.HandleCommand(ctx.sess.GetID(), cmd, at)
	default:
		logger.Log.Debugf("session %s: unknown command type %q", sess.GetID(), cmd.Type)
	}
}

func (s *GameServer) handleJoin(sess *session.Session, cmd *network.Command) {
	if cmd.Room == "" || sess.RoomID != "" {
		return
	}

	r := s.roomManager.Resolve(cmd.Room)
	// attach before joining so the join's own snapshot reaches this session
	sess.RoomID = cmd.Room
	r.Join(sess.GetID(), cmd.Name, cmd.Skin)
	logger.Log.Infof("Session %s joined room %s", sess.GetID(), cmd.Room)
}

func (s *GameServer) resolve(sess *session.Session) commandContext {
	ctx := commandContext{sess: sess}
	if sess.RoomID == "" {
		return ctx
	}
	if r, exists := s.roomManager.Get(sess.RoomID); exists {
		ctx.room = r
	}
	return ctx
}
