package rpc

import (
	"net"
	"net/rpc"

	"github.com/wfunc/wordclash/deck"
	"github.com/wfunc/wordclash/logger"
	"github.com/wfunc/wordclash/models"
	"github.com/wfunc/wordclash/room"
)

// Server manages the RPC listener.
type Server struct {
	listener net.Listener
	address  string
}

// NewServer creates a new RPC server.
func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			// Check if the error is due to the listener being closed.
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

// Stop closes the RPC listener.
func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// AdminService exposes operational queries over net/rpc.
type AdminService struct {
	registry *room.Registry
	deck     *deck.Manager
}

func NewAdminService(registry *room.Registry, deck *deck.Manager) *AdminService {
	return &AdminService{registry: registry, deck: deck}
}

type ListRoomsArgs struct{}

type ListRoomsReply struct {
	Rooms []models.RoomSnapshot
}

// ListRooms returns a snapshot of every live room.
func (as *AdminService) ListRooms(args *ListRoomsArgs, reply *ListRoomsReply) error {
	for _, r := range as.registry.Rooms() {
		reply.Rooms = append(reply.Rooms, r.Snapshot())
	}
	return nil
}

type PoolSizeArgs struct{}

type PoolSizeReply struct {
	Size int
}

// PoolSize reports the current global card pool size.
func (as *AdminService) PoolSize(args *PoolSizeArgs, reply *PoolSizeReply) error {
	reply.Size = as.deck.PoolSize()
	return nil
}
