// Package ipc is the control socket of a running window manager.
package ipc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"

	"tigerwm/internal/wm"
	"tigerwm/pkg/global"
)

// Server accepts control requests and posts them to the event loop as
// wm.EventCommand events.
type Server struct {
	path     string
	listener net.Listener
	conns    sync.WaitGroup
}

// Listen creates the socket at path, replacing a stale one.
func Listen(path string) (*Server, error) {
	log := global.GetLogger()

	// Remove the socket file if it already exists
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Error("Failed to remove existing socket file", err)
		return nil, fmt.Errorf("failed to remove stale socket: %w", err)
	}

	// Create the directory for the socket file
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create socket directory: %w", err)
	}

	// Listen on the Unix domain socket
	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("failed to start socket server: %w", err)
	}

	log.Info("Socket server started", "path", path)
	return &Server{path: path, listener: listener}, nil
}

// Path returns the socket path.
func (s *Server) Path() string {
	return s.path
}

// Serve accepts connections until ctx ends, then closes the listener,
// waits for open connections and removes the socket file.
func (s *Server) Serve(ctx context.Context, out chan<- wm.Event) error {
	log := global.GetLogger()

	go func() {
		<-ctx.Done()
		s.listener.Close()
	}()
	defer func() {
		s.conns.Wait()
		os.Remove(s.path)
		log.Debug("Socket server stopped", "path", s.path)
	}()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			log.Error("Failed to accept connection", err)
			continue
		}

		log.Debug("New connection accepted")

		s.conns.Add(1)
		go func() {
			defer s.conns.Done()
			s.handleConnection(ctx, conn, out)
		}()
	}
}

// Close stops accepting connections and removes the socket file. It is
// safe to call after Serve has returned.
func (s *Server) Close() error {
	err := s.listener.Close()
	os.Remove(s.path)
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

func (s *Server) handleConnection(ctx context.Context, conn net.Conn, out chan<- wm.Event) {
	log := global.GetLogger()
	defer conn.Close()

	var req Request
	decoder := json.NewDecoder(conn)
	if err := decoder.Decode(&req); err != nil {
		log.Error("Failed to decode request", err)
		return
	}

	log.Info("Received request", "command", req.Command, "args", req.Args)

	resp := s.execute(ctx, req, out)

	encoder := json.NewEncoder(conn)
	if err := encoder.Encode(resp); err != nil {
		log.Error("Failed to encode response", err)
	} else {
		log.Debug("Response sent successfully", "status", resp.Status)
	}
}

func (s *Server) execute(ctx context.Context, req Request, out chan<- wm.Event) Response {
	action, arg, err := parseRequest(req)
	if err != nil {
		return Response{Status: StatusError, Message: err.Error()}
	}

	reply := make(chan wm.CommandResult, 1)
	ev := wm.Event{
		Kind:    wm.EventCommand,
		Command: &wm.Command{Action: action, Arg: arg, Reply: reply},
	}

	select {
	case out <- ev:
	case <-ctx.Done():
		return Response{Status: StatusError, Message: "window manager is shutting down"}
	}

	select {
	case res := <-reply:
		resp := Response{Status: StatusSuccess, Message: req.Command, Desktops: res.Desktops}
		if res.Err != nil {
			resp.Status = StatusError
			resp.Message = res.Err.Error()
		}
		return resp
	case <-ctx.Done():
		return Response{Status: StatusError, Message: "window manager is shutting down"}
	}
}
