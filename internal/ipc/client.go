package ipc

import (
	"encoding/json"
	"fmt"
	"net"
	"time"

	"tigerwm/pkg/global"
)

const dialTimeout = 2 * time.Second

// SendCommand sends one request to the socket at path and waits for the
// reply.
func SendCommand(path, command string, args ...string) (Response, error) {
	log := global.GetLogger()

	log.Debug("Attempting to connect to socket server", "path", path)

	conn, err := net.DialTimeout("unix", path, dialTimeout)
	if err != nil {
		log.Error("Failed to connect to socket server", err)
		return Response{}, fmt.Errorf("is tigerwm running? %w", err)
	}
	defer conn.Close()

	req := Request{Command: command, Args: args}
	encoder := json.NewEncoder(conn)
	if err := encoder.Encode(req); err != nil {
		log.Error("Failed to encode request", err)
		return Response{}, err
	}

	log.Debug("Request sent successfully", "command", command)

	var resp Response
	decoder := json.NewDecoder(conn)
	if err := decoder.Decode(&resp); err != nil {
		log.Error("Failed to decode response", err)
		return Response{}, err
	}

	log.Debug("Response received", "status", resp.Status, "message", resp.Message)
	return resp, nil
}
