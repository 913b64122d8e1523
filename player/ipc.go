package player

import (
	"encoding/json"
	"fmt"
	"net"
	"time"
)

type ipcCommand struct {
	Command []any `json:"command"`
}

type ipcResponse struct {
	Data  any    `json:"data"`
	Error string `json:"error"`
}

const (
	maxRetries   = 3
	retryDelay   = 100 * time.Millisecond
	readDeadline = 1 * time.Second
	readBufSize  = 4096
)

// sendCommand runs command on a fresh connection, retrying transient failures.
func (m *MPV) sendCommand(command ...any) (any, error) {
	m.ipc.Lock()
	defer m.ipc.Unlock()

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryDelay)
		}

		result, err := doSendCommand(m.socketPath, command)
		if err == nil {
			return result, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("ipc %v failed after %d attempts: %w", command[0], maxRetries, lastErr)
}

func doSendCommand(socketPath string, command []any) (any, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	if err := writeCommand(conn, command); err != nil {
		return nil, err
	}

	if err := conn.SetReadDeadline(time.Now().Add(readDeadline)); err != nil {
		return nil, fmt.Errorf("set deadline: %w", err)
	}

	// the reply may be preceded by events, skip them
	decoder := json.NewDecoder(conn)
	for {
		var line struct {
			ipcResponse
			Event string `json:"event"`
		}
		if err := decoder.Decode(&line); err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}
		if line.Event != "" {
			continue
		}
		if line.Error != "" && line.Error != "success" {
			return nil, fmt.Errorf("mpv error: %s", line.Error)
		}
		return line.Data, nil
	}
}

// writeCommand sends one newline-delimited command.
func writeCommand(conn net.Conn, command []any) error {
	payload, err := json.Marshal(ipcCommand{Command: command})
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	if _, err := conn.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
