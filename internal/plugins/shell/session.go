package shell

import (
	"fmt"
	"os"
	"os/exec"
	"sort"
	"sync"
	"time"

	"github.com/creack/pty"

	"github.com/nagusamecs/opennotes-desktop/host/internal/shared/id"
)

const outputBufferSize = 1024 * 1024

// Manager manages interactive shell sessions
type Manager struct {
	sessions   sync.Map // map[string]*Session
	defaultDir string
}

// NewManager creates a session manager with a default working directory
func NewManager(defaultDir string) *Manager {
	return &Manager{defaultDir: defaultDir}
}

// CreateSession starts a new shell under a PTY
func (m *Manager) CreateSession(shell, workingDir string, cols, rows int, env map[string]string) (*SessionInfo, error) {
	if shell == "" {
		shell = os.Getenv("SHELL")
		if shell == "" {
			shell = "/bin/bash"
		}
	}

	if workingDir == "" {
		workingDir = m.defaultDir
	}

	if cols <= 0 {
		cols = 80
	}
	if rows <= 0 {
		rows = 24
	}

	sessionID := id.NewSessionID().String()

	cmd := exec.Command(shell)
	cmd.Dir = workingDir

	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, "TERM=xterm-256color")
	for key, value := range env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", key, value))
	}

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start PTY: %w", err)
	}

	session := &Session{
		ID:         sessionID,
		Shell:      shell,
		WorkingDir: workingDir,
		Cols:       cols,
		Rows:       rows,
		StartedAt:  time.Now(),
		cmd:        cmd,
		ptmx:       ptmx,
		outputBuf:  NewBuffer(outputBufferSize),
	}

	m.sessions.Store(sessionID, session)

	go m.readOutput(session)
	go m.monitorProcess(session)

	info := session.info()
	return &info, nil
}

// readOutput continuously drains the PTY into the session buffer.
// Any read error, EOF included, means the session ended.
func (m *Manager) readOutput(session *Session) {
	buf := make([]byte, 4096)
	for {
		n, err := session.ptmx.Read(buf)
		if n > 0 {
			session.outputBuf.Write(buf[:n])
		}
		if err != nil {
			break
		}
	}
}

// monitorProcess reaps the shell process and marks the session closed
func (m *Manager) monitorProcess(session *Session) {
	session.cmd.Wait()

	session.mu.Lock()
	session.closed = true
	session.mu.Unlock()

	session.ptmx.Close()
}

// Write sends input to a session
func (m *Manager) Write(sessionID string, input []byte) error {
	session, err := m.lookup(sessionID)
	if err != nil {
		return err
	}

	session.mu.RLock()
	closed := session.closed
	session.mu.RUnlock()

	if closed {
		return fmt.Errorf("session is closed: %s", sessionID)
	}

	_, err = session.ptmx.Write(input)
	return err
}

// Read drains buffered output from a session
func (m *Manager) Read(sessionID string) ([]byte, error) {
	session, err := m.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return session.outputBuf.ReadAll(), nil
}

// Resize changes the PTY dimensions
func (m *Manager) Resize(sessionID string, cols, rows int) error {
	session, err := m.lookup(sessionID)
	if err != nil {
		return err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.closed {
		return fmt.Errorf("session is closed: %s", sessionID)
	}

	session.Cols = cols
	session.Rows = rows

	return pty.Setsize(session.ptmx, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
}

// Kill terminates a session and removes it
func (m *Manager) Kill(sessionID string) error {
	session, err := m.lookup(sessionID)
	if err != nil {
		return err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.closed {
		m.sessions.Delete(sessionID)
		return nil
	}

	session.closed = true

	if session.cmd.Process != nil {
		session.cmd.Process.Kill()
	}
	session.ptmx.Close()

	m.sessions.Delete(sessionID)

	return nil
}

// CloseAll terminates every tracked session. Called on host shutdown.
func (m *Manager) CloseAll() {
	m.sessions.Range(func(key, _ interface{}) bool {
		m.Kill(key.(string))
		return true
	})
}

// List returns info for all known sessions, oldest first.
// Session IDs are ULIDs, so sorting by ID is sorting by creation.
func (m *Manager) List() []SessionInfo {
	sessions := []SessionInfo{}

	m.sessions.Range(func(key, value interface{}) bool {
		sessions = append(sessions, value.(*Session).info())
		return true
	})

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].ID < sessions[j].ID
	})

	return sessions
}

// Status retrieves info for one session
func (m *Manager) Status(sessionID string) (*SessionInfo, error) {
	session, err := m.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	info := session.info()
	return &info, nil
}

func (m *Manager) lookup(sessionID string) (*Session, error) {
	value, ok := m.sessions.Load(sessionID)
	if !ok {
		return nil, fmt.Errorf("session not found: %s", sessionID)
	}
	return value.(*Session), nil
}
