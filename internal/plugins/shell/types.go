package shell

import (
	"os"
	"os/exec"
	"sync"
	"time"
)

// Session represents an active interactive shell session
type Session struct {
	ID         string
	Shell      string
	WorkingDir string
	Cols       int
	Rows       int
	StartedAt  time.Time

	cmd  *exec.Cmd
	ptmx *os.File

	outputBuf *Buffer

	mu     sync.RWMutex
	closed bool
}

// Buffer is a thread-safe circular buffer for session output
type Buffer struct {
	data []byte
	size int
	head int
	tail int
	mu   sync.Mutex
}

// NewBuffer creates a circular buffer of the given size
func NewBuffer(size int) *Buffer {
	return &Buffer{
		data: make([]byte, size),
		size: size,
	}
}

// Write appends data, overwriting the oldest bytes when full
func (b *Buffer) Write(p []byte) (n int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, c := range p {
		b.data[b.tail] = c
		b.tail = (b.tail + 1) % b.size

		if b.tail == b.head {
			b.head = (b.head + 1) % b.size
		}
	}

	return len(p), nil
}

// ReadAll drains all buffered data
func (b *Buffer) ReadAll() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.head == b.tail {
		return []byte{}
	}

	var result []byte
	if b.tail > b.head {
		result = make([]byte, b.tail-b.head)
		copy(result, b.data[b.head:b.tail])
	} else {
		firstPart := b.data[b.head:]
		secondPart := b.data[:b.tail]
		result = make([]byte, len(firstPart)+len(secondPart))
		copy(result, firstPart)
		copy(result[len(firstPart):], secondPart)
	}

	b.head = b.tail

	return result
}

// SessionInfo is the public representation of a session
type SessionInfo struct {
	ID         string    `json:"id"`
	Shell      string    `json:"shell"`
	WorkingDir string    `json:"working_dir"`
	Cols       int       `json:"cols"`
	Rows       int       `json:"rows"`
	StartedAt  time.Time `json:"started_at"`
	Active     bool      `json:"active"`
}

func (s *Session) info() SessionInfo {
	s.mu.RLock()
	active := !s.closed
	s.mu.RUnlock()

	return SessionInfo{
		ID:         s.ID,
		Shell:      s.Shell,
		WorkingDir: s.WorkingDir,
		Cols:       s.Cols,
		Rows:       s.Rows,
		StartedAt:  s.StartedAt,
		Active:     active,
	}
}
