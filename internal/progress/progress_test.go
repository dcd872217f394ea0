package progress

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// syncBuffer guards a bytes.Buffer written by the animation goroutine.
type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func TestSpinner_TTY(t *testing.T) {
	var buf syncBuffer
	s := newSpinner(&buf, "Downloading ripgrep", true)

	s.Start()
	s.Start()
	time.Sleep(3 * interval)
	s.Stop()
	s.Stop()

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, frames[0]+" Downloading ripgrep..."))
	assert.Contains(t, out, "\r"+frames[1]+" Downloading ripgrep...")
	assert.True(t, strings.HasSuffix(out, "\r"))
}

func TestSpinner_NotTTY(t *testing.T) {
	var buf syncBuffer
	s := newSpinner(&buf, "x", false)
	s.Start()
	s.Stop()
	assert.Empty(t, buf.String())
}
