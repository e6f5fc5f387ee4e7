package shell

import (
	"bytes"
	"strings"

	"go.trai.ch/taskrun/internal/core/domain"
	"go.trai.ch/taskrun/internal/core/ports"
)

// maxLogLine bounds a buffered stderr line before it is logged anyway.
const maxLogLine = 64 << 10

// capture keeps the first limit bytes written to it and silently drops the rest,
// so a chatty task never blocks on a full pipe.
type capture struct {
	buf       bytes.Buffer
	limit     int
	truncated bool
}

func newCapture(limit int) *capture {
	if limit <= 0 {
		limit = domain.DefaultMaxOutputBytes
	}
	return &capture{limit: limit}
}

func (c *capture) Write(p []byte) (int, error) {
	room := c.limit - c.buf.Len()
	if room >= len(p) {
		return c.buf.Write(p)
	}
	if room > 0 {
		c.buf.Write(p[:room])
	}
	c.truncated = true
	return len(p), nil
}

// Bytes returns a copy of the captured data.
func (c *capture) Bytes() []byte {
	return bytes.Clone(c.buf.Bytes())
}

// Truncated reports whether any data was dropped.
func (c *capture) Truncated() bool {
	return c.truncated
}

// lineLogger forwards complete lines to the debug log.
type lineLogger struct {
	logger ports.Logger
	msg    string
	buf    bytes.Buffer
}

func (w *lineLogger) Write(p []byte) (int, error) {
	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// Keep the partial line for the next write.
			w.buf.Reset()
			w.buf.WriteString(line)
			break
		}
		w.logger.Debug(w.msg, "line", strings.TrimSuffix(line, "\n"))
	}
	if w.buf.Len() > maxLogLine {
		w.Flush()
	}
	return len(p), nil
}

// Flush logs any trailing partial line.
func (w *lineLogger) Flush() {
	if w.buf.Len() > 0 {
		w.logger.Debug(w.msg, "line", w.buf.String())
		w.buf.Reset()
	}
}
