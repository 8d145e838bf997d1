package headway

import (
	"bytes"
	"sync"
)

// LineWriter buffers foreign output and hands it to a manager one complete
// line at a time, so a partial line is never left where the bars are drawn.
// It suits sources that write in arbitrary chunks, such as a child
// process's stdout.
type LineWriter struct {
	m     *Manager
	mu    sync.Mutex
	buf   []byte
	lines int
}

// LineWriter returns a new line-buffered writer on m.
func (m *Manager) LineWriter() *LineWriter {
	return &LineWriter{m: m}
}

// Write buffers p and forwards every complete line.
func (w *LineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		idx := bytes.IndexByte(w.buf, '\n')
		if idx < 0 {
			break
		}
		if _, err := w.m.Write(w.buf[:idx+1]); err != nil {
			return len(p), err
		}
		w.buf = w.buf[idx+1:]
		w.lines++
	}
	return len(p), nil
}

// Flush forwards any trailing partial line, terminated with a newline.
func (w *LineWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.buf) == 0 {
		return nil
	}
	line := append(w.buf, '\n')
	w.buf = nil
	w.lines++
	_, err := w.m.Write(line)
	return err
}

// Close flushes the writer.
func (w *LineWriter) Close() error {
	return w.Flush()
}

// Lines returns the number of lines forwarded so far.
func (w *LineWriter) Lines() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lines
}
