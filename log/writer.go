package log

import (
	"io"
	"os"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// MultipleWriter fans every log line out to its writers. A writer that fails
// is dropped.
type MultipleWriter struct {
	sync.RWMutex
	writers []io.Writer
}

func (m *MultipleWriter) Write(p []byte) (n int, err error) {
	m.RLock()
	writers := m.writers
	m.RUnlock()
	for _, w := range writers {
		if _, err = w.Write(p); err != nil {
			m.Delete(w)
		}
	}
	return len(p), nil
}

func (m *MultipleWriter) Delete(writer io.Writer) {
	m.Lock()
	defer m.Unlock()
	for i, w := range m.writers {
		if w == writer {
			// copy so that a concurrent Write keeps its own snapshot intact
			m.writers = append(append([]io.Writer{}, m.writers[:i]...), m.writers[i+1:]...)
			return
		}
	}
}

func (m *MultipleWriter) Add(writer io.Writer) {
	m.Lock()
	m.writers = append(append([]io.Writer{}, m.writers...), writer)
	m.Unlock()
}

func (m *MultipleWriter) Len() int {
	m.RLock()
	defer m.RUnlock()
	return len(m.writers)
}

var multipleWriter = &MultipleWriter{writers: []io.Writer{os.Stdout}}

func AddWriter(writer io.Writer) {
	multipleWriter.Add(writer)
}

func DeleteWriter(writer io.Writer) {
	multipleWriter.Delete(writer)
}

// AddFile adds a rotating log file. maxAge is in days, maxSize in megabytes;
// zero keeps lumberjack's defaults. The returned closer removes the sink.
func AddFile(path string, maxAge, maxSize int) io.Closer {
	lj := &lumberjack.Logger{
		Filename: path,
		MaxAge:   maxAge,
		MaxSize:  maxSize,
	}
	AddWriter(lj)
	return closerFunc(func() error {
		DeleteWriter(lj)
		return lj.Close()
	})
}

type closerFunc func() error

func (f closerFunc) Close() error {
	return f()
}
