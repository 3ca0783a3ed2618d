package analogx

import (
	"bytes"
	"io"
	"strings"
	"sync"

	"github.com/projectdiscovery/analogx/cluster"
	"github.com/projectdiscovery/utils/dedupe"
)

// DedupingWriter writes each distinct line once. It is used for predicted
// words, which several grids and several holes may produce.
type DedupingWriter struct {
	writer  io.Writer
	inputCh chan string
	known   map[string]struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	count   int
	closed  bool
	partial []byte
	err     error
}

// NewDedupingWriter returns a DedupingWriter on w. Lines equal to one of the
// known words are not written, nor are empty lines, comment lines and holes.
func NewDedupingWriter(w io.Writer, known ...string) *DedupingWriter {
	dw := &DedupingWriter{
		writer:  w,
		inputCh: make(chan string, 100),
		known:   make(map[string]struct{}, len(known)),
	}
	for _, word := range known {
		dw.known[word] = struct{}{}
	}
	dw.wg.Add(1)
	go dw.drain()
	return dw
}

func (dw *DedupingWriter) drain() {
	defer dw.wg.Done()
	d := dedupe.NewDedupe(dw.inputCh, 1024*1024)
	d.Drain()
	for value := range d.GetResults() {
		if dw.skip(value) {
			continue
		}
		_, err := dw.writer.Write([]byte(value + "\n"))
		dw.mu.Lock()
		if err != nil {
			if dw.err == nil {
				dw.err = err
			}
		} else {
			dw.count++
		}
		dw.mu.Unlock()
	}
}

func (dw *DedupingWriter) skip(value string) bool {
	if value == "" || value == cluster.Hole || strings.HasPrefix(value, cluster.Comment) {
		return true
	}
	_, ok := dw.known[value]
	return ok
}

// Write implements io.Writer. Lines are handed over once complete.
func (dw *DedupingWriter) Write(p []byte) (int, error) {
	if dw.closed {
		return 0, io.ErrClosedPipe
	}
	dw.partial = append(dw.partial, p...)
	for {
		idx := bytes.IndexByte(dw.partial, '\n')
		if idx == -1 {
			break
		}
		dw.inputCh <- strings.TrimSpace(string(dw.partial[:idx]))
		dw.partial = dw.partial[idx+1:]
	}
	return len(p), nil
}

// WriteWords writes words, one per line.
func (dw *DedupingWriter) WriteWords(words []string) error {
	for _, w := range words {
		if _, err := dw.Write([]byte(w + "\n")); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes the last partial line, waits for every line to be written
// and returns the first write error.
func (dw *DedupingWriter) Close() error {
	if dw.closed {
		return nil
	}
	dw.closed = true
	if len(dw.partial) > 0 {
		dw.inputCh <- strings.TrimSpace(string(dw.partial))
	}
	close(dw.inputCh)
	dw.wg.Wait()
	dw.mu.Lock()
	defer dw.mu.Unlock()
	return dw.err
}

// Count returns the number of lines written.
func (dw *DedupingWriter) Count() int {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	return dw.count
}
