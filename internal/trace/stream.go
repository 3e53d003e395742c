package trace

import (
	"bufio"
	"io"
	"sync"
	"time"
)

// StreamTracer writes every event to w as it arrives.
type StreamTracer struct {
	mu     sync.Mutex
	w      *bufio.Writer
	closer io.Closer
	level  Level
	format Format
	start  time.Time
	seq    uint64
}

func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	st := &StreamTracer{
		w:      bufio.NewWriter(w),
		level:  level,
		format: format,
		start:  time.Now(),
	}
	if c, ok := w.(io.Closer); ok {
		st.closer = c
	}
	return st
}

func (s *StreamTracer) Emit(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	ev.Seq = s.seq
	// ошибки записи трейса не должны ронять генерацию
	_ = WriteEvent(s.w, ev, s.format, s.start)
}

func (s *StreamTracer) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Flush()
}

func (s *StreamTracer) Close() error {
	if err := s.Flush(); err != nil {
		return err
	}
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

func (s *StreamTracer) Level() Level  { return s.level }
func (s *StreamTracer) Enabled() bool { return s.level > LevelOff }
