package labels

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// Sink receives dataset entries.
type Sink interface {
	Put(ctx context.Context, e Entry) error
	Close(ctx context.Context) error
}

// JSONLSink writes one JSON object per line.
type JSONLSink struct {
	w   io.Writer
	enc *json.Encoder
}

// NewJSONLSink writes to w. Closing the sink closes w when it is an
// io.Closer.
func NewJSONLSink(w io.Writer) *JSONLSink {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &JSONLSink{w: w, enc: enc}
}

// Put writes e as one line.
func (s *JSONLSink) Put(_ context.Context, e Entry) error {
	if err := s.enc.Encode(e); err != nil {
		return fmt.Errorf("write entry %s: %w", e.CommitHash, err)
	}
	return nil
}

// Close closes the underlying writer if it can be closed.
func (s *JSONLSink) Close(context.Context) error {
	if c, ok := s.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
