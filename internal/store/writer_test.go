package store

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestWriterBatchesAndDrainsOnStop(t *testing.T) {
	conn := &MockConn{}
	w := NewWriter(WriterConfig{
		Store:         NewClickHouseStore(conn, zap.NewNop()),
		Logger:        zap.NewNop(),
		QueueSize:     100,
		BatchSize:     10,
		FlushInterval: time.Hour, // only the shutdown flush should fire
	})
	w.Start(context.Background())

	for i := 0; i < 5; i++ {
		if err := w.Insert(context.Background(), testRecord("p")); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}
	w.Stop()

	if conn.sentRows() != 5 {
		t.Errorf("sent rows = %d, want 5 after drain", conn.sentRows())
	}
}

func TestWriterFlushesFullBatch(t *testing.T) {
	conn := &MockConn{}
	w := NewWriter(WriterConfig{
		Store:         NewClickHouseStore(conn, zap.NewNop()),
		Logger:        zap.NewNop(),
		QueueSize:     100,
		BatchSize:     2,
		FlushInterval: time.Hour,
	})
	w.Start(context.Background())
	defer w.Stop()

	for i := 0; i < 4; i++ {
		w.Insert(context.Background(), testRecord("p"))
	}

	// The flusher works asynchronously; give it a moment.
	deadline := time.Now().Add(2 * time.Second)
	for conn.sentRows() < 4 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if conn.sentRows() != 4 {
		t.Errorf("sent rows = %d, want 4 via full-batch flushes", conn.sentRows())
	}
}

func TestWriterShedsWhenQueueFull(t *testing.T) {
	conn := &MockConn{}
	w := NewWriter(WriterConfig{
		Store:     NewClickHouseStore(conn, zap.NewNop()),
		Logger:    zap.NewNop(),
		QueueSize: 1,
		BatchSize: 10,
	})
	// Not started: nothing consumes the queue.

	if err := w.Insert(context.Background(), testRecord("kept")); err != nil {
		t.Fatalf("first Insert() error = %v", err)
	}
	if err := w.Insert(context.Background(), testRecord("shed")); err != nil {
		t.Fatalf("shed Insert() must not error, got %v", err)
	}
	if len(w.queue) != 1 {
		t.Errorf("queue depth = %d, want 1 (second record shed)", len(w.queue))
	}
}

func TestWriterFindRecentPassthrough(t *testing.T) {
	conn := &MockConn{}
	w := NewWriter(WriterConfig{
		Store:  NewClickHouseStore(conn, zap.NewNop()),
		Logger: zap.NewNop(),
	})

	records, err := w.FindRecent(context.Background(), "factor", "soccer", "all", 10)
	if err != nil {
		t.Fatalf("FindRecent() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records = %d, want 0 from empty store", len(records))
	}
}
