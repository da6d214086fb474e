package store

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/FlowDynamics828/Sports-Analytics-sub004/internal/models"
)

// Prometheus metrics
var (
	writesEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "prediction_writer_enqueued_total",
		Help: "Total number of prediction records enqueued for persistence",
	})

	writesShed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "prediction_writer_shed_total",
		Help: "Total number of prediction records dropped because the queue was full",
	})

	writesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "prediction_writer_failed_total",
		Help: "Total number of prediction records that failed to persist",
	})

	writerQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "prediction_writer_queue_depth",
		Help: "Current depth of the prediction writer queue",
	})

	writerBatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "prediction_writer_batch_duration_seconds",
		Help:    "Duration of batch inserts to ClickHouse",
		Buckets: prometheus.DefBuckets,
	})
)

// WriterConfig configures the async prediction writer.
type WriterConfig struct {
	Store         *ClickHouseStore
	Logger        *zap.Logger
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
}

// Writer buffers prediction records and flushes them to ClickHouse in
// batches. Persistence is a durability optimization, not a correctness
// dependency: a full queue sheds load instead of blocking the prediction
// path, and reads pass straight through to the store.
type Writer struct {
	config WriterConfig
	queue  chan *models.PredictionRecord
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
	logger *zap.SugaredLogger
}

func NewWriter(cfg WriterConfig) *Writer {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1000
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Writer{
		config: cfg,
		queue:  make(chan *models.PredictionRecord, cfg.QueueSize),
		logger: cfg.Logger.Sugar(),
	}
}

// Start launches the flusher goroutine.
func (w *Writer) Start(ctx context.Context) {
	w.ctx, w.cancel = context.WithCancel(ctx)

	w.wg.Add(1)
	go w.flusher()
	go w.reportQueueDepth()

	w.logger.Infow("Prediction writer started",
		"queueSize", w.config.QueueSize,
		"batchSize", w.config.BatchSize,
		"flushInterval", w.config.FlushInterval,
	)
}

// Stop drains the queue and flushes the final batch.
func (w *Writer) Stop() {
	w.logger.Info("Stopping prediction writer...")
	if w.cancel != nil {
		w.cancel()
	}
	close(w.queue)
	w.wg.Wait()
	w.logger.Info("Prediction writer stopped")
}

// Insert enqueues a record for batched persistence. It never blocks the
// prediction path: a full queue drops the record and reports the shed.
func (w *Writer) Insert(ctx context.Context, rec *models.PredictionRecord) error {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Warnw("Failed to enqueue prediction (writer stopped)", "error", r)
		}
	}()

	select {
	case w.queue <- rec:
		writesEnqueued.Inc()
		return nil
	default:
		writesShed.Inc()
		w.logger.Warnw("Prediction writer queue full, dropping record", "prediction_id", rec.ID)
		return nil
	}
}

// FindRecent reads pass through to the store directly; the queue only exists
// on the write path.
func (w *Writer) FindRecent(ctx context.Context, factor, sport, competition string, limit int) ([]models.PredictionRecord, error) {
	return w.config.Store.FindRecent(ctx, factor, sport, competition, limit)
}

func (w *Writer) flusher() {
	defer w.wg.Done()

	batch := make([]*models.PredictionRecord, 0, w.config.BatchSize)
	ticker := time.NewTicker(w.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		start := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := w.config.Store.insertBatch(ctx, batch)
		cancel()

		if err != nil {
			writesFailed.Add(float64(len(batch)))
			w.logger.Errorw("Prediction batch insert failed", "error", err, "batchSize", len(batch))
		}
		writerBatchDuration.Observe(time.Since(start).Seconds())

		batch = batch[:0]
	}

	for {
		select {
		case rec, ok := <-w.queue:
			if !ok {
				flush()
				return
			}
			batch = append(batch, rec)
			if len(batch) >= w.config.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()
		}
	}
}

func (w *Writer) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			writerQueueDepth.Set(float64(len(w.queue)))
		case <-w.ctx.Done():
			return
		}
	}
}
