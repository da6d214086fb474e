// Package store persists predictions to ClickHouse. The table is append-only:
// predictions are inserted once and read back newest-first by the engine's
// history learner.
package store

import (
	"context"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"go.uber.org/zap"

	"github.com/FlowDynamics828/Sports-Analytics-sub004/internal/models"
)

// Schema creates the predictions table. Applied out-of-band (no migration
// framework; mirrors how the raw events table is provisioned).
const Schema = `
CREATE TABLE IF NOT EXISTS sports_analytics.predictions (
	id           String,
	kind         LowCardinality(String),
	factor       String,
	sport        LowCardinality(String),
	competition  LowCardinality(String),
	participants Array(String),
	prob_home    Float64,
	prob_away    Float64,
	prob_draw    Float64,
	confidence   Float64,
	insights     Array(String),
	created_at   DateTime64(3)
) ENGINE = MergeTree()
ORDER BY (factor, sport, competition, created_at)
`

const insertQuery = `
	INSERT INTO sports_analytics.predictions (
		id, kind, factor, sport, competition, participants,
		prob_home, prob_away, prob_draw, confidence, insights, created_at
	)
`

// ClickHouseStore is the synchronous persistence gateway.
type ClickHouseStore struct {
	conn   driver.Conn
	logger *zap.SugaredLogger
}

func NewClickHouseStore(conn driver.Conn, logger *zap.Logger) *ClickHouseStore {
	return &ClickHouseStore{conn: conn, logger: logger.Sugar()}
}

// Insert writes a single prediction record.
func (s *ClickHouseStore) Insert(ctx context.Context, rec *models.PredictionRecord) error {
	return s.insertBatch(ctx, []*models.PredictionRecord{rec})
}

func (s *ClickHouseStore) insertBatch(ctx context.Context, recs []*models.PredictionRecord) error {
	batch, err := s.conn.PrepareBatch(ctx, insertQuery)
	if err != nil {
		return err
	}

	for _, rec := range recs {
		err := batch.Append(
			rec.ID,
			rec.Kind,
			rec.Factor,
			rec.Sport,
			rec.Competition,
			rec.Participants,
			rec.ProbHome,
			rec.ProbAway,
			rec.ProbDraw,
			rec.Confidence,
			rec.Insights,
			rec.CreatedAt,
		)
		if err != nil {
			s.logger.Warnw("Failed to append prediction to batch", "error", err, "prediction_id", rec.ID)
			continue
		}
	}

	return batch.Send()
}

// FindRecent returns up to limit predictions matching the factor text, sport
// and competition exactly, newest first.
func (s *ClickHouseStore) FindRecent(ctx context.Context, factor, sport, competition string, limit int) ([]models.PredictionRecord, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT id, kind, factor, sport, competition, participants,
		       prob_home, prob_away, prob_draw, confidence, insights, created_at
		FROM sports_analytics.predictions
		WHERE factor = ? AND sport = ? AND competition = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, factor, sport, competition, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.PredictionRecord
	for rows.Next() {
		var rec models.PredictionRecord
		var createdAt time.Time
		err := rows.Scan(
			&rec.ID,
			&rec.Kind,
			&rec.Factor,
			&rec.Sport,
			&rec.Competition,
			&rec.Participants,
			&rec.ProbHome,
			&rec.ProbAway,
			&rec.ProbDraw,
			&rec.Confidence,
			&rec.Insights,
			&createdAt,
		)
		if err != nil {
			s.logger.Warnw("Failed to scan prediction row", "error", err)
			continue
		}
		rec.CreatedAt = createdAt
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Ping reports store reachability for readiness checks.
func (s *ClickHouseStore) Ping(ctx context.Context) error {
	return s.conn.Ping(ctx)
}
