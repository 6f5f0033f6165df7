package stores

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// GORMTraceStore implements TraceStore for SQLite/PostgreSQL via GORM
type GORMTraceStore struct {
	db *gorm.DB
}

// NewGORMTraceStore creates a trace store from an existing GORM database connection
func NewGORMTraceStore(db *gorm.DB) (*GORMTraceStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	// Auto-migrate the trace table
	if err := db.AutoMigrate(&InteractionTrace{}); err != nil {
		return nil, fmt.Errorf("failed to migrate interaction_traces table: %w", err)
	}

	return &GORMTraceStore{db: db}, nil
}

// SaveTrace saves a single trace event
func (s *GORMTraceStore) SaveTrace(ctx context.Context, trace *InteractionTrace) error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	return s.db.WithContext(ctx).Create(trace).Error
}

func (s *GORMTraceStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database connection is nil")
	}
	res := s.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&InteractionTrace{})
	return res.RowsAffected, res.Error
}

// Close closes the database connection
func (s *GORMTraceStore) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks if the database connection is alive
func (s *GORMTraceStore) Ping(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// NopTraceStore discards everything. It is used when tracing is disabled.
type NopTraceStore struct{}

func (NopTraceStore) SaveTrace(context.Context, *InteractionTrace) error { return nil }

func (NopTraceStore) DeleteOlderThan(context.Context, time.Time) (int64, error) { return 0, nil }

func (NopTraceStore) Close() error { return nil }
