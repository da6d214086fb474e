package handlers

import (
	"context"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// MockPgPool implements PgPool for testing
type MockPgPool struct {
	QueryRowFunc func(ctx context.Context, sql string, args ...any) pgx.Row
	ExecErr      error
}

func (m *MockPgPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if m.QueryRowFunc != nil {
		return m.QueryRowFunc(ctx, sql, args...)
	}
	return &MockRow{Err: pgx.ErrNoRows}
}

func (m *MockPgPool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, m.ExecErr
}

// MockRow implements pgx.Row for testing
type MockRow struct {
	Values []interface{}
	Err    error
}

func (m *MockRow) Scan(dest ...any) error {
	if m.Err != nil {
		return m.Err
	}
	for i, val := range m.Values {
		if i < len(dest) {
			reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(val))
		}
	}
	return nil
}
