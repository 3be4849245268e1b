package repo

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type call struct {
	query string
	args  []any
}

// stubDB records every statement and answers from canned rows.
type stubDB struct {
	calls   []call
	row     []any
	rowErr  error
	rows    [][]any
	tag     pgconn.CommandTag
	execErr error
}

func (s *stubDB) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	s.calls = append(s.calls, call{query, args})
	return s.tag, s.execErr
}

func (s *stubDB) QueryRow(_ context.Context, query string, args ...any) pgx.Row {
	s.calls = append(s.calls, call{query, args})
	return stubRow{values: s.row, err: s.rowErr}
}

func (s *stubDB) Query(_ context.Context, query string, args ...any) (pgx.Rows, error) {
	s.calls = append(s.calls, call{query, args})
	return &stubRows{data: s.rows, idx: -1}, nil
}

type stubRow struct {
	values []any
	err    error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if r.values == nil {
		return pgx.ErrNoRows
	}
	return assign(dest, r.values)
}

type stubRows struct {
	data [][]any
	idx  int
}

func (r *stubRows) Close()                                       {}
func (r *stubRows) Err() error                                   { return nil }
func (r *stubRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *stubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *stubRows) Conn() *pgx.Conn                              { return nil }
func (r *stubRows) RawValues() [][]byte                          { return nil }

func (r *stubRows) Values() ([]any, error) {
	return nil, fmt.Errorf("values not supported in test rows")
}

func (r *stubRows) Next() bool {
	r.idx++
	return r.idx < len(r.data)
}

func (r *stubRows) Scan(dest ...any) error {
	return assign(dest, r.data[r.idx])
}

func assign(dest, values []any) error {
	if len(dest) != len(values) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(values))
	}
	for i, d := range dest {
		target := reflect.ValueOf(d).Elem()
		if values[i] == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		v := reflect.ValueOf(values[i])
		if !v.Type().AssignableTo(target.Type()) {
			return fmt.Errorf("scan column %d: %s into %s", i, v.Type(), target.Type())
		}
		target.Set(v)
	}
	return nil
}
