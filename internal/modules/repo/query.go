package repo

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// Record is one shaped row: field name to column value.
type Record = map[string]any

// Querier runs a read statement and returns every row as a Record keyed by
// column name, in the order the store returned them.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) ([]Record, error)
}

type gormQuerier struct{ db *gorm.DB }

func NewQuerier(db *gorm.DB) Querier {
	return &gormQuerier{db: db}
}

func (q *gormQuerier) Query(ctx context.Context, sql string, args ...any) ([]Record, error) {
	rows, err := q.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := make([]Record, 0)
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		rec := make(Record, len(cols))
		for i, col := range cols {
			rec[col] = normalizeValue(vals[i])
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// normalizeValue turns driver byte slices into strings so records serialise
// as text rather than base64.
func normalizeValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

// BuildColumns qualifies every field with the table name for a SELECT list:
// BuildColumns("award", []string{"type", "description"}) is
// "award.type, award.description".
func BuildColumns(table string, fields []string) string {
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = table + "." + f
	}
	return strings.Join(cols, ", ")
}

// KeyOf converts a key column value into an int64 id.
func KeyOf(v any) (int64, error) {
	switch k := v.(type) {
	case int64:
		return k, nil
	case int:
		return int64(k), nil
	case int32:
		return int64(k), nil
	case int16:
		return int64(k), nil
	case int8:
		return int64(k), nil
	case uint64:
		if k <= math.MaxInt64 {
			return int64(k), nil
		}
	case uint32:
		return int64(k), nil
	case uint16:
		return int64(k), nil
	case uint8:
		return int64(k), nil
	case uint:
		if uint64(k) <= math.MaxInt64 {
			return int64(k), nil
		}
	case float64:
		if k == float64(int64(k)) {
			return int64(k), nil
		}
	case string:
		if n, err := strconv.ParseInt(k, 10, 64); err == nil {
			return n, nil
		}
	case []byte:
		if n, err := strconv.ParseInt(string(k), 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%w: %v (%T)", ErrNonIntegerKey, v, v)
}

func shape(row Record, keyField string, fields []string) Record {
	rec := make(Record, len(fields))
	for _, f := range fields {
		if f != keyField {
			rec[f] = row[f]
		}
	}
	return rec
}

// QueryGrouped runs sql and keeps one record per keyField value. When two
// rows share a key the later one wins; use QueryGroupedMulti for one-to-many
// relations.
func QueryGrouped(ctx context.Context, q Querier, sql, keyField string, fields []string, args ...any) (map[int64]Record, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	out := make(map[int64]Record, len(rows))
	for _, row := range rows {
		key, err := KeyOf(row[keyField])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", keyField, err)
		}
		out[key] = shape(row, keyField, fields)
	}
	return out, nil
}

// QueryGroupedMulti runs sql and collects every record under its keyField
// value, keeping the store's row order within each key.
func QueryGroupedMulti(ctx context.Context, q Querier, sql, keyField string, fields []string, args ...any) (map[int64][]Record, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	out := make(map[int64][]Record)
	for _, row := range rows {
		key, err := KeyOf(row[keyField])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", keyField, err)
		}
		out[key] = append(out[key], shape(row, keyField, fields))
	}
	return out, nil
}
