package repo

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// TableKeys maps a mutable table name to the column its rows are addressed
// by. Only tables listed here can be written through TableRepo.
type TableKeys map[string]string

func DefaultTableKeys() TableKeys {
	return TableKeys{
		"award":                   "competition_id",
		"competition":             "competition_id",
		"experience":              "experience_id",
		"experience_category":     "experience_id",
		"experience_grade":        "experience_id",
		"experience_prerequisite": "experience_id",
		"experience_sponsor":      "experience_id",
		"feedback":                "feedback_id",
		"important_date":          "experience_id",
		"program":                 "program_id",
		"program_focus":           "program_id",
		"sponsor":                 "sponsor_id",
	}
}

var identRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func IsIdentifier(name string) bool {
	return identRegex.MatchString(name)
}

// Resolve returns the canonical table name and its key column.
func (k TableKeys) Resolve(table string) (string, string, error) {
	name := strings.ToLower(strings.TrimSpace(table))
	key, ok := k[name]
	if !ok || !IsIdentifier(name) {
		return "", "", fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	return name, key, nil
}

type quoteFunc func(string) string

// sortedColumns validates data and returns its columns in sorted order with
// the matching values.
func sortedColumns(data map[string]any) ([]string, []any, error) {
	if len(data) == 0 {
		return nil, nil, ErrEmptyData
	}

	cols := make([]string, 0, len(data))
	for c := range data {
		if !IsIdentifier(c) {
			return nil, nil, fmt.Errorf("%w: %q", ErrInvalidColumn, c)
		}
		cols = append(cols, c)
	}
	sort.Strings(cols)

	vals := make([]any, len(cols))
	for i, c := range cols {
		switch data[c].(type) {
		case map[string]any, []any:
			return nil, nil, fmt.Errorf("%w: %q", ErrInvalidValue, c)
		}
		vals[i] = data[c]
	}
	return cols, vals, nil
}

func buildInsert(quote quoteFunc, table string, cols []string) string {
	quoted := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quote(c)
		marks[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quote(table), strings.Join(quoted, ", "), strings.Join(marks, ", "))
}

func buildUpdate(quote quoteFunc, table, keyColumn string, cols []string) string {
	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = quote(c) + " = ?"
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?",
		quote(table), strings.Join(sets, ", "), quote(keyColumn))
}

func buildDelete(quote quoteFunc, table, keyColumn string) string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s = ?", quote(table), quote(keyColumn))
}

type TableRepo interface {
	// Insert writes one row and returns its key: the value supplied in data
	// for the key column, otherwise the id the store assigned.
	Insert(ctx context.Context, table string, data map[string]any) (int64, error)
	// Update sets every column in data on the rows whose key column equals rowID.
	Update(ctx context.Context, table string, rowID int64, data map[string]any) error
	// Remove deletes the rows whose key column equals rowID. keyColumn may be
	// empty; when set it must be the table's configured key column.
	Remove(ctx context.Context, table, keyColumn string, rowID int64) error
}

type tableRepo struct {
	db   *gorm.DB
	keys TableKeys
}

func NewTableRepo(db *gorm.DB, keys TableKeys) TableRepo {
	if len(keys) == 0 {
		keys = DefaultTableKeys()
	}
	return &tableRepo{db: db, keys: keys}
}

func (r *tableRepo) quote(name string) string {
	var b strings.Builder
	r.db.Dialector.QuoteTo(&b, name)
	return b.String()
}

func (r *tableRepo) Insert(ctx context.Context, table string, data map[string]any) (int64, error) {
	name, key, err := r.keys.Resolve(table)
	if err != nil {
		return 0, err
	}
	cols, vals, err := sortedColumns(data)
	if err != nil {
		return 0, err
	}
	stmt := buildInsert(r.quote, name, cols)

	var id int64
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			return tx.Raw(stmt+" RETURNING "+r.quote(key), vals...).Scan(&id).Error
		}
		// LAST_INSERT_ID() keeps the connection's previous value when this
		// insert generates none, so read the id from the statement result.
		res, err := tx.Statement.ConnPool.ExecContext(ctx, stmt, vals...)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return 0, err
	}
	if v, ok := data[key]; ok {
		if supplied, err := KeyOf(v); err == nil {
			return supplied, nil
		}
	}
	return id, nil
}

func (r *tableRepo) Update(ctx context.Context, table string, rowID int64, data map[string]any) error {
	name, key, err := r.keys.Resolve(table)
	if err != nil {
		return err
	}
	cols, vals, err := sortedColumns(data)
	if err != nil {
		return err
	}
	stmt := buildUpdate(r.quote, name, key, cols)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Exec(stmt, append(vals, rowID)...).Error
	})
}

func (r *tableRepo) Remove(ctx context.Context, table, keyColumn string, rowID int64) error {
	name, key, err := r.keys.Resolve(table)
	if err != nil {
		return err
	}
	if keyColumn != "" && keyColumn != key {
		return fmt.Errorf("%w: %s has key %s, got %s", ErrKeyColumnMismatch, name, key, keyColumn)
	}
	stmt := buildDelete(r.quote, name, key)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Exec(stmt, rowID).Error
	})
}
