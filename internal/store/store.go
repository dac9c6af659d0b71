// Package store executes parameterized queries and stored-procedure calls
// against the relational store. A Command pairs the command text (a bare
// procedure name or a literal query) with named parameters; values are
// always bound via sql.Named, never interpolated into the text.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Row is a single record keyed by column name.
type Row map[string]any

// Recordset is one named sequence of rows as returned by the store.
type Recordset []Row

// Result carries every recordset a call produced plus the affected-row
// count for commands that return none.
type Result struct {
	Recordsets   []Recordset `json:"recordsets"`
	RowsAffected int64       `json:"rowsAffected"`
}

// First returns the first recordset, or nil when the call produced none.
func (r Result) First() Recordset {
	if len(r.Recordsets) == 0 {
		return nil
	}
	return r.Recordsets[0]
}

// Param is one named binding.
type Param struct {
	Name  string
	Value any
}

// P builds a Param.
func P(name string, value any) Param { return Param{Name: name, Value: value} }

// Command describes one store call.
type Command struct {
	Text   string
	Params []Param
}

// Proc builds a stored-procedure command. The driver executes a bare
// procedure name as a procedure call with the given named parameters.
func Proc(name string, params ...Param) Command {
	return Command{Text: name, Params: params}
}

// Query builds a literal-query command.
func Query(text string, params ...Param) Command {
	return Command{Text: text, Params: params}
}

// Querier is the store interface handlers depend on. Implemented by
// SQLStore; tests substitute fakes.
type Querier interface {
	// Run executes one command and returns every recordset it produces.
	Run(ctx context.Context, cmd Command) (Result, error)
	// Exec executes a command that returns no recordset and reports the
	// number of affected rows.
	Exec(ctx context.Context, cmd Command) (int64, error)
	// RunMulti executes independent commands and maps each output name to
	// the first recordset of the matching command. Blank commands are
	// skipped; their name resolves to nil.
	RunMulti(ctx context.Context, cmds []Command, names []string) (map[string]Recordset, error)
}

// SQLStore implements Querier over a shared *sql.DB pool.
type SQLStore struct{ DB *sql.DB }

func New(db *sql.DB) *SQLStore { return &SQLStore{DB: db} }

// ErrNameCount reports a RunMulti call whose names do not line up with its
// commands.
var ErrNameCount = errors.New("store: command and name counts differ")

func (s *SQLStore) Run(ctx context.Context, cmd Command) (Result, error) {
	rows, err := s.DB.QueryContext(ctx, cmd.Text, namedArgs(cmd.Params)...)
	if err != nil {
		return Result{}, fmt.Errorf("store: run %q: %w", commandLabel(cmd.Text), err)
	}
	defer rows.Close()

	var res Result
	for {
		rs, err := scanRecordset(rows)
		if err != nil {
			return Result{}, fmt.Errorf("store: scan %q: %w", commandLabel(cmd.Text), err)
		}
		res.Recordsets = append(res.Recordsets, rs)
		if !rows.NextResultSet() {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return Result{}, fmt.Errorf("store: read %q: %w", commandLabel(cmd.Text), err)
	}
	return res, nil
}

func (s *SQLStore) Exec(ctx context.Context, cmd Command) (int64, error) {
	res, err := s.DB.ExecContext(ctx, cmd.Text, namedArgs(cmd.Params)...)
	if err != nil {
		return 0, fmt.Errorf("store: exec %q: %w", commandLabel(cmd.Text), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("store: exec %q: rows affected: %w", commandLabel(cmd.Text), err)
	}
	return n, nil
}

func (s *SQLStore) RunMulti(ctx context.Context, cmds []Command, names []string) (map[string]Recordset, error) {
	if len(cmds) != len(names) {
		return nil, ErrNameCount
	}
	out := make(map[string]Recordset, len(cmds))
	for i, cmd := range cmds {
		name := names[i]
		if strings.TrimSpace(cmd.Text) == "" || name == "" {
			continue
		}
		res, err := s.Run(ctx, cmd)
		if err != nil {
			return nil, err
		}
		out[name] = res.First()
	}
	return out, nil
}

func namedArgs(params []Param) []any {
	args := make([]any, 0, len(params))
	for _, p := range params {
		args = append(args, sql.Named(p.Name, p.Value))
	}
	return args
}

func scanRecordset(rows *sql.Rows) (Recordset, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	rs := Recordset{}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(Row, len(cols))
		for i, col := range cols {
			if b, ok := vals[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = vals[i]
		}
		rs = append(rs, row)
	}
	return rs, rows.Err()
}

// commandLabel trims a command to its leading word so parameter values
// never end up in error messages or logs.
func commandLabel(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.IndexAny(text, " \t\n"); i > 0 {
		return text[:i]
	}
	return text
}
