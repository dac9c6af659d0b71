package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"testing"
)

func TestProcBuildsCommand(t *testing.T) {
	cmd := Proc("sp_getUserProfile", P("UsersId", 7))
	if cmd.Text != "sp_getUserProfile" {
		t.Fatalf("text = %q", cmd.Text)
	}
	if len(cmd.Params) != 1 || cmd.Params[0].Name != "UsersId" || cmd.Params[0].Value != 7 {
		t.Fatalf("params = %#v", cmd.Params)
	}
}

func TestResultFirst(t *testing.T) {
	if rs := (Result{}).First(); rs != nil {
		t.Fatalf("empty result First = %#v", rs)
	}
	res := Result{Recordsets: []Recordset{
		{{"Id": int64(1)}},
		{{"Id": int64(2)}},
	}}
	first := res.First()
	if len(first) != 1 || first[0]["Id"] != int64(1) {
		t.Fatalf("First = %#v", first)
	}
}

func TestRunMultiNameCountMismatch(t *testing.T) {
	s := New(nil)
	_, err := s.RunMulti(context.Background(), []Command{Proc("sp_a")}, nil)
	if !errors.Is(err, ErrNameCount) {
		t.Fatalf("err = %v, want ErrNameCount", err)
	}
}

func TestRunMultiSkipsBlankCommands(t *testing.T) {
	// Blank commands never reach the database, so a nil pool is safe here.
	s := New(nil)
	out, err := s.RunMulti(context.Background(),
		[]Command{{Text: ""}, {Text: "   "}},
		[]string{"menuData", "settings"})
	if err != nil {
		t.Fatalf("RunMulti: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("out = %#v, want empty", out)
	}
	if rs, ok := out["menuData"]; ok || rs != nil {
		t.Fatalf("menuData = %#v", rs)
	}
}

func TestCommandLabelStripsParams(t *testing.T) {
	got := commandLabel("sp_updUserProfile @UsersId, @UserName")
	if got != "sp_updUserProfile" {
		t.Fatalf("label = %q", got)
	}
	if got := commandLabel("  sp_x  "); got != "sp_x" {
		t.Fatalf("label = %q", got)
	}
}

// rowcountDriver serves Exec calls whose result cannot report an affected
// row count, as the mssql driver does for some procedure calls.
type rowcountDriver struct{}

func (rowcountDriver) Open(string) (driver.Conn, error) { return rowcountConn{}, nil }

type rowcountConn struct{}

func (rowcountConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not implemented") }
func (rowcountConn) Close() error                        { return nil }
func (rowcountConn) Begin() (driver.Tx, error)           { return nil, errors.New("not implemented") }

func (rowcountConn) ExecContext(context.Context, string, []driver.NamedValue) (driver.Result, error) {
	return rowcountResult{}, nil
}

type rowcountResult struct{}

func (rowcountResult) LastInsertId() (int64, error) { return 0, nil }
func (rowcountResult) RowsAffected() (int64, error) { return 0, errors.New("rowcount unavailable") }

func TestExecSurfacesRowsAffectedError(t *testing.T) {
	sql.Register("storetest-rowcount", rowcountDriver{})
	db, err := sql.Open("storetest-rowcount", "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	s := New(db)
	_, err = s.Exec(context.Background(), Proc("sp_markRead", P("ChatId", 3)))
	if err == nil {
		t.Fatal("expected rows affected error")
	}
	if !strings.Contains(err.Error(), "rows affected") {
		t.Fatalf("err = %v", err)
	}
}
