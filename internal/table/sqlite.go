package table

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLiteTable is the table name used by the sqlite format.
const SQLiteTable = "features"

func init() {
	Register(Format{Name: "sqlite", Extension: ".db", File: writeSQLite})
}

func writeSQLite(ctx context.Context, path string, rows []Row) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite db: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("apply pragma: %w", err)
	}

	quoted := make([]string, len(Columns))
	placeholders := make([]string, len(Columns))
	for i, col := range Columns {
		quoted[i] = `"` + col + `"`
		placeholders[i] = "?"
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+SQLiteTable); err != nil {
		return fmt.Errorf("drop table: %w", err)
	}
	create := fmt.Sprintf("CREATE TABLE %s (position INTEGER PRIMARY KEY, %s TEXT NOT NULL)",
		SQLiteTable, strings.Join(quoted, " TEXT NOT NULL, "))
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	insert := fmt.Sprintf("INSERT INTO %s (position, %s) VALUES (?, %s)",
		SQLiteTable, strings.Join(quoted, ", "), strings.Join(placeholders, ", "))
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(Columns)+1)
	for i, row := range rows {
		args[0] = i + 1
		for j, v := range row.Values() {
			args[j+1] = v
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert row %d: %w", i+1, err)
		}
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("close statement: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return db.Close()
}
