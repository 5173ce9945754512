// Package projdb reads project databases: self-describing SQLite
// files holding the sequences, annotations and orderings a project
// accumulates. Each flavor (contigs, pan, profile, genome storage)
// carries a `self` key/value table identifying it.
package projdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	// SQLite driver, registered as "sqlite"
	_ "modernc.org/sqlite"

	"github.com/omicsdesk/genomaps/pkg/projdb/status"
)

// Database flavors found in the self table under the db_type key
const (
	TypeContigs       = "contigs"
	TypePan           = "pan"
	TypeProfile       = "profile"
	TypeGenomeStorage = "genomestorage"
)

// Self table keys used across database flavors
const (
	selfDBType          = "db_type"
	selfVersion         = "version"
	selfProjectName     = "project_name"
	selfFunctionSources = "gene_function_sources"
)

// KOfamSource is the annotation source tagging KO ortholog hits
const KOfamSource = "KOfam"

// DB is an open project database of any flavor
type DB struct {
	path  string
	sqldb *sql.DB
	self  map[string]string
}

// Open a project database read-only and load its self table
func Open(ctx context.Context, path string) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, status.ErrNotExists.Wrap(err)
	}
	sqldb, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return nil, status.ErrNotDatabase.Wrap(err)
	}

	db := &DB{path: path, sqldb: sqldb, self: make(map[string]string)}
	rows, err := sqldb.QueryContext(ctx, `SELECT key, value FROM self`)
	if err != nil {
		_ = sqldb.Close()
		return nil, status.ErrNotDatabase.WrapMessage(err, "%s", path)
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		var value sql.NullString
		if err := rows.Scan(&key, &value); err != nil {
			_ = sqldb.Close()
			return nil, status.ErrNotDatabase.Wrap(err)
		}
		if value.Valid {
			db.self[key] = value.String
		}
	}
	if err := rows.Err(); err != nil {
		_ = sqldb.Close()
		return nil, status.ErrNotDatabase.Wrap(err)
	}
	if db.Type() == "" {
		_ = sqldb.Close()
		return nil, status.ErrNotDatabase.WrapMessage(nil, "%s carries no db_type", path)
	}
	return db, nil
}

// OpenTyped opens a database and verifies its flavor
func OpenTyped(ctx context.Context, path string, wantTypes ...string) (*DB, error) {
	db, err := Open(ctx, path)
	if err != nil {
		return nil, err
	}
	for _, want := range wantTypes {
		if db.Type() == want {
			return db, nil
		}
	}
	defer db.Close()
	return nil, status.ErrDBType.WrapMessage(nil,
		"%s is of type %q, expected %s", path, db.Type(), strings.Join(wantTypes, " or "))
}

// Close the underlying connection
func (db *DB) Close() error {
	return db.sqldb.Close()
}

// Path of the database file
func (db *DB) Path() string { return db.path }

// Type of the database, from the self table
func (db *DB) Type() string { return db.self[selfDBType] }

// Version of the database schema
func (db *DB) Version() string { return db.self[selfVersion] }

// ProjectName recorded in the self table
func (db *DB) ProjectName() string { return db.self[selfProjectName] }

// SelfValue reads an arbitrary self table entry
func (db *DB) SelfValue(key string) (string, bool) {
	value, ok := db.self[key]
	return value, ok
}

// stringColumn runs a query expected to yield a single string column
func (db *DB) stringColumn(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	rows, err := db.sqldb.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, status.ErrQuery.WrapMessage(err, "%s", db.path)
	}
	defer rows.Close()
	var values []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, status.ErrQuery.Wrap(err)
		}
		values = append(values, value)
	}
	if err := rows.Err(); err != nil {
		return nil, status.ErrQuery.Wrap(err)
	}
	return values, nil
}

func splitCommaList(value string) []string {
	if value == "" {
		return nil
	}
	fields := strings.Split(value, ",")
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		if trimmed := strings.TrimSpace(field); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
