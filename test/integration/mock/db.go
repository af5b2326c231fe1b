// Package mock provides the shared test doubles backing the BDD suite:
// an in-memory sqlite database standing in for Postgres and a miniredis
// client standing in for the statistics cache.
package mock

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	dbOnce sync.Once
	dbInst *Database
)

// Database is the suite-wide sqlite database. Every scenario shares one
// connection; Reset wipes the tables between them.
type Database struct {
	Conn   *gorm.DB
	schema string
	models map[string]any
}

// NewDatabase opens the shared in-memory database once and migrates the
// given table-name-to-model mapping into it.
func NewDatabase(schema string, models map[string]any) *Database {
	dbOnce.Do(func() {
		dbInst = openDatabase(schema, models)
	})
	return dbInst
}

func openDatabase(schema string, models map[string]any) *Database {
	conn, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic("failed to open sqlite: " + err.Error())
	}
	// A single connection keeps every session on the same memory database.
	conn.SetMaxOpenConns(1)

	gormConn, err := gorm.Open(sqlite.Dialector{Conn: conn}, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		panic("failed to connect to sqlite: " + err.Error())
	}

	d := &Database{
		Conn:   gormConn,
		schema: schema,
		models: models,
	}

	if err := d.attach(); err != nil {
		panic("failed to attach schema: " + err.Error())
	}
	if err := d.migrate(); err != nil {
		panic("failed to migrate: " + err.Error())
	}
	return d
}

// attach names the memory database after the application schema. Another
// suite process holding the name already is fine.
func (d *Database) attach() error {
	err := d.Conn.Exec("ATTACH ':memory:' AS " + d.schema).Error
	if err != nil && !strings.Contains(err.Error(), "is already in use") {
		return err
	}
	return nil
}

// migrate drops and recreates every registered table.
func (d *Database) migrate() error {
	modelList := make([]any, 0, len(d.models))
	for table, m := range d.models {
		if err := d.Conn.Exec("DROP TABLE IF EXISTS " + table).Error; err != nil {
			return err
		}
		modelList = append(modelList, m)
	}

	if err := d.Conn.AutoMigrate(modelList...); err != nil {
		return err
	}

	for table, m := range d.models {
		if !d.Conn.Migrator().HasTable(m) {
			return fmt.Errorf("table %s was not created", table)
		}
	}
	return nil
}

// Reset empties every table so the next scenario starts from a clean
// database, rebuilding the schema if it went missing.
func (d *Database) Reset() error {
	for table, m := range d.models {
		if !d.Conn.Migrator().HasTable(m) {
			if err := d.migrate(); err != nil {
				return err
			}
		}
		if err := d.Conn.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

// Model returns the gorm model registered for the table name.
func (d *Database) Model(table string) (any, bool) {
	m, ok := d.models[table]
	return m, ok
}
