// Package mock provides in-memory stand-ins for the external services the
// integration suite runs against.
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

var dbOnce sync.Once
var sharedDb *Db

// Db wraps a shared-memory sqlite connection used as the test database.
// A single connection is kept open for the whole suite so the in-memory
// database survives between scenarios.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
	schema string
}

// NewDb returns the suite-wide test database, opening it on first use.
// The models map associates table names with the gorm models migrated
// into the database.
func NewDb(schema string, models map[string]any) *Db {
	dbOnce.Do(func() {
		sharedDb = openTestDb(schema, models)
	})
	return sharedDb
}

func openTestDb(schema string, models map[string]any) *Db {
	conn, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}
	// The in-memory database is dropped when its last connection closes.
	conn.SetMaxOpenConns(1)

	gormDb, err := gorm.Open(sqlite.Dialector{Conn: conn}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to open test database: " + err.Error())
	}

	d := &Db{DbConn: gormDb, schema: schema, models: models}
	if err := d.migrate(); err != nil {
		panic(fmt.Sprintf("failed to prepare test database: %v", err))
	}
	return d
}

// ClearDB wipes every registered table, leaving the schema in place. It is
// called before each scenario.
func (d *Db) ClearDB() error {
	for table, model := range d.models {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error
		if err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}

		err = d.DbConn.Exec("DELETE FROM sqlite_sequence WHERE name = ?", table).Error
		if err != nil && !strings.Contains(err.Error(), "no such table: sqlite_sequence") {
			return err
		}
	}
	return nil
}

// GetModel returns the gorm model registered for a table name.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}

func (d *Db) migrate() error {
	modelList := make([]any, 0, len(d.models))
	for _, model := range d.models {
		modelList = append(modelList, model)
	}

	if err := d.DbConn.AutoMigrate(modelList...); err != nil {
		return err
	}

	for _, model := range modelList {
		if !d.DbConn.Migrator().HasTable(model) {
			return fmt.Errorf("table for model %T was not created", model)
		}
	}
	return nil
}
