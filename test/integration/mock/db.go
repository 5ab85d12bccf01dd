//go:build integration

package mock

import (
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/avecbanker/backend/config"
	"github.com/avecbanker/backend/internal/infra/db"
	"github.com/avecbanker/backend/internal/integration/persistence/model"
)

var once sync.Once
var testDb *Db

// Db is a shared in-memory SQLite database migrated with every persisted model.
type Db struct {
	Database *db.Database
	DbConn   *gorm.DB
	models   map[string]any
	order    []string
}

// NewDb opens the shared database on first use.
func NewDb() *Db {
	once.Do(func() {
		testDb = open()
	})
	return testDb
}

func open() *Db {
	database, err := db.NewConnection(&config.DatabaseConfig{
		URL: "sqlite:file:avecbanker_integration?mode=memory&cache=shared",
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}
	if err := database.Migrate(); err != nil {
		panic("failed to migrate database. err: " + err.Error())
	}

	d := &Db{
		Database: database,
		DbConn:   database.DB(),
		models:   map[string]any{},
	}
	for _, m := range model.All() {
		stmt := &gorm.Statement{DB: d.DbConn}
		if err := stmt.Parse(m); err != nil {
			panic(err)
		}
		d.models[stmt.Schema.Table] = m
		d.order = append(d.order, stmt.Schema.Table)
	}
	return d
}

// ClearDB deletes every row, children before parents.
func (d *Db) ClearDB() error {
	for i := len(d.order) - 1; i >= 0; i-- {
		table := d.order[i]
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(d.models[table]).Error
		if err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// GetModel returns the model stored in table.
func (d *Db) GetModel(table string) (any, bool) {
	m, ok := d.models[table]
	return m, ok
}

// Count returns the number of rows in table.
func (d *Db) Count(table string) (int64, error) {
	m, ok := d.GetModel(table)
	if !ok {
		return 0, fmt.Errorf("unknown table %s", table)
	}
	var count int64
	err := d.DbConn.Model(m).Count(&count).Error
	return count, err
}
