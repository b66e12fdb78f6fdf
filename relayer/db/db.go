// Package db provides a lightweight GORM-based SQLite wrapper for persisting
// relayer state: outbox cursors, relayed messages and randomness fulfillments.
package db

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/pushchain/push-raffle-node/relayer/store"
)

const (
	// InMemorySQLiteDSN is a special DSN to create an ephemeral in-memory SQLite database.
	InMemorySQLiteDSN = ":memory:"

	// dbDirPermissions sets directory permissions to 750 (rwxr-x---).
	dbDirPermissions = 0o750
)

var (
	// gormConfig disables logging output.
	gormConfig = &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	// schemaModels lists the structs to be auto-migrated into the database.
	schemaModels = []any{
		&store.ChainCursor{},
		&store.RelayedMessage{},
		&store.VRFFulfillment{},
	}
)

// DB wraps a GORM client and provides simplified DB lifecycle management.
type DB struct {
	client *gorm.DB
}

// OpenFileDB opens (or creates) a file-backed SQLite database located in the given directory.
// If `migrateSchema` is true, all defined schema models are automatically migrated.
func OpenFileDB(dir, filename string, migrateSchema bool) (*DB, error) {
	dsn, err := prepareFilePath(dir, filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to prepare database path")
	}
	return openSQLite(dsn, migrateSchema)
}

// OpenInMemoryDB opens a non-persistent SQLite database in memory.
func OpenInMemoryDB(migrateSchema bool) (*DB, error) {
	return openSQLite(InMemorySQLiteDSN, migrateSchema)
}

func openSQLite(dsn string, migrateSchema bool) (*DB, error) {
	// Only file databases get WAL and busy timeout parameters
	if dsn != InMemorySQLiteDSN && !strings.Contains(dsn, "?") {
		dsn += "?_journal_mode=WAL&_busy_timeout=5000&cache=shared&mode=rwc"
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open SQLite database")
	}

	if migrateSchema {
		if err := db.AutoMigrate(schemaModels...); err != nil {
			return nil, errors.Wrap(err, "failed to auto-migrate database schema")
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get underlying sql.DB")
	}

	// SQLite performs best with a single connection; it also keeps one
	// in-memory database per DB instead of one per connection
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	return &DB{client: db}, nil
}

// Client returns the internal *gorm.DB instance for direct usage in queries.
func (d *DB) Client() *gorm.DB {
	return d.client
}

// Close safely closes the underlying database connection.
func (d *DB) Close() error {
	sqlDB, err := d.client.DB()
	if err != nil {
		return errors.Wrap(err, "failed to retrieve native sql.DB")
	}

	if err := sqlDB.Close(); err != nil {
		return errors.Wrap(err, "failed to close database connection")
	}

	return nil
}

// Cursor returns the next outbox sequence to read on the chain with selector.
func (d *DB) Cursor(selector uint64) (uint64, error) {
	var cursor store.ChainCursor
	err := d.client.Where("selector = ?", selector).Limit(1).Find(&cursor).Error
	if err != nil {
		return 0, errors.Wrapf(err, "failed to read cursor of chain %d", selector)
	}
	return cursor.NextSequence, nil
}

// SetCursor stores the next outbox sequence to read on the chain with selector.
func (d *DB) SetCursor(selector, next uint64) error {
	cursor := store.ChainCursor{Selector: selector, NextSequence: next}
	err := d.client.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "selector"}},
		DoUpdates: clause.AssignmentColumns([]string{"next_sequence", "updated_at"}),
	}).Create(&cursor).Error
	return errors.Wrapf(err, "failed to store cursor of chain %d", selector)
}

// GetMessage returns the relay record of messageID.
func (d *DB) GetMessage(messageID string) (store.RelayedMessage, bool, error) {
	var msg store.RelayedMessage
	res := d.client.Where("message_id = ?", messageID).Limit(1).Find(&msg)
	if res.Error != nil {
		return store.RelayedMessage{}, false, errors.Wrapf(res.Error, "failed to read message %s", messageID)
	}
	return msg, res.RowsAffected > 0, nil
}

// SaveMessage inserts or updates the relay record keyed by its message id.
func (d *DB) SaveMessage(msg *store.RelayedMessage) error {
	err := d.client.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "message_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "attempts", "dest_height", "error_msg", "updated_at",
		}),
	}).Create(msg).Error
	return errors.Wrapf(err, "failed to save message %s", msg.MessageID)
}

// RetryableMessages lists failed messages with fewer than maxAttempts attempts,
// oldest first.
func (d *DB) RetryableMessages(maxAttempts int) ([]store.RelayedMessage, error) {
	var msgs []store.RelayedMessage
	err := d.client.
		Where("status = ? AND attempts < ?", store.StatusFailed, maxAttempts).
		Order("id ASC").
		Find(&msgs).Error
	return msgs, errors.Wrap(err, "failed to list retryable messages")
}

// ListMessages returns up to limit relay records, newest first, optionally
// filtered by status. A zero limit returns all of them.
func (d *DB) ListMessages(status string, limit int) ([]store.RelayedMessage, error) {
	q := d.client.Order("id DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var msgs []store.RelayedMessage
	err := q.Find(&msgs).Error
	return msgs, errors.Wrap(err, "failed to list messages")
}

// CountMessages returns the number of relay records with status.
func (d *DB) CountMessages(status string) (int64, error) {
	var n int64
	err := d.client.Model(&store.RelayedMessage{}).Where("status = ?", status).Count(&n).Error
	return n, errors.Wrap(err, "failed to count messages")
}

// SaveFulfillment records a randomness fulfillment. A request id is recorded
// once; later records for it are ignored.
func (d *DB) SaveFulfillment(f *store.VRFFulfillment) error {
	err := d.client.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "request_id"}},
		DoNothing: true,
	}).Create(f).Error
	return errors.Wrapf(err, "failed to save fulfillment of request %d", f.RequestID)
}

// ListFulfillments returns up to limit fulfillments, newest first.
func (d *DB) ListFulfillments(limit int) ([]store.VRFFulfillment, error) {
	q := d.client.Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []store.VRFFulfillment
	err := q.Find(&out).Error
	return out, errors.Wrap(err, "failed to list fulfillments")
}

// prepareFilePath ensures the target directory exists and returns the full database file path.
// If the directory contains the in-memory DSN string, it is returned as-is.
func prepareFilePath(dir, filename string) (string, error) {
	if strings.Contains(dir, InMemorySQLiteDSN) {
		return dir, nil
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, dbDirPermissions); err != nil {
			return "", errors.Wrapf(err, "failed to create directory: %s", dir)
		}
	} else if err != nil {
		return "", errors.Wrap(err, "error checking directory")
	}

	return fmt.Sprintf("%s/%s", dir, filename), nil
}

// Reset deletes every cursor, relay record and fulfillment.
func (d *DB) Reset() error {
	return d.client.Transaction(func(tx *gorm.DB) error {
		for _, model := range schemaModels {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error; err != nil {
				return errors.Wrapf(err, "failed to clear %T", model)
			}
		}
		return nil
	})
}
