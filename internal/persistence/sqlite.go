package persistence

import (
	"context"
	stderrors "errors"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/angelmondragon/shopfront/pkg/errors"
)

// slotRow is the single-table schema for file-backed slot storage.
type slotRow struct {
	Name      string `gorm:"primaryKey"`
	Value     string
	UpdatedAt time.Time
}

func (slotRow) TableName() string { return "state_slots" }

// SQLiteKV stores slots in a local SQLite database.
type SQLiteKV struct {
	db *gorm.DB
}

// NewSQLiteKV opens (or creates) the database at path and migrates the slot
// table.
func NewSQLiteKV(path string) (*SQLiteKV, error) {
	if path == "" {
		return nil, errors.New(errors.CodeValidation, "sqlite path is required")
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "opening sqlite database")
	}
	if err := db.AutoMigrate(&slotRow{}); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "migrating slot table")
	}
	return &SQLiteKV{db: db}, nil
}

func (s *SQLiteKV) Get(ctx context.Context, slot string) (string, bool, error) {
	var row slotRow
	err := s.db.WithContext(ctx).First(&row, "name = ?", slot).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, errors.Wrap(errors.CodeDependency, err, "reading slot from sqlite")
	}
	return row.Value, true, nil
}

func (s *SQLiteKV) Set(ctx context.Context, slot, value string) error {
	row := slotRow{Name: slot, Value: value, UpdatedAt: time.Now().UTC()}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return errors.Wrap(errors.CodeDependency, err, "writing slot to sqlite")
	}
	return nil
}

func (s *SQLiteKV) Delete(ctx context.Context, slot string) error {
	err := s.db.WithContext(ctx).Delete(&slotRow{}, "name = ?", slot).Error
	if err != nil {
		return errors.Wrap(errors.CodeDependency, err, "deleting slot from sqlite")
	}
	return nil
}

func (s *SQLiteKV) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(errors.CodeDependency, err, "unwrapping sqlite connection")
	}
	return sqlDB.PingContext(ctx)
}

func (s *SQLiteKV) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
