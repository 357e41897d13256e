// Package store implements service.Service on SQLite through GORM.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"todo/internal/service"
	"todo/internal/task"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// ErrCorruptRow is returned when a stored row cannot be read back as a task.
var ErrCorruptRow = errors.New("corrupt row")

// record is the row layout of the tasks table.
type record struct {
	ID        int    `gorm:"primaryKey;autoIncrement"`
	Title     string `gorm:"not null"`
	Priority  string `gorm:"size:6;not null"`
	Completed bool   `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for record.
func (record) TableName() string {
	return "tasks"
}

func fromTask(t task.Task) record {
	return record{
		ID:        t.ID,
		Title:     t.Title,
		Priority:  t.Priority.String(),
		Completed: t.Completed,
	}
}

func (r record) toTask() (task.Task, error) {
	p, err := task.ParsePriority(r.Priority)
	if err != nil {
		return task.Task{}, fmt.Errorf("%w %d: %v", ErrCorruptRow, r.ID, err)
	}
	return task.Task{ID: r.ID, Title: r.Title, Priority: p, Completed: r.Completed}, nil
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for store diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithDebugSQL makes GORM log every statement.
func WithDebugSQL(on bool) Option {
	return func(s *Store) { s.debugSQL = on }
}

// Store is a SQLite-backed task store.
type Store struct {
	db       *gorm.DB
	log      *slog.Logger
	debugSQL bool
}

var _ service.Service = (*Store)(nil)

// Open opens (creating if needed) the database at path and migrates it.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(s)
	}

	logLevel := logger.Silent
	if s.debugSQL {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	if path == MemoryPath {
		// Each pooled connection would otherwise see its own empty database.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&record{}); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			sqlDB.Close()
		}
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	s.db = db
	s.log.Debug("store opened", "path", path)
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// ListTasks returns tasks matching filter, ordered by ID.
func (s *Store) ListTasks(ctx context.Context, filter service.Filter) ([]task.Task, error) {
	q := s.db.WithContext(ctx).Order("id")
	if !filter.All {
		q = q.Where("completed = ?", false)
	}
	if filter.Priority != 0 {
		q = q.Where("priority = ?", filter.Priority.String())
	}

	var rows []record
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := make([]task.Task, 0, len(rows))
	for _, r := range rows {
		t, err := r.toTask()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// GetTask returns the task with the given ID.
func (s *Store) GetTask(ctx context.Context, id int) (task.Task, error) {
	var r record
	if err := s.db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return task.Task{}, fmt.Errorf("%w: %d", service.ErrNotFound, id)
		}
		return task.Task{}, fmt.Errorf("failed to get task %d: %w", id, err)
	}
	return r.toTask()
}

// CreateTask stores a new open task and returns it with its allocated ID.
func (s *Store) CreateTask(ctx context.Context, title string, p task.Priority) (task.Task, error) {
	t, err := task.New(0, title, p)
	if err != nil {
		return task.Task{}, err
	}

	r := fromTask(t)
	if err := s.db.WithContext(ctx).Create(&r).Error; err != nil {
		return task.Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	t.ID = r.ID

	s.log.Debug("task created", "id", t.ID, "priority", t.Priority)
	return t, nil
}

// PutTask inserts t or replaces the existing task with the same ID.
func (s *Store) PutTask(ctx context.Context, t task.Task) error {
	if err := putTask(s.db.WithContext(ctx), t); err != nil {
		return err
	}

	s.log.Debug("task stored", "id", t.ID)
	return nil
}

func putTask(db *gorm.DB, t task.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.ID == 0 {
		return fmt.Errorf("%w: 0", task.ErrInvalidID)
	}

	r := fromTask(t)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "priority", "completed", "updated_at"}),
	}).Create(&r).Error
	if err != nil {
		return fmt.Errorf("failed to put task %d: %w", t.ID, err)
	}
	return nil
}

// ImportTasks stores tasks in one transaction. Explicit IDs are written
// first so the autoincrement sequence allocates above all of them.
func (s *Store) ImportTasks(ctx context.Context, tasks []task.Task) ([]task.Task, error) {
	stored := append([]task.Task(nil), tasks...)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, t := range stored {
			if t.ID == 0 {
				continue
			}
			if err := putTask(tx, t); err != nil {
				return err
			}
		}
		for i, t := range stored {
			if t.ID != 0 {
				continue
			}
			if err := t.Validate(); err != nil {
				return err
			}
			r := fromTask(t)
			if err := tx.Create(&r).Error; err != nil {
				return fmt.Errorf("failed to create task: %w", err)
			}
			stored[i].ID = r.ID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("tasks imported", "count", len(stored))
	return stored, nil
}

// CompleteTask marks a task as completed.
func (s *Store) CompleteTask(ctx context.Context, id int) error {
	return s.update(ctx, id, "completed", true)
}

// ReopenTask marks a task as open.
func (s *Store) ReopenTask(ctx context.Context, id int) error {
	return s.update(ctx, id, "completed", false)
}

// SetPriority changes the priority of a task.
func (s *Store) SetPriority(ctx context.Context, id int, p task.Priority) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %s", task.ErrInvalidPriority, p)
	}
	return s.update(ctx, id, "priority", p.String())
}

func (s *Store) update(ctx context.Context, id int, column string, value any) error {
	result := s.db.WithContext(ctx).Model(&record{}).Where("id = ?", id).Update(column, value)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update task %d: %w", id, err)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %d", service.ErrNotFound, id)
	}

	s.log.Debug("task updated", "id", id, column, value)
	return nil
}

// DeleteTask removes a task.
func (s *Store) DeleteTask(ctx context.Context, id int) error {
	result := s.db.WithContext(ctx).Delete(&record{}, "id = ?", id)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, err)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %d", service.ErrNotFound, id)
	}

	s.log.Debug("task deleted", "id", id)
	return nil
}

// PurgeCompleted deletes all completed tasks.
func (s *Store) PurgeCompleted(ctx context.Context) (int, error) {
	result := s.db.WithContext(ctx).Where("completed = ?", true).Delete(&record{})
	if err := result.Error; err != nil {
		return 0, fmt.Errorf("failed to purge completed tasks: %w", err)
	}

	s.log.Debug("completed tasks purged", "count", result.RowsAffected)
	return int(result.RowsAffected), nil
}
