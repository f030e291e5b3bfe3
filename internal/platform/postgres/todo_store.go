package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/store"
)

const todoColumns = "id, title, completed"

// PostgresTodoStore implements the store.TodoStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTodoStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTodoStore creates a new PostgreSQL implementation of the TodoStore interface.
// It accepts a pool, a checked-out connection or a transaction that is managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTodoStore(db store.DBTX, logger *slog.Logger) *PostgresTodoStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTodoStore{
		db:     db,
		logger: logger.With(slog.String("component", "todo_store")),
	}
}

// NewTodoStoreFactory returns a store.TodoStoreFactory producing
// PostgresTodoStores that share logger.
func NewTodoStoreFactory(logger *slog.Logger) store.TodoStoreFactory {
	return func(db store.DBTX) store.TodoStore {
		return NewPostgresTodoStore(db, logger)
	}
}

// Ensure PostgresTodoStore implements store.TodoStore interface
var _ store.TodoStore = (*PostgresTodoStore)(nil)

// List implements store.TodoStore.List
func (s *PostgresTodoStore) List(ctx context.Context) ([]domain.Todo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	todos, err := s.query(ctx, "list", `SELECT `+todoColumns+` FROM todos`)
	if err != nil {
		log.Error("failed to list todos", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("todos listed", slog.Int("count", len(todos)))
	return todos, nil
}

// GetByID implements store.TodoStore.GetByID
// Returns store.ErrTodoNotFound if the todo does not exist.
func (s *PostgresTodoStore) GetByID(ctx context.Context, id int32) (*domain.Todo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving todo by ID", slog.Int("todo_id", int(id)))

	var todo domain.Todo
	err := s.db.QueryRowContext(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE id = $1`, id,
	).Scan(&todo.ID, &todo.Title, &todo.Completed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("todo not found", slog.Int("todo_id", int(id)))
			return nil, store.ErrTodoNotFound
		}
		log.Error("failed to get todo by ID",
			slog.String("error", err.Error()),
			slog.Int("todo_id", int(id)))
		return nil, storeError("get", "query failed", err)
	}

	return &todo, nil
}

// ListByStatus implements store.TodoStore.ListByStatus
func (s *PostgresTodoStore) ListByStatus(ctx context.Context, completed bool) ([]domain.Todo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	todos, err := s.query(ctx, "list_by_status",
		`SELECT `+todoColumns+` FROM todos WHERE completed = $1`, completed)
	if err != nil {
		log.Error("failed to list todos by status",
			slog.String("error", err.Error()),
			slog.Bool("completed", completed))
		return nil, err
	}

	log.Debug("todos listed by status",
		slog.Bool("completed", completed),
		slog.Int("count", len(todos)))
	return todos, nil
}

// Create implements store.TodoStore.Create
// The ID is assigned by the database; an omitted completed flag is stored as false.
func (s *PostgresTodoStore) Create(ctx context.Context, input domain.NewTodo) (*domain.Todo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := input.Validate(); err != nil {
		log.Warn("todo validation failed during create", slog.String("error", err.Error()))
		return nil, store.NewStoreError("todo", "create", "invalid input", errors.Join(store.ErrInvalidEntity, err))
	}

	var todo domain.Todo
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO todos (title, completed)
		VALUES ($1, $2)
		RETURNING `+todoColumns,
		input.TitleValue(),
		input.CompletedValue(),
	).Scan(&todo.ID, &todo.Title, &todo.Completed)
	if err != nil {
		log.Error("failed to create todo", slog.String("error", err.Error()))
		return nil, storeError("create", "insert failed", err)
	}

	log.Info("todo created successfully",
		slog.Int("todo_id", int(todo.ID)),
		slog.Bool("completed", todo.Completed))
	return &todo, nil
}

// Update implements store.TodoStore.Update
// Both columns are replaced; an omitted completed flag is stored as false.
// Returns store.ErrTodoNotFound if no row matches id.
func (s *PostgresTodoStore) Update(ctx context.Context, id int32, input domain.NewTodo) (*domain.Todo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := input.Validate(); err != nil {
		log.Warn("todo validation failed during update",
			slog.String("error", err.Error()),
			slog.Int("todo_id", int(id)))
		return nil, store.NewStoreError("todo", "update", "invalid input", errors.Join(store.ErrInvalidEntity, err))
	}

	var todo domain.Todo
	err := s.db.QueryRowContext(ctx, `
		UPDATE todos
		SET title = $1, completed = $2
		WHERE id = $3
		RETURNING `+todoColumns,
		input.TitleValue(),
		input.CompletedValue(),
		id,
	).Scan(&todo.ID, &todo.Title, &todo.Completed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("todo not found for update", slog.Int("todo_id", int(id)))
			return nil, store.ErrTodoNotFound
		}
		log.Error("failed to update todo",
			slog.String("error", err.Error()),
			slog.Int("todo_id", int(id)))
		return nil, storeError("update", "update failed", err)
	}

	log.Info("todo updated successfully",
		slog.Int("todo_id", int(id)),
		slog.Bool("completed", todo.Completed))
	return &todo, nil
}

// Delete implements store.TodoStore.Delete
// Returns the number of rows removed; zero when no row matches id.
func (s *PostgresTodoStore) Delete(ctx context.Context, id int32) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete todo",
			slog.String("error", err.Error()),
			slog.Int("todo_id", int(id)))
		return 0, storeError("delete", "delete failed", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int("todo_id", int(id)))
		return 0, storeError("delete", "failed to get rows affected", err)
	}

	log.Info("todo delete executed",
		slog.Int("todo_id", int(id)),
		slog.Int64("rows_deleted", rowsAffected))
	return rowsAffected, nil
}

// query runs a select returning todo rows. The result is never nil.
func (s *PostgresTodoStore) query(ctx context.Context, operation, query string, args ...any) ([]domain.Todo, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeError(operation, "query failed", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	todos := make([]domain.Todo, 0)
	for rows.Next() {
		var todo domain.Todo
		if err := rows.Scan(&todo.ID, &todo.Title, &todo.Completed); err != nil {
			return nil, storeError(operation, "scan failed", err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(operation, "row iteration failed", err)
	}

	return todos, nil
}
