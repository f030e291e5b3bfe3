package store

import (
	"context"

	"github.com/phrazzld/todo-api/internal/domain"
)

// TodoStore defines the interface for todo persistence.
type TodoStore interface {
	// List returns every todo in natural storage order.
	// Returns an empty slice if the table is empty.
	List(ctx context.Context) ([]domain.Todo, error)

	// GetByID retrieves a todo by its ID.
	// Returns ErrTodoNotFound if no row has that ID.
	GetByID(ctx context.Context, id int32) (*domain.Todo, error)

	// ListByStatus returns the todos whose completed flag matches.
	ListByStatus(ctx context.Context, completed bool) ([]domain.Todo, error)

	// Create inserts a todo and returns it with its assigned ID.
	Create(ctx context.Context, todo domain.NewTodo) (*domain.Todo, error)

	// Update replaces title and completed of the todo with the given ID.
	// Returns ErrTodoNotFound if no row has that ID.
	Update(ctx context.Context, id int32, todo domain.NewTodo) (*domain.Todo, error)

	// Delete removes the todo with the given ID and returns the number of
	// rows removed. A missing ID is not an error.
	Delete(ctx context.Context, id int32) (int64, error)
}

// TodoStoreFactory builds a TodoStore bound to a database handle, usually a
// connection checked out for the duration of one request.
type TodoStoreFactory func(db DBTX) TodoStore
