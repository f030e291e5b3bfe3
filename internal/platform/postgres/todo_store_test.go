//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/postgres"
	"github.com/phrazzld/todo-api/internal/store"
	"github.com/phrazzld/todo-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// emptyTodos clears the table inside the test transaction so that
// assertions on whole-table results are deterministic.
func emptyTodos(ctx context.Context, t *testing.T, tx *sql.Tx) {
	t.Helper()
	_, err := tx.ExecContext(ctx, "DELETE FROM todos")
	require.NoError(t, err, "Failed to clear todos")
}

func countTodos(ctx context.Context, t *testing.T, tx *sql.Tx) int {
	t.Helper()
	var n int
	require.NoError(t, tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM todos").Scan(&n))
	return n
}

func TestPostgresTodoStore(t *testing.T) {
	db := testdb.GetTestDBWithT(t)
	ctx := context.Background()

	t.Run("create then get returns identical values", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			todoStore := postgres.NewPostgresTodoStore(tx, nil)

			inputs := []domain.NewTodo{
				{Title: ptr("buy milk")},
				domain.NewTodoInput("walk dog", true),
				domain.NewTodoInput("", false),
			}
			for _, input := range inputs {
				created, err := todoStore.Create(ctx, input)
				require.NoError(t, err)
				assert.Positive(t, created.ID)
				assert.Equal(t, input.TitleValue(), created.Title)
				assert.Equal(t, input.CompletedValue(), created.Completed)

				got, err := todoStore.GetByID(ctx, created.ID)
				require.NoError(t, err)
				assert.Equal(t, *created, *got)
			}
		})
	})

	t.Run("get missing id reports absence", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			todoStore := postgres.NewPostgresTodoStore(tx, nil)

			got, err := todoStore.GetByID(ctx, -1)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, store.ErrTodoNotFound)
		})
	})

	t.Run("list by status partitions list", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			emptyTodos(ctx, t, tx)
			todoStore := postgres.NewPostgresTodoStore(tx, nil)

			complete, err := todoStore.ListByStatus(ctx, true)
			require.NoError(t, err)
			assert.NotNil(t, complete)
			assert.Empty(t, complete)

			for i, title := range []string{"a", "b", "c", "d", "e"} {
				_, err := todoStore.Create(ctx, domain.NewTodoInput(title, i%2 == 0))
				require.NoError(t, err)
			}

			all, err := todoStore.List(ctx)
			require.NoError(t, err)
			complete, err = todoStore.ListByStatus(ctx, true)
			require.NoError(t, err)
			incomplete, err := todoStore.ListByStatus(ctx, false)
			require.NoError(t, err)

			for _, todo := range complete {
				assert.True(t, todo.Completed)
			}
			for _, todo := range incomplete {
				assert.False(t, todo.Completed)
			}
			assert.Len(t, complete, 3)
			assert.Len(t, incomplete, 2)
			assert.ElementsMatch(t, all, append(complete, incomplete...))
		})
	})

	t.Run("update replaces exactly one row", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			todoStore := postgres.NewPostgresTodoStore(tx, nil)

			target, err := todoStore.Create(ctx, domain.NewTodoInput("buy milk", false))
			require.NoError(t, err)
			other, err := todoStore.Create(ctx, domain.NewTodoInput("other", false))
			require.NoError(t, err)

			updated, err := todoStore.Update(ctx, target.ID, domain.NewTodoInput("buy oat milk", true))
			require.NoError(t, err)
			assert.Equal(t, domain.Todo{ID: target.ID, Title: "buy oat milk", Completed: true}, *updated)

			untouched, err := todoStore.GetByID(ctx, other.ID)
			require.NoError(t, err)
			assert.Equal(t, *other, *untouched)

			// An omitted completed flag is a full replace to false.
			updated, err = todoStore.Update(ctx, target.ID, domain.NewTodo{Title: ptr("buy oat milk")})
			require.NoError(t, err)
			assert.False(t, updated.Completed)
		})
	})

	t.Run("update missing id reports absence", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			todoStore := postgres.NewPostgresTodoStore(tx, nil)

			updated, err := todoStore.Update(ctx, -1, domain.NewTodoInput("x", true))
			assert.Nil(t, updated)
			assert.ErrorIs(t, err, store.ErrTodoNotFound)
		})
	})

	t.Run("delete counts removed rows", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			todoStore := postgres.NewPostgresTodoStore(tx, nil)

			created, err := todoStore.Create(ctx, domain.NewTodoInput("temp", false))
			require.NoError(t, err)
			before := countTodos(ctx, t, tx)

			n, err := todoStore.Delete(ctx, -1)
			require.NoError(t, err)
			assert.Equal(t, int64(0), n)
			assert.Equal(t, before, countTodos(ctx, t, tx))

			n, err = todoStore.Delete(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(1), n)
			assert.Equal(t, before-1, countTodos(ctx, t, tx))

			_, err = todoStore.GetByID(ctx, created.ID)
			assert.ErrorIs(t, err, store.ErrTodoNotFound)
		})
	})

	t.Run("create without title is rejected", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			todoStore := postgres.NewPostgresTodoStore(tx, nil)

			_, err := todoStore.Create(ctx, domain.NewTodo{})
			var storeErr *store.StoreError
			require.ErrorAs(t, err, &storeErr)
			assert.ErrorIs(t, err, store.ErrInvalidEntity)
		})
	})
}

func TestPoolAcquire_Integration(t *testing.T) {
	db := testdb.GetTestDBWithT(t)
	pool := postgres.NewPool(db, nil)
	ctx := context.Background()

	require.NoError(t, pool.Ping(ctx))

	conn, err := pool.Acquire(ctx)
	require.NoError(t, err)

	todoStore := postgres.NewTodoStoreFactory(nil)(conn)
	_, err = todoStore.List(ctx)
	require.NoError(t, err)

	require.NoError(t, conn.Close())
	assert.Equal(t, 0, pool.Stats().InUse)
}

func ptr(s string) *string {
	return &s
}
