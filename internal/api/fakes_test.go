package api

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/store"
)

var errFakeConn = errors.New("fake connection does not run SQL")

// fakeConn satisfies store.Conn and counts releases.
type fakeConn struct {
	provider *fakeProvider
}

func (c *fakeConn) ExecContext(context.Context, string, ...any) (sql.Result, error) {
	return nil, errFakeConn
}

func (c *fakeConn) PrepareContext(context.Context, string) (*sql.Stmt, error) {
	return nil, errFakeConn
}

func (c *fakeConn) QueryContext(context.Context, string, ...any) (*sql.Rows, error) {
	return nil, errFakeConn
}

func (c *fakeConn) QueryRowContext(context.Context, string, ...any) *sql.Row {
	return nil
}

func (c *fakeConn) Close() error {
	c.provider.mu.Lock()
	defer c.provider.mu.Unlock()
	c.provider.released++
	return nil
}

// fakeProvider hands out fakeConns or fails with acquireErr.
type fakeProvider struct {
	mu         sync.Mutex
	acquireErr error
	pingErr    error
	acquired   int
	released   int
}

func (p *fakeProvider) Acquire(context.Context) (store.Conn, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.acquired++
	return &fakeConn{provider: p}, nil
}

func (p *fakeProvider) Ping(context.Context) error {
	return p.pingErr
}

func (p *fakeProvider) outstanding() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.acquired - p.released
}

// memoryTodoStore is an in-memory TodoStore. queryErr, when set, is returned
// from every operation.
type memoryTodoStore struct {
	mu       sync.Mutex
	nextID   int32
	rows     map[int32]domain.Todo
	queryErr error
}

func newMemoryTodoStore() *memoryTodoStore {
	return &memoryTodoStore{nextID: 1, rows: map[int32]domain.Todo{}}
}

func (s *memoryTodoStore) factory() store.TodoStoreFactory {
	return func(store.DBTX) store.TodoStore { return s }
}

func (s *memoryTodoStore) sorted(keep func(domain.Todo) bool) []domain.Todo {
	todos := make([]domain.Todo, 0, len(s.rows))
	for _, t := range s.rows {
		if keep(t) {
			todos = append(todos, t)
		}
	}
	sort.Slice(todos, func(i, j int) bool { return todos[i].ID < todos[j].ID })
	return todos
}

func (s *memoryTodoStore) List(context.Context) ([]domain.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	return s.sorted(func(domain.Todo) bool { return true }), nil
}

func (s *memoryTodoStore) GetByID(_ context.Context, id int32) (*domain.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	t, ok := s.rows[id]
	if !ok {
		return nil, store.ErrTodoNotFound
	}
	return &t, nil
}

func (s *memoryTodoStore) ListByStatus(_ context.Context, completed bool) ([]domain.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	return s.sorted(func(t domain.Todo) bool { return t.Completed == completed }), nil
}

func (s *memoryTodoStore) Create(_ context.Context, input domain.NewTodo) (*domain.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	t := domain.Todo{ID: s.nextID, Title: input.TitleValue(), Completed: input.CompletedValue()}
	s.rows[t.ID] = t
	s.nextID++
	return &t, nil
}

func (s *memoryTodoStore) Update(_ context.Context, id int32, input domain.NewTodo) (*domain.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	if _, ok := s.rows[id]; !ok {
		return nil, store.ErrTodoNotFound
	}
	t := domain.Todo{ID: id, Title: input.TitleValue(), Completed: input.CompletedValue()}
	s.rows[id] = t
	return &t, nil
}

func (s *memoryTodoStore) Delete(_ context.Context, id int32) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queryErr != nil {
		return 0, s.queryErr
	}
	if _, ok := s.rows[id]; !ok {
		return 0, nil
	}
	delete(s.rows, id)
	return 1, nil
}
