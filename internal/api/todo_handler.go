package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/redact"
	"github.com/phrazzld/todo-api/internal/store"
)

// TodoHandler serves the todo endpoints. Every request checks out one
// connection from the provider and releases it before returning.
type TodoHandler struct {
	provider store.ConnectionProvider
	newStore store.TodoStoreFactory
	logger   *slog.Logger
}

// NewTodoHandler creates a new TodoHandler.
// It panics if provider or factory is nil.
func NewTodoHandler(
	provider store.ConnectionProvider,
	factory store.TodoStoreFactory,
	logger *slog.Logger,
) *TodoHandler {
	if provider == nil {
		panic("connection provider cannot be nil")
	}
	if factory == nil {
		panic("todo store factory cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TodoHandler{
		provider: provider,
		newStore: factory,
		logger:   logger.With(slog.String("component", "todo_handler")),
	}
}

// withStore acquires a connection, builds a store on it and runs fn.
func (h *TodoHandler) withStore(ctx context.Context, fn func(store.TodoStore) error) error {
	conn, err := h.provider.Acquire(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			h.log(ctx).Warn("failed to release connection", slog.String("error", cerr.Error()))
		}
	}()

	return fn(h.newStore(conn))
}

func (h *TodoHandler) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, h.logger)
}

// ListAll handles GET /todos/all.
func (h *TodoHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	var todos []domain.Todo
	err := h.withStore(r.Context(), func(s store.TodoStore) error {
		var err error
		todos, err = s.List(r.Context())
		return err
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, todos)
}

// GetByID handles GET /todos/by_id/{id}.
func (h *TodoHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var todo *domain.Todo
	err = h.withStore(r.Context(), func(s store.TodoStore) error {
		var err error
		todo, err = s.GetByID(r.Context(), id)
		return err
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, todo)
}

// ListByStatus handles GET /todos/by_status/{status}.
func (h *TodoHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	status, err := getPathStatus(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var todos []domain.Todo
	err = h.withStore(r.Context(), func(s store.TodoStore) error {
		var err error
		todos, err = s.ListByStatus(r.Context(), status.Completed())
		return err
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, todos)
}

// Create handles POST /todos/new.
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeTodo(w, r)
	if !ok {
		return
	}

	var todo *domain.Todo
	err := h.withStore(r.Context(), func(s store.TodoStore) error {
		var err error
		todo, err = s.Create(r.Context(), input)
		return err
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	h.log(r.Context()).Debug("todo created", slog.Int("todo_id", int(todo.ID)))
	shared.RespondWithJSON(w, r, http.StatusCreated, todo)
}

// Update handles PUT /todos/update/{id}.
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	input, ok := h.decodeTodo(w, r)
	if !ok {
		return
	}

	var todo *domain.Todo
	err = h.withStore(r.Context(), func(s store.TodoStore) error {
		var err error
		todo, err = s.Update(r.Context(), id, input)
		return err
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, todo)
}

// Delete handles DELETE /todos/delete/{id}. The body is the number of rows
// removed, 0 or 1.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var deleted int64
	err = h.withStore(r.Context(), func(s store.TodoStore) error {
		var err error
		deleted, err = s.Delete(r.Context(), id)
		return err
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, deleted)
}

// Health handles GET /health.
func (h *TodoHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.provider.Ping(r.Context()); err != nil {
		h.log(r.Context()).Error("health check failed", slog.String("error", redact.Error(err)))
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// decodeTodo reads and validates a NewTodo body, writing a 400 on failure.
func (h *TodoHandler) decodeTodo(w http.ResponseWriter, r *http.Request) (domain.NewTodo, bool) {
	var input domain.NewTodo
	if err := shared.DecodeJSON(r, &input); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return input, false
	}

	if err := shared.ValidateRequest(&input); err != nil {
		HandleAPIError(w, r, err)
		return input, false
	}

	return input, true
}
