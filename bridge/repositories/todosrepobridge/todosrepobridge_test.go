package todosrepobridge_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jrazmi/todolist/bridge/repositories/todosrepobridge"
	"github.com/jrazmi/todolist/bridge/scaffolding/mid"
	"github.com/jrazmi/todolist/core/repositories"
	"github.com/jrazmi/todolist/core/repositories/todosrepo"
	"github.com/jrazmi/todolist/core/repositories/todosrepo/stores/todosmemstore"
	"github.com/jrazmi/todolist/infrastructure/web"
	"github.com/jrazmi/todolist/sdk/logger"
	"github.com/jrazmi/todolist/sdk/telemetry"
)

// ============================================================================
// Test Server Construction
// ============================================================================

func newTestServer(t *testing.T, storer todosrepo.Storer) *httptest.Server {
	t.Helper()

	log := logger.NewDefault(logger.WithOutput(io.Discard))
	tel := telemetry.NewTelemetry()

	wh := web.NewWebHandler(
		web.WithTelemetry(tel),
		web.WithGlobalMiddleware(
			mid.Logger(log),
			mid.Errors(log),
			mid.Metrics(),
			mid.Panics(),
		),
	)

	if storer == nil {
		storer = todosmemstore.NewStore(log)
	}

	todosrepobridge.AddHttpRoutes(wh.Group("/api"), todosrepobridge.Config{
		Log:        log,
		Repository: todosrepo.NewRepository(log, storer),
	})

	srv := httptest.NewServer(wh)
	t.Cleanup(srv.Close)

	return srv
}

func do(t *testing.T, method, url string, body string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("building request: %s", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %s", method, url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading response body: %s", err)
	}

	return resp, data
}

type todoResponse struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"createdAt"`
}

type errorResponse struct {
	Message string `json:"message"`
	Errors  []struct {
		Field string `json:"field"`
		Error string `json:"error"`
	} `json:"errors"`
}

// ============================================================================
// Lifecycle
// ============================================================================

func TestTodoLifecycle(t *testing.T) {
	srv := newTestServer(t, nil)

	// Create.
	resp, body := do(t, http.MethodPost, srv.URL+"/api/todos", `{"text":"buy milk"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: got status %d, want 201: %s", resp.StatusCode, body)
	}

	var created todoResponse
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("decoding create response: %s", err)
	}
	if created.ID == "" {
		t.Fatal("create: expected an id")
	}
	if created.Text != "buy milk" || created.Completed {
		t.Fatalf("create: got %+v", created)
	}
	if _, err := time.Parse(time.RFC3339, created.CreatedAt); err != nil {
		t.Fatalf("create: createdAt %q is not RFC3339: %s", created.CreatedAt, err)
	}

	// Read back.
	resp, body = do(t, http.MethodGet, srv.URL+"/api/todos/"+created.ID, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get: got status %d, want 200: %s", resp.StatusCode, body)
	}

	// List contains it.
	resp, body = do(t, http.MethodGet, srv.URL+"/api/todos", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: got status %d, want 200: %s", resp.StatusCode, body)
	}
	var list []todoResponse
	if err := json.Unmarshal(body, &list); err != nil {
		t.Fatalf("decoding list response: %s", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("list: got %+v", list)
	}

	// Complete it.
	resp, body = do(t, http.MethodPatch, srv.URL+"/api/todos/"+created.ID, `{"completed":true}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("patch: got status %d, want 200: %s", resp.StatusCode, body)
	}
	var updated todoResponse
	if err := json.Unmarshal(body, &updated); err != nil {
		t.Fatalf("decoding patch response: %s", err)
	}
	if !updated.Completed {
		t.Error("patch: expected completed true")
	}
	if updated.Text != "buy milk" {
		t.Errorf("patch: text changed to %q", updated.Text)
	}

	// Delete.
	resp, body = do(t, http.MethodDelete, srv.URL+"/api/todos/"+created.ID, "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: got status %d, want 204: %s", resp.StatusCode, body)
	}
	if len(body) != 0 {
		t.Errorf("delete: expected empty body, got %q", body)
	}

	// Gone.
	resp, _ = do(t, http.MethodGet, srv.URL+"/api/todos/"+created.ID, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete: got status %d, want 404", resp.StatusCode)
	}
	resp, _ = do(t, http.MethodDelete, srv.URL+"/api/todos/"+created.ID, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete: got status %d, want 404", resp.StatusCode)
	}
}

func TestListEmptyIsArray(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, body := do(t, http.MethodGet, srv.URL+"/api/todos", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got status %d, want 200", resp.StatusCode)
	}
	if string(body) != "[]" {
		t.Fatalf("got body %q, want []", body)
	}
}

// ============================================================================
// Validation
// ============================================================================

func TestCreateValidation(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{"empty text", `{"text":""}`},
		{"whitespace text", `{"text":"   "}`},
		{"missing text", `{"completed":true}`},
		{"wrong type", `{"text":42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, http.MethodPost, srv.URL+"/api/todos", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("got status %d, want 400: %s", resp.StatusCode, body)
			}

			var errResp errorResponse
			if err := json.Unmarshal(body, &errResp); err != nil {
				t.Fatalf("decoding error response: %s", err)
			}
			if errResp.Message == "" {
				t.Error("expected a message in the error body")
			}
			if len(errResp.Errors) == 0 {
				t.Fatal("expected itemized field errors")
			}
			if errResp.Errors[0].Field != "text" {
				t.Errorf("got field %q, want %q", errResp.Errors[0].Field, "text")
			}
		})
	}
}

func TestCreateRejectsUnknownFields(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, body := do(t, http.MethodPost, srv.URL+"/api/todos", `{"text":"ok","owner":"mallory"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400: %s", resp.StatusCode, body)
	}
}

func TestCreateMalformedJSON(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, _ := do(t, http.MethodPost, srv.URL+"/api/todos", `{"text":`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", resp.StatusCode)
	}
}

func TestCreateEmptyBody(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, _ := do(t, http.MethodPost, srv.URL+"/api/todos", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", resp.StatusCode)
	}
}

func TestUpdateValidation(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, body := do(t, http.MethodPost, srv.URL+"/api/todos", `{"text":"original"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: got status %d: %s", resp.StatusCode, body)
	}
	var created todoResponse
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("decoding create response: %s", err)
	}

	// Field injection is rejected by the schema whitelist.
	resp, _ = do(t, http.MethodPatch, srv.URL+"/api/todos/"+created.ID, `{"id":"forged"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("id injection: got status %d, want 400", resp.StatusCode)
	}

	// An update with no recognized fields is rejected.
	resp, _ = do(t, http.MethodPatch, srv.URL+"/api/todos/"+created.ID, `{}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("empty update: got status %d, want 400", resp.StatusCode)
	}

	// Clearing text is rejected server side.
	resp, _ = do(t, http.MethodPatch, srv.URL+"/api/todos/"+created.ID, `{"text":" "}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("blank text: got status %d, want 400", resp.StatusCode)
	}

	// The record is untouched after the rejected updates.
	resp, body = do(t, http.MethodGet, srv.URL+"/api/todos/"+created.ID, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get: got status %d: %s", resp.StatusCode, body)
	}
	var got todoResponse
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("decoding get response: %s", err)
	}
	if got.Text != "original" || got.ID != created.ID {
		t.Fatalf("record changed: %+v", got)
	}
}

func TestUpdateMissingTodo(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, _ := do(t, http.MethodPatch, srv.URL+"/api/todos/nope", `{"completed":true}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("got status %d, want 404", resp.StatusCode)
	}
}

// ============================================================================
// Storage Failures
// ============================================================================

// downStorer simulates a backend that lost its connection.
type downStorer struct{}

func (downStorer) Create(ctx context.Context, input todosrepo.CreateTodo) (todosrepo.Todo, error) {
	return todosrepo.Todo{}, fmt.Errorf("connecting: %w", repositories.ErrStorageUnavailable)
}

func (downStorer) QueryByID(ctx context.Context, todoID string) (todosrepo.Todo, error) {
	return todosrepo.Todo{}, fmt.Errorf("connecting: %w", repositories.ErrStorageUnavailable)
}

func (downStorer) List(ctx context.Context) ([]todosrepo.Todo, error) {
	return nil, fmt.Errorf("connecting: %w", repositories.ErrStorageUnavailable)
}

func (downStorer) Update(ctx context.Context, todoID string, updates todosrepo.UpdateTodo) (todosrepo.Todo, error) {
	return todosrepo.Todo{}, fmt.Errorf("connecting: %w", repositories.ErrStorageUnavailable)
}

func (downStorer) Delete(ctx context.Context, todoID string) error {
	return fmt.Errorf("connecting: %w", repositories.ErrStorageUnavailable)
}

func TestStorageUnavailable(t *testing.T) {
	srv := newTestServer(t, downStorer{})

	tests := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/api/todos", ""},
		{http.MethodGet, "/api/todos/some-id", ""},
		{http.MethodPost, "/api/todos", `{"text":"doomed"}`},
		{http.MethodPatch, "/api/todos/some-id", `{"completed":true}`},
		{http.MethodDelete, "/api/todos/some-id", ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			resp, body := do(t, tt.method, srv.URL+tt.path, tt.body)
			if resp.StatusCode != http.StatusServiceUnavailable {
				t.Fatalf("got status %d, want 503: %s", resp.StatusCode, body)
			}

			var errResp errorResponse
			if err := json.Unmarshal(body, &errResp); err != nil {
				t.Fatalf("decoding error response: %s", err)
			}
			if errResp.Message == "" {
				t.Error("expected a message in the error body")
			}
		})
	}
}

// errStorer fails every call with an opaque error.
type errStorer struct {
	downStorer
}

func (errStorer) List(ctx context.Context) ([]todosrepo.Todo, error) {
	return nil, errors.New("disk corrupted at sector 42")
}

func TestInternalErrorsAreOpaque(t *testing.T) {
	srv := newTestServer(t, errStorer{})

	resp, body := do(t, http.MethodGet, srv.URL+"/api/todos", "")
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("got status %d, want 500: %s", resp.StatusCode, body)
	}

	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		t.Fatalf("decoding error response: %s", err)
	}
	if errResp.Message != "Internal Server Error" {
		t.Errorf("internal detail leaked: %q", errResp.Message)
	}
}
