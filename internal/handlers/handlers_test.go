package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Innocent9712/much-to-do/Server/TaskManager/internal/handlers"
	"github.com/Innocent9712/much-to-do/Server/TaskManager/internal/tasks"
	"github.com/Innocent9712/much-to-do/Server/TaskManager/internal/web"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// failingStore returns err from every call.
type failingStore struct{ err error }

func (f failingStore) Add(context.Context, string) ([]string, error) { return nil, f.err }
func (f failingStore) Remove(context.Context, string) ([]string, bool, error) {
	return nil, false, f.err
}
func (f failingStore) List(context.Context) ([]string, error) { return nil, f.err }
func (f failingStore) Ping(context.Context) error               { return f.err }
func (f failingStore) Close(context.Context) error              { return nil }

func newRouter(t *testing.T, store tasks.Store) *gin.Engine {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	tmpl, err := web.Templates()
	require.NoError(t, err)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	handlers.NewTaskHandler(store, log).Register(r)
	return r
}

func do(r http.Handler, method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func form(name string) url.Values {
	return url.Values{"task_name": {name}}
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) handlers.MessageResponse {
	t.Helper()
	var resp handlers.MessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestIndex_Empty(t *testing.T) {
	r := newRouter(t, tasks.NewMemoryStore())

	w := do(r, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Task Manager")
	assert.Contains(t, w.Body.String(), "Current Tasks")
	assert.NotContains(t, w.Body.String(), `class="task"`)
}

func TestAddThenIndex(t *testing.T) {
	r := newRouter(t, tasks.NewMemoryStore())

	w := do(r, http.MethodPost, "/add", form("ci-demo-task"))
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeMessage(t, w)
	assert.Equal(t, "Task 'ci-demo-task' added successfully", resp.Message)
	assert.Equal(t, []string{"ci-demo-task"}, resp.Tasks)
	assert.Nil(t, resp.Removed)

	w = do(r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ci-demo-task")

	w = do(r, http.MethodPost, "/remove", form("ci-demo-task"))
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/", nil)
	assert.NotContains(t, w.Body.String(), "ci-demo-task")
}

func TestIndex_PreservesOrder(t *testing.T) {
	r := newRouter(t, tasks.NewMemoryStore())
	do(r, http.MethodPost, "/add", form("Task 1"))
	do(r, http.MethodPost, "/add", form("Task 2"))

	body := do(r, http.MethodGet, "/", nil).Body.String()
	first := strings.Index(body, "Task 1")
	second := strings.Index(body, "Task 2")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second)
}

func TestAdd_MissingField(t *testing.T) {
	store := tasks.NewMemoryStore()
	r := newRouter(t, store)

	w := do(r, http.MethodPost, "/add", url.Values{"other": {"x"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"task_name is required"}`, w.Body.String())

	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestAdd_EmptyNameAccepted(t *testing.T) {
	r := newRouter(t, tasks.NewMemoryStore())

	w := do(r, http.MethodPost, "/add", form(""))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{""}, decodeMessage(t, w).Tasks)
}

func TestAdd_Duplicates(t *testing.T) {
	r := newRouter(t, tasks.NewMemoryStore())
	do(r, http.MethodPost, "/add", form("dup"))

	w := do(r, http.MethodPost, "/add", form("dup"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"dup", "dup"}, decodeMessage(t, w).Tasks)
}

func TestRemove_FoundThenNotFound(t *testing.T) {
	r := newRouter(t, tasks.NewMemoryStore())
	do(r, http.MethodPost, "/add", form("to-remove"))

	w := do(r, http.MethodPost, "/remove", form("to-remove"))
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeMessage(t, w)
	assert.Equal(t, "Task 'to-remove' removed successfully", resp.Message)
	require.NotNil(t, resp.Removed)
	assert.True(t, *resp.Removed)
	assert.Empty(t, resp.Tasks)

	w = do(r, http.MethodPost, "/remove", form("to-remove"))
	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeMessage(t, w)
	assert.Equal(t, "Task 'to-remove' not found", resp.Message)
	require.NotNil(t, resp.Removed)
	assert.False(t, *resp.Removed)
}

func TestRemove_FirstOccurrence(t *testing.T) {
	r := newRouter(t, tasks.NewMemoryStore())
	for _, n := range []string{"a", "b", "a"} {
		do(r, http.MethodPost, "/add", form(n))
	}

	w := do(r, http.MethodPost, "/remove", form("a"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"b", "a"}, decodeMessage(t, w).Tasks)
}

func TestRemove_MissingField(t *testing.T) {
	r := newRouter(t, tasks.NewMemoryStore())

	w := do(r, http.MethodPost, "/remove", url.Values{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListTasks(t *testing.T) {
	r := newRouter(t, tasks.NewMemoryStore())

	w := do(r, http.MethodGet, "/tasks", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"tasks":[]}`, w.Body.String())

	do(r, http.MethodPost, "/add", form("Task 1"))
	do(r, http.MethodPost, "/add", form("Task 2"))

	w = do(r, http.MethodGet, "/tasks", nil)
	assert.JSONEq(t, `{"tasks":["Task 1","Task 2"]}`, w.Body.String())
}

func TestHealth(t *testing.T) {
	w := do(newRouter(t, tasks.NewMemoryStore()), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(newRouter(t, failingStore{err: errors.New("connection refused")}), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"unavailable","error":"connection refused"}`, w.Body.String())
}

func TestStoreFailures(t *testing.T) {
	r := newRouter(t, failingStore{err: errors.New("boom")})

	cases := []struct {
		method string
		path   string
		form   url.Values
	}{
		{http.MethodGet, "/", nil},
		{http.MethodGet, "/tasks", nil},
		{http.MethodPost, "/add", form("x")},
		{http.MethodPost, "/remove", form("x")},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := do(r, tc.method, tc.path, tc.form)
			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.JSONEq(t, `{"error":"boom"}`, w.Body.String())
		})
	}
}
