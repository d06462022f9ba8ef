package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"taskmaster/internal/store"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func fixedNow() time.Time {
	return time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
}

func newTestRouter(t *testing.T) (*gin.Engine, *store.Memory) {
	t.Helper()
	st := store.NewMemory()
	h := NewTaskHandler(st, zap.NewNop(), fixedNow)
	return NewRouter(h, zap.NewNop()), st
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSaveTask_DefaultsCreatedDate(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/tasks/save", `{"title":"  Buy milk  ","description":"2L"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":1,"title":"Buy milk","description":"2L","createdDate":"2024-06-15","isCompleted":false}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestSaveTask_AcceptsSnakeCase(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/tasks/save", `{"title":"x","created_date":"2024-01-01","is_completed":true}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":1,"title":"x","description":"","createdDate":"2024-01-01","isCompleted":true}`, rec.Body.String())
}

func TestSaveTask_Rejects(t *testing.T) {
	r, _ := newTestRouter(t)

	tests := map[string]string{
		"empty body":    ``,
		"not json":      `nope`,
		"no title":      `{"description":"x"}`,
		"blank title":   `{"title":"   "}`,
		"long title":    `{"title":"` + strings.Repeat("a", MaxTitleLength+1) + `"}`,
		"bad date":      `{"title":"x","created_date":"2024/01/01"}`,
		"bad completed": `{"title":"x","is_completed":"maybe"}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			rec := doJSON(t, r, http.MethodPost, "/api/tasks/save", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestListTasks(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/api/tasks", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	doJSON(t, r, http.MethodPost, "/api/tasks/save", `{"title":"a","created_date":"2024-01-01"}`)
	doJSON(t, r, http.MethodPost, "/api/tasks/save", `{"title":"b","created_date":"2024-02-01"}`)

	rec = doJSON(t, r, http.MethodGet, "/api/tasks", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var tasks []taskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
	require.Len(t, tasks, 2)
	assert.Equal(t, "b", tasks[0].Title)
	assert.Equal(t, "a", tasks[1].Title)
}

func TestEditTask(t *testing.T) {
	r, _ := newTestRouter(t)
	doJSON(t, r, http.MethodPost, "/api/tasks/save", `{"title":"a","description":"d","created_date":"2024-01-01"}`)

	rec := doJSON(t, r, http.MethodPost, "/api/tasks/edit", `{"id":1,"title":"b","created_date":"1999-01-01","is_completed":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"title":"b","description":"d","createdDate":"2024-01-01","isCompleted":true}`, rec.Body.String())

	rec = doJSON(t, r, http.MethodPost, "/api/tasks/edit", `{"id":9,"title":"b"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/api/tasks/edit", `{"title":"b"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateTaskStatus(t *testing.T) {
	r, st := newTestRouter(t)
	doJSON(t, r, http.MethodPost, "/api/tasks/save", `{"title":"a"}`)

	rec := doJSON(t, r, http.MethodPost, "/api/tasks/update", `{"id":1,"is_completed":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Task updated successfully"}`, rec.Body.String())

	task, err := st.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, task.IsCompleted)

	rec = doJSON(t, r, http.MethodPost, "/api/tasks/update", `{"id":2,"is_completed":true}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Task not found"}`, rec.Body.String())

	rec = doJSON(t, r, http.MethodPost, "/api/tasks/update", `{"id":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteTask(t *testing.T) {
	r, _ := newTestRouter(t)
	doJSON(t, r, http.MethodPost, "/api/tasks/save", `{"title":"a"}`)

	rec := doJSON(t, r, http.MethodPost, "/api/tasks/delete", `{"id":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Task deleted successfully"}`, rec.Body.String())

	rec = doJSON(t, r, http.MethodPost, "/api/tasks/delete", `{"id":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Task not found"}`, rec.Body.String())
}

func TestMethodNotAllowed(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/api/tasks/save", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"error":"Method not allowed"}`, rec.Body.String())
}

func TestRequestIDIsEchoed(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}
