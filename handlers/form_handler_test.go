package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dongbac/feedback-backend/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildFormRouter() *gin.Engine {
	h := NewFormHandler(10)
	r := gin.New()
	r.GET("/", h.ShowForm)
	r.POST("/reset", h.ResetForm)
	return r
}

func TestShowFormRendersOptions(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	buildFormRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	body := w.Body.String()
	assert.Contains(t, body, types.CategoryPlaceholder)
	assert.Contains(t, body, types.PriorityPlaceholder)
	for _, cat := range types.Categories {
		assert.Contains(t, body, cat)
	}
	for _, prio := range types.Priorities {
		assert.Contains(t, body, prio)
	}
}

func TestShowFormIssuesDraftID(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	buildFormRouter().ServeHTTP(w, req)

	body := w.Body.String()
	start := strings.Index(body, `name="draft" value="`)
	require.GreaterOrEqual(t, start, 0)
	start += len(`name="draft" value="`)
	end := strings.Index(body[start:], `"`)
	require.Greater(t, end, 0)

	_, err := uuid.Parse(body[start : start+end])
	assert.NoError(t, err)
}

func TestShowFormKeepsValidDraftID(t *testing.T) {
	draft := uuid.New().String()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/?draft="+draft, nil)
	buildFormRouter().ServeHTTP(w, req)

	assert.Contains(t, w.Body.String(), draft)
}

func TestShowFormReplacesInvalidDraftID(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/?draft=not-a-uuid", nil)
	buildFormRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `value="not-a-uuid"`)
}

func TestSubmitScriptKeepsFieldValues(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	buildFormRouter().ServeHTTP(w, req)

	// Only the explicit Reset action may clear the form; the submit
	// script must not wipe the fields after a successful submission.
	assert.NotContains(t, w.Body.String(), "form.reset()")
	assert.Contains(t, w.Body.String(), `formaction="/reset"`)
}

func TestResetFormRedirectsWithFreshDraft(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/reset", nil)
	buildFormRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)

	location := w.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "/?draft="))

	_, err := uuid.Parse(strings.TrimPrefix(location, "/?draft="))
	assert.NoError(t, err)
}
