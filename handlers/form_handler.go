package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/dongbac/feedback-backend/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

//go:embed templates/form.html
var formFS embed.FS

var formTemplate = template.Must(template.ParseFS(formFS, "templates/form.html"))

// FormHandler serves the single-page submission form.
type FormHandler struct {
	maxFiles int
}

// NewFormHandler creates a new FormHandler.
func NewFormHandler(maxFiles int) *FormHandler {
	return &FormHandler{maxFiles: maxFiles}
}

type formPageData struct {
	DraftID             string
	Categories          []string
	Priorities          []string
	CategoryPlaceholder string
	PriorityPlaceholder string
	MaxFiles            int
}

// ShowForm renders the feedback form.
// GET /
// A fresh draft id is issued unless the client carries one in the query.
func (h *FormHandler) ShowForm(c *gin.Context) {
	draftID := c.Query("draft")
	if _, err := uuid.Parse(draftID); err != nil {
		draftID = uuid.New().String()
	}

	data := formPageData{
		DraftID:             draftID,
		Categories:          types.Categories,
		Priorities:          types.Priorities,
		CategoryPlaceholder: types.CategoryPlaceholder,
		PriorityPlaceholder: types.PriorityPlaceholder,
		MaxFiles:            h.maxFiles,
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := formTemplate.Execute(c.Writer, data); err != nil {
		_ = c.Error(fmt.Errorf("failed to render form: %w", err))
	}
}

// ResetForm discards the current draft and redirects to a blank form.
// POST /reset
func (h *FormHandler) ResetForm(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/?draft="+uuid.New().String())
}
