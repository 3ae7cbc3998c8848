package httpapi

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/uklc/lessons/internal/catalog"
	"github.com/uklc/lessons/internal/filter"
	"github.com/uklc/lessons/internal/logger"
	"github.com/uklc/lessons/internal/model"
)

type LessonHandler struct {
	log     *logger.Logger
	catalog *catalog.Manager
}

func NewLessonHandler(log *logger.Logger, m *catalog.Manager) *LessonHandler {
	return &LessonHandler{log: log.With("handler", "LessonHandler"), catalog: m}
}

// lessonInput is the request body for create and update.
type lessonInput struct {
	Title       string   `json:"title"`
	Week        string   `json:"week"`
	Programme   string   `json:"programme"`
	Level       string   `json:"level"`
	Focus       string   `json:"focus"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	PDFPath     string   `json:"pdfPath"`
	Revision    int      `json:"revision"`
}

func (in lessonInput) draft() model.Draft {
	return model.Draft{
		Title:       in.Title,
		Week:        in.Week,
		Programme:   in.Programme,
		Level:       in.Level,
		Focus:       in.Focus,
		Description: in.Description,
		Tags:        in.Tags,
		PDFPath:     in.PDFPath,
	}
}

func (h *LessonHandler) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// GET /api/values
func (h *LessonHandler) Values(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"weeks":      model.Weeks,
		"programmes": model.Programmes,
		"levels":     model.Levels,
		"focuses":    model.Focuses,
		"tags":       model.CommonTags,
	})
}

// GET /api/lessons
func (h *LessonHandler) List(c *gin.Context) {
	crit := filter.Criteria{
		Search:    c.Query("search"),
		Week:      c.Query("week"),
		Programme: c.Query("programme"),
		Level:     c.Query("level"),
		Focus:     c.Query("focus"),
		Tags:      splitTags(c.QueryArray("tags")),
	}
	c.JSON(http.StatusOK, h.catalog.Filter(crit))
}

// GET /api/lessons/:id
func (h *LessonHandler) Get(c *gin.Context) {
	l, err := h.catalog.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

// GET /api/lessons/:id/document
func (h *LessonHandler) Document(c *gin.Context) {
	l, err := h.catalog.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if l.PDFPath == "" {
		writeError(c, fmt.Errorf("%w: lesson %s has no document", model.ErrNotFound, l.ID))
		return
	}
	ref, err := model.ParseDocumentRef(l.PDFPath)
	if err != nil {
		writeError(c, err)
		return
	}
	switch ref.Kind {
	case model.DocumentEmbedded:
		c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", l.ID+".pdf"))
		c.Data(http.StatusOK, ref.MediaType(), ref.Data)
	default:
		c.Redirect(http.StatusFound, ref.URL)
	}
}

// GET /api/stats
func (h *LessonHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Stats())
}

// GET /api/export
func (h *LessonHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.catalog.Export(&buf); err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", catalog.ExportFilename))
	c.Data(http.StatusOK, "application/json", buf.Bytes())
}

// POST /api/lessons
func (h *LessonHandler) Create(c *gin.Context) {
	var in lessonInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, fmt.Errorf("%w: %v", model.ErrValidation, err))
		return
	}
	l, err := h.catalog.Create(c.Request.Context(), in.draft())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

// PUT /api/lessons/:id
func (h *LessonHandler) Update(c *gin.Context) {
	var in lessonInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, fmt.Errorf("%w: %v", model.ErrValidation, err))
		return
	}
	l := in.draft().Lesson()
	l.ID = c.Param("id")
	l.Revision = in.Revision

	updated, err := h.catalog.Update(c.Request.Context(), l)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /api/lessons/:id?confirm=true
func (h *LessonHandler) Delete(c *gin.Context) {
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))
	id := c.Param("id")
	err := h.catalog.Delete(c.Request.Context(), id, func(model.Lesson) bool { return confirmed })
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": id})
}

// POST /api/import
func (h *LessonHandler) Import(c *gin.Context) {
	n, err := h.catalog.Import(c.Request.Context(), c.Request.Body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "imported": n})
}

// splitTags accepts both repeated ?tags= parameters and comma-separated values.
func splitTags(values []string) []string {
	var tags []string
	for _, v := range values {
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}
	return tags
}
