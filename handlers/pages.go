package handlers

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/wordbook/wordbook/internal/word"
	"github.com/wordbook/wordbook/internal/word/service"
	"github.com/wordbook/wordbook/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the page templates. origin values are path-escaped when
// they are placed in a link.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"pathEscape": escapeOrigin,
	}).ParseFS(templateFS, "templates/*.html"))
}

// RegisterPages mounts the server-rendered list and detail pages.
func RegisterPages(r *gin.Engine, svc service.Service) {
	// keep %2F inside an origin from splitting the path segment
	r.UseRawPath = true
	r.UnescapePathValues = true
	r.SetHTMLTemplate(Templates())

	r.GET("/", ListPage(svc))
	r.GET("/word/:origin", DetailPage(svc))
}

// ListPage loads every word at request time. A store failure is logged and
// rendered as an empty list.
func ListPage(svc service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		words, err := svc.ListAll(c.Request.Context())
		if err != nil {
			logger.WithError(err).WithField("requestId", c.GetString("requestId")).Error("list page: loading words failed")
			words = nil
		}
		c.HTML(http.StatusOK, "list.html", gin.H{"Words": newestFirst(words)})
	}
}

// DetailPage renders one word by origin. Missing records and store failures
// both produce the not-found page.
func DetailPage(svc service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Param("origin")
		w, err := svc.FindByOrigin(c.Request.Context(), origin)
		if err != nil {
			if !errors.Is(err, word.ErrNotFound) {
				logger.WithError(err).WithField("origin", origin).Error("detail page: loading word failed")
			}
			c.HTML(http.StatusNotFound, "not_found.html", gin.H{})
			return
		}
		c.HTML(http.StatusOK, "detail.html", gin.H{"Word": w})
	}
}

// escapeOrigin escapes an origin for use as one path segment. "." and ".."
// are percent-encoded too so browsers do not resolve them as dot segments.
func escapeOrigin(origin string) string {
	if origin == "." || origin == ".." {
		return strings.Repeat("%2E", len(origin))
	}
	return url.PathEscape(origin)
}

// newestFirst reverses the load order for display; stored order is untouched.
func newestFirst(words []*word.Word) []*word.Word {
	out := make([]*word.Word, len(words))
	for i, w := range words {
		out[len(words)-1-i] = w
	}
	return out
}
