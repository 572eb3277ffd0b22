package ui

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"presence-analyzer/domain/presence"
)

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"weekday": presence.WeekdayAbbrev,
	}
	return template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
}

// renderTemplate executes a template into a buffer first so a failing
// template never produces a half-written page
func (s *Server) renderTemplate(c *gin.Context, templateName string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		s.logger.Error("Template error for %s: %v", templateName, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Template rendering failed"})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if _, err := buf.WriteTo(c.Writer); err != nil {
		s.logger.Warn("Error writing template response: %v", err)
	}
}
