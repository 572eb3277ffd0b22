package ui

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// page is one report page reachable from the navigation bar
type page struct {
	Name  string
	Title string
}

var pages = []page{
	{Name: "presence_weekday", Title: "Presence weekday"},
	{Name: "mean_time_weekday", Title: "Mean time weekday"},
	{Name: "presence_start_end", Title: "Presence start-end"},
	{Name: "standard_deviation", Title: "Standard deviation"},
}

// pageData is passed to every page template
type pageData struct {
	Title   string
	Active  string
	Pages   []page
	Content template.HTML
}

func lookupPage(name string) (page, bool) {
	for _, p := range pages {
		if p.Name == name {
			return p, true
		}
	}
	return page{}, false
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Redirect(http.StatusFound, "/"+pages[0].Name)
}

// handlePage renders /<page> for the known report pages and answers 404
// for everything else
func (s *Server) handlePage(c *gin.Context) {
	name := strings.TrimPrefix(c.Request.URL.Path, "/")
	p, ok := lookupPage(name)
	if c.Request.Method != http.MethodGet || !ok || s.templates.Lookup(name+".html") == nil {
		c.String(http.StatusNotFound, "404 page not found")
		return
	}
	s.renderTemplate(c, name+".html", pageData{Title: p.Title, Active: p.Name, Pages: pages})
}

func (s *Server) handleHelp(c *gin.Context) {
	s.renderTemplate(c, "help.html", pageData{Title: "Help", Active: "help", Pages: pages, Content: s.help})
}
