package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Handler serves the server-rendered pages. The pages are presentational
// glue: they talk to the JSON API from the browser with the bearer token
// kept in localStorage.
type Handler struct {
	tmpl *template.Template
}

func NewHandler() (*Handler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}
	return &Handler{tmpl: tmpl}, nil
}

// Register wires the page routes and installs the template set.
func (h *Handler) Register(router *gin.Engine) {
	router.SetHTMLTemplate(h.tmpl)

	router.GET("/", h.page("home.tmpl", "Prompt2Site"))
	router.GET("/login", h.page("login.tmpl", "Log in"))
	router.GET("/register", h.page("register.tmpl", "Create account"))
	router.GET("/create", h.page("create.tmpl", "Create a website"))
	router.GET("/dashboard", h.page("dashboard.tmpl", "Your projects"))
	router.GET("/project/:id", h.projectPage)
}

func (h *Handler) page(name, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, name, gin.H{"Title": title})
	}
}

func (h *Handler) projectPage(c *gin.Context) {
	c.HTML(http.StatusOK, "project.tmpl", gin.H{
		"Title":     "Project",
		"ProjectID": c.Param("id"),
	})
}
