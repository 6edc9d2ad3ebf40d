// Package ui renders the server side pages: the root layout wiring the
// identity provider widgets, the marketing landing page and the dashboard.
package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"time"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	PageHome      = "home"
	PageDashboard = "dashboard"
)

var pages = []string{PageHome, PageDashboard}

// Shell carries the identity provider settings shared by every page.
type Shell struct {
	PublishableKey string
	FrontendAPI    string
	Appearance     Appearance
}

// ScriptURL is the location of the provider's browser SDK.
func (s Shell) ScriptURL() string {
	return fmt.Sprintf("https://%s/npm/@clerk/clerk-js@5/dist/clerk.browser.js", s.FrontendAPI)
}

// View is the per-request part of a page.
type View struct {
	SignedIn bool
	Nonce    string
	Now      time.Time
	Data     any
}

// HomeData feeds the landing page.
type HomeData struct {
	Features []Feature
}

// DashboardLink is a row of the dashboard table.
type DashboardLink struct {
	ShortCode   string
	OriginalURL string
	CreatedAt   time.Time
}

// DashboardData feeds the dashboard page.
type DashboardData struct {
	Links []DashboardLink
}

type pageData struct {
	View
	Title       string
	Description string
	Shell       Shell
}

func (p pageData) Year() int {
	return p.Now.Year()
}

type Renderer struct {
	shell     Shell
	templates map[string]*template.Template
}

func New(shell Shell) (*Renderer, error) {
	const op = "ui.New"

	r := &Renderer{
		shell:     shell,
		templates: make(map[string]*template.Template, len(pages)),
	}

	for _, page := range pages {
		tmpl, err := template.New("layout.html").ParseFS(templatesFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("%s: failed to parse %s template: %w", op, page, err)
		}
		r.templates[page] = tmpl
	}

	return r, nil
}

// Render writes the page to w. Nothing is written when execution fails.
func (r *Renderer) Render(w io.Writer, page string, view View) error {
	const op = "ui.Renderer.Render"

	tmpl, ok := r.templates[page]
	if !ok {
		return fmt.Errorf("%s: unknown page %q", op, page)
	}

	if view.Now.IsZero() {
		view.Now = time.Now()
	}

	data := pageData{
		View:        view,
		Title:       SiteTitle,
		Description: SiteDescription,
		Shell:       r.shell,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("%s: failed to execute %s template: %w", op, page, err)
	}

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("%s: failed to write page: %w", op, err)
	}

	return nil
}

// StaticHandler serves the embedded assets. Mount it with the /static/ prefix stripped.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}

	return http.FileServer(http.FS(sub))
}
