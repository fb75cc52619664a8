package controllers

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	pkgAuth "github.com/Areandra/Kelvin/pkg/auth"
	"github.com/Areandra/Kelvin/pkg/auth/session"
	"github.com/Areandra/Kelvin/pkg/config"
	"github.com/Areandra/Kelvin/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageRenderer serves the thin server-rendered pages. The only logic beyond
// template execution is the session gate on the authenticated pages.
type PageRenderer struct {
	tmpl     *template.Template
	jwtCfg   config.JWTConfig
	verifier session.AccessSessionChecker
	logg     *logger.Logger
}

type pageData struct {
	Title  string
	Active string
}

// NewPageRenderer parses the embedded templates.
func NewPageRenderer(jwtCfg config.JWTConfig, verifier session.AccessSessionChecker, logg *logger.Logger) (*PageRenderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing page templates: %w", err)
	}
	return &PageRenderer{tmpl: tmpl, jwtCfg: jwtCfg, verifier: verifier, logg: logg}, nil
}

// Home renders the public landing page.
func (p *PageRenderer) Home(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, "home.html", pageData{Title: "Inventaris", Active: "home"})
}

// Login renders the login form. An already-authenticated session is sent
// straight to the dashboard.
func (p *PageRenderer) Login(w http.ResponseWriter, r *http.Request) {
	if p.sessionOK(r) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	p.render(w, r, "login.html", pageData{Title: "Masuk", Active: "login"})
}

// Dashboard renders the session-gated dashboard shell.
func (p *PageRenderer) Dashboard(w http.ResponseWriter, r *http.Request) {
	p.gated(w, r, "dashboard.html", pageData{Title: "Dashboard", Active: "dashboard"})
}

// Categories renders the category management shell.
func (p *PageRenderer) Categories(w http.ResponseWriter, r *http.Request) {
	p.gated(w, r, "categories.html", pageData{Title: "Kategori", Active: "categories"})
}

// Products renders the product management shell.
func (p *PageRenderer) Products(w http.ResponseWriter, r *http.Request) {
	p.gated(w, r, "products.html", pageData{Title: "Produk", Active: "products"})
}

// Transactions renders the stock movement shell.
func (p *PageRenderer) Transactions(w http.ResponseWriter, r *http.Request) {
	p.gated(w, r, "transactions.html", pageData{Title: "Transaksi", Active: "transactions"})
}

// Suppliers renders the supplier management shell.
func (p *PageRenderer) Suppliers(w http.ResponseWriter, r *http.Request) {
	p.gated(w, r, "suppliers.html", pageData{Title: "Supplier", Active: "suppliers"})
}

func (p *PageRenderer) gated(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	if !p.sessionOK(r) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	p.render(w, r, name, data)
}

// sessionOK checks the auth cookie against the access token signature and
// the live session store.
func (p *PageRenderer) sessionOK(r *http.Request) bool {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return false
	}
	claims, err := pkgAuth.ParseAccessToken(p.jwtCfg, cookie.Value)
	if err != nil || claims.ID == "" {
		return false
	}
	if p.verifier == nil {
		return true
	}
	ok, err := p.verifier.HasSession(r.Context(), claims.ID)
	return err == nil && ok
}

func (p *PageRenderer) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := p.tmpl.ExecuteTemplate(w, name, data); err != nil {
		if p.logg != nil {
			p.logg.Error(r.Context(), "page.render", err)
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
