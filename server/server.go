package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/go-catalog-admin/apiclient"
	"github.com/jrsteele09/go-catalog-admin/auth"
	"github.com/jrsteele09/go-catalog-admin/catalog"
	"github.com/jrsteele09/go-catalog-admin/crud"
	"github.com/jrsteele09/go-catalog-admin/internal/config"
	"github.com/jrsteele09/go-catalog-admin/sessions"
	"github.com/jrsteele09/go-catalog-admin/token"
	"github.com/jrsteele09/go-catalog-admin/users"
	"github.com/rs/cors"
)

type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	mux      *http.ServeMux
	handler  http.Handler
	routes   []string
	config   config.Config
	api      *apiclient.Client
	flow     *auth.Flow
	sessions sessions.Repo
	now      func() time.Time

	categories    *crud.Controller[catalog.Category, catalog.CategoryForm]
	subcategories *crud.Controller[catalog.Subcategory, catalog.SubcategoryForm]
	products      *crud.Controller[catalog.Product, catalog.ProductForm]
	users         *crud.Controller[users.User, users.Form]
	entities      map[string]entityActions

	subcategoryAPI *catalog.Subcategories
}

type Option func(*Server)

// WithNowTime replaces the clock used for sessions and token expiry.
func WithNowTime(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

func New(config config.Config, sessionRepo sessions.Repo, opts ...Option) (*Server, error) {
	s := &Server{
		env:      config.GetEnv(),
		mux:      http.NewServeMux(),
		config:   config,
		api:      apiclient.New(config.GetAPIURL(), config.GetAPITimeout()),
		sessions: sessionRepo,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	inspector, err := newInspector(config)
	if err != nil {
		return nil, fmt.Errorf("[Server New] %w", err)
	}
	s.flow = auth.NewFlow(s.api, inspector,
		auth.WithNowTime(s.now),
		auth.WithRefreshThreshold(config.GetRefreshThreshold()),
	)

	s.categories = crud.NewController[catalog.Category, catalog.CategoryForm](catalog.NewCategories(s.api))
	s.subcategoryAPI = catalog.NewSubcategories(s.api)
	s.subcategories = crud.NewController[catalog.Subcategory, catalog.SubcategoryForm](s.subcategoryAPI)
	s.products = crud.NewController[catalog.Product, catalog.ProductForm](catalog.NewProducts(s.api))
	s.users = crud.NewController[users.User, users.Form](users.NewUsers(s.api))
	s.entities = map[string]entityActions{
		s.categories.Kind():    entity[catalog.Category, catalog.CategoryForm]{s.categories, parseCategoryForm},
		s.subcategories.Kind(): entity[catalog.Subcategory, catalog.SubcategoryForm]{s.subcategories, parseSubcategoryForm},
		s.products.Kind():      entity[catalog.Product, catalog.ProductForm]{s.products, parseProductForm},
		s.users.Kind():         entity[users.User, users.Form]{s.users, parseUserForm},
	}

	s.initRoutes()
	s.logRoutes()
	s.handler = cors.New(cors.Options{
		AllowedOrigins:   config.GetAllowedOrigins(),
		AllowedMethods:   config.GetAllowedMethods(),
		AllowedHeaders:   config.GetAllowedHeaders(),
		AllowCredentials: true,
	}).Handler(s.mux)

	return s, nil
}

// newInspector decodes claims without verification unless JWT_VERIFY_SIGNATURE is set.
func newInspector(c config.Config) (*token.Inspector, error) {
	if !c.GetVerifySignature() {
		return token.NewInspector(), nil
	}
	if c.GetJWTSecret() == "" {
		return nil, fmt.Errorf("JWT_VERIFY_SIGNATURE is set but JWT_SECRET is empty")
	}
	return token.NewInspector(token.WithHMACSecret(c.GetJWTSecret())), nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	log.Printf("[%-19s] %s\n", colouredMethod(method), path)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
