// Package rest exposes the publishing platform over HTTP: token based
// authentication endpoints plus the articles and comments resources, all
// speaking JSON:API shaped documents.
package rest

import (
	"context"
	stderrors "errors"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-publishing"
	"github.com/goliatone/go-publishing/jsonapi"
	"github.com/goliatone/go-repository-bun"
)

// Config carries the collaborators the server needs. Auth, Tokens, and
// Repo are required; the rest have defaults.
type Config struct {
	Auth     publishing.Authenticator
	Tokens   publishing.TokenService
	Repo     publishing.RepositoryManager
	Logger   publishing.Logger
	Mapper   *jsonapi.Mapper
	PageSize int
}

// Server wires the HTTP routes to the domain layer
type Server struct {
	app      *fiber.App
	auth     publishing.Authenticator
	tokens   publishing.TokenService
	repo     publishing.RepositoryManager
	mapper   *jsonapi.Mapper
	logger   publishing.Logger
	pageSize int

	register      *publishing.RegisterUserHandler
	articleCreate *publishing.CreateArticleHandler
	articleUpdate *publishing.UpdateArticleHandler
	commentCreate *publishing.CreateCommentHandler
}

// New builds the server and registers its routes
func New(cfg Config) *Server {
	s := &Server{
		auth:     cfg.Auth,
		tokens:   cfg.Tokens,
		repo:     cfg.Repo,
		mapper:   cfg.Mapper,
		logger:   cfg.Logger,
		pageSize: cfg.PageSize,
	}

	if s.mapper == nil {
		s.mapper = jsonapi.NewMapper()
	}
	if s.logger == nil {
		s.logger = publishing.DefaultLogger()
	}
	if s.pageSize <= 0 {
		s.pageSize = jsonapi.DefaultPageSize
	}

	s.register = publishing.NewRegisterUserHandler(cfg.Repo).WithLogger(s.logger)
	s.articleCreate = publishing.NewCreateArticleHandler(cfg.Repo).WithLogger(s.logger)
	s.articleUpdate = publishing.NewUpdateArticleHandler(cfg.Repo).WithLogger(s.logger)
	s.commentCreate = publishing.NewCreateCommentHandler(cfg.Repo).WithLogger(s.logger)

	s.app = fiber.New(fiber.Config{
		ErrorHandler:          s.handleError,
		DisableStartupMessage: true,
	})

	s.routes()

	return s
}

func (s *Server) routes() {
	s.app.Post("/login", s.Login)
	s.app.Delete("/logout", s.RequireAuth, s.Logout)
	s.app.Post("/sign_up", s.SignUp)

	s.app.Get("/articles", s.ListArticles)
	s.app.Post("/articles", s.RequireAuth, s.CreateArticle)
	s.app.Get("/articles/:id", s.ShowArticle)
	s.app.Patch("/articles/:id", s.RequireAuth, s.UpdateArticle)

	s.app.Get("/articles/:id/comments", s.ListComments)
	s.app.Post("/articles/:id/comments", s.RequireAuth, s.CreateComment)
}

// App exposes the underlying fiber instance for tests
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks serving requests on the given address
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown drains in-flight requests and stops the listener
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// handleError is the single response boundary: whatever a handler returns
// is mapped to a JSON:API error document here. Server side failures get
// logged with their metadata; client errors do not.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	// routing misses arrive as fiber's own 404
	var fiberErr *fiber.Error
	if stderrors.As(err, &fiberErr) && fiberErr.Code == fiber.StatusNotFound {
		err = repository.NewRecordNotFound()
	}

	status, doc := s.mapper.Map(err)

	if status >= fiber.StatusInternalServerError {
		s.logger.Error("request failed: %s %s: %v", c.Method(), c.Path(), err)

		var rich *goerrors.Error
		if goerrors.As(err, &rich) && len(rich.Metadata) > 0 {
			s.logger.Debug("error metadata: %s", print.MaybePrettyJSON(rich.Metadata))
		}
	}

	return c.Status(status).JSON(doc)
}
