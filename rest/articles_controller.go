package rest

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-publishing"
	"github.com/goliatone/go-publishing/jsonapi"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

// ListArticles returns one page of articles, newest first, with the full
// navigation link set.
func (s *Server) ListArticles(c *fiber.Ctx) error {
	params := s.pageParams(c)

	items, total, err := s.repo.Articles().Recent(c.UserContext(), params.Number, params.Size)
	if err != nil {
		return err
	}

	page := jsonapi.NewPage(items, total, params, c.Path())
	return c.JSON(articleCollection(page.Items, page.Links))
}

// ShowArticle returns a single article by id
func (s *Server) ShowArticle(c *fiber.Ctx) error {
	id, err := articleID(c)
	if err != nil {
		return err
	}

	article, err := s.repo.Articles().GetByID(c.UserContext(), id.String())
	if err != nil {
		return err
	}

	return c.JSON(jsonapi.NewDocument(articleResource(article)))
}

// CreateArticle creates an article owned by the authenticated user
func (s *Server) CreateArticle(c *fiber.Ctx) error {
	req := articleRequest{}
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := req.Data.Attributes.Validate(); err != nil {
		return err
	}

	actor, _ := publishing.ActorFromContext(c.UserContext())

	var article *publishing.Article
	err := s.articleCreate.Execute(c.UserContext(), publishing.CreateArticleMessage{
		Title:   req.Data.Attributes.Title,
		Content: req.Data.Attributes.Content,
		Slug:    req.Data.Attributes.Slug,
		Actor:   actor,
		OnResponse: func(a *publishing.Article) {
			article = a
		},
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(jsonapi.NewDocument(articleResource(article)))
}

// UpdateArticle rewrites an article the authenticated user owns. Articles
// owned by someone else respond as if they did not exist.
func (s *Server) UpdateArticle(c *fiber.Ctx) error {
	id, err := articleID(c)
	if err != nil {
		return err
	}

	req := articleRequest{}
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := req.Data.Attributes.Validate(); err != nil {
		return err
	}

	actor, _ := publishing.ActorFromContext(c.UserContext())

	var article *publishing.Article
	err = s.articleUpdate.Execute(c.UserContext(), publishing.UpdateArticleMessage{
		ID:      id,
		Title:   req.Data.Attributes.Title,
		Content: req.Data.Attributes.Content,
		Slug:    req.Data.Attributes.Slug,
		Actor:   actor,
		OnResponse: func(a *publishing.Article) {
			article = a
		},
	})
	if err != nil {
		return err
	}

	return c.JSON(jsonapi.NewDocument(articleResource(article)))
}

func (s *Server) pageParams(c *fiber.Ctx) jsonapi.Params {
	return jsonapi.NewParams(
		c.Query("page[number]"),
		c.Query("page[size]"),
		s.pageSize,
	)
}

// articleID parses the :id route param. A value that is not a UUID cannot
// name an existing record, so it reads as not found rather than bad input.
func articleID(c *fiber.Ctx) (uuid.UUID, error) {
	raw := c.Params("id")

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"id": raw,
			})
	}

	return id, nil
}
