package rest

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-publishing"
	"github.com/goliatone/go-publishing/jsonapi"
)

// ListComments returns one page of an article's comments, newest first.
// The article must exist; the comments of a missing article are a 404, not
// an empty collection.
func (s *Server) ListComments(c *fiber.Ctx) error {
	id, err := articleID(c)
	if err != nil {
		return err
	}

	if _, err := s.repo.Articles().GetByID(c.UserContext(), id.String()); err != nil {
		return err
	}

	params := s.pageParams(c)

	items, total, err := s.repo.Comments().RecentForArticle(c.UserContext(), id, params.Number, params.Size)
	if err != nil {
		return err
	}

	page := jsonapi.NewPage(items, total, params, c.Path())
	return c.JSON(commentCollection(page.Items, page.Links))
}

// CreateComment adds a comment by the authenticated user to an article
func (s *Server) CreateComment(c *fiber.Ctx) error {
	id, err := articleID(c)
	if err != nil {
		return err
	}

	req := commentRequest{}
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := req.Data.Attributes.Validate(); err != nil {
		return err
	}

	actor, _ := publishing.ActorFromContext(c.UserContext())

	var comment *publishing.Comment
	err = s.commentCreate.Execute(c.UserContext(), publishing.CreateCommentMessage{
		ArticleID: id,
		Content:   req.Data.Attributes.Content,
		Actor:     actor,
		OnResponse: func(cmt *publishing.Comment) {
			comment = cmt
		},
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(jsonapi.NewDocument(commentResource(comment)))
}
