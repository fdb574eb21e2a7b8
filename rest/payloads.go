package rest

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
)

// LoginPayload carries the login attributes. Code selects the exchange
// path; login/password select the password path. No field level validation
// here: incomplete credentials fail authentication, not validation.
type LoginPayload struct {
	Code     string `json:"code"`
	Login    string `json:"login"`
	Password string `json:"password"`
}

// SignUpPayload are the attributes of a registration request
type SignUpPayload struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (p SignUpPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Login, validation.Required.Error("can't be blank")),
		validation.Field(&p.Password, validation.Required.Error("can't be blank")),
	)
}

// ArticlePayload are the attributes of an article create or update
type ArticlePayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Slug    string `json:"slug"`
}

func (p ArticlePayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required.Error("can't be blank")),
		validation.Field(&p.Content, validation.Required.Error("can't be blank")),
		validation.Field(&p.Slug, validation.Required.Error("can't be blank")),
	)
}

// CommentPayload are the attributes of a comment create
type CommentPayload struct {
	Content string `json:"content"`
}

func (p CommentPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Content, validation.Required.Error("can't be blank")),
	)
}

// request bodies arrive wrapped in a data/attributes envelope

type loginRequest struct {
	Data struct {
		Attributes LoginPayload `json:"attributes"`
	} `json:"data"`
}

type signUpRequest struct {
	Data struct {
		Attributes SignUpPayload `json:"attributes"`
	} `json:"data"`
}

type articleRequest struct {
	Data struct {
		Attributes ArticlePayload `json:"attributes"`
	} `json:"data"`
}

type commentRequest struct {
	Data struct {
		Attributes CommentPayload `json:"attributes"`
	} `json:"data"`
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "malformed request body").
			WithCode(goerrors.CodeBadRequest)
	}
	return nil
}
