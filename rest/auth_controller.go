package rest

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-publishing"
	"github.com/goliatone/go-publishing/jsonapi"
	"github.com/goliatone/go-repository-bun"
)

// Login authenticates either a login/password pair or a provider code and
// answers with a freshly minted access token document.
func (s *Server) Login(c *fiber.Ctx) error {
	req := loginRequest{}
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := s.auth.Authenticate(c.UserContext(), publishing.Credentials{
		Code:     req.Data.Attributes.Code,
		Login:    req.Data.Attributes.Login,
		Password: req.Data.Attributes.Password,
	})
	if err != nil {
		return err
	}

	token, err := s.tokens.Issue(c.UserContext(), user)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(jsonapi.NewDocument(tokenResource(token)))
}

// Logout revokes the token that authenticated this request. A token that
// disappeared between the gate and here is already logged out, so that
// race is not an error.
func (s *Server) Logout(c *fiber.Ctx) error {
	raw, _ := c.Locals(rawTokenKey).(string)

	if err := s.tokens.Revoke(c.UserContext(), raw); err != nil {
		if !repository.IsRecordNotFound(err) {
			return err
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}
