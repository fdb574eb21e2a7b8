package rest

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-publishing"
	"github.com/goliatone/go-publishing/jsonapi"
)

// SignUp registers a login/password account
func (s *Server) SignUp(c *fiber.Ctx) error {
	req := signUpRequest{}
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := req.Data.Attributes.Validate(); err != nil {
		return err
	}

	var user *publishing.User
	err := s.register.Execute(c.UserContext(), publishing.RegisterUserMessage{
		Login:    req.Data.Attributes.Login,
		Password: req.Data.Attributes.Password,
		OnResponse: func(u *publishing.User) {
			user = u
		},
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(jsonapi.NewDocument(userResource(user)))
}
