package rest

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-publishing"
)

// rawTokenKey stores the presented bearer token on the request so logout
// can revoke exactly the credential that authenticated it.
const rawTokenKey = "publishing:raw_token"

// RequireAuth gates a route behind a bearer token. A missing or malformed
// Authorization header is an authentication failure; a well-formed token
// the store does not recognize is an authorization failure. The two map to
// different responses downstream.
func (s *Server) RequireAuth(c *fiber.Ctx) error {
	raw, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return publishing.ErrMissingAuthorization
	}

	user, err := s.tokens.Resolve(c.UserContext(), raw)
	if err != nil {
		return err
	}

	c.Locals(rawTokenKey, raw)
	c.SetUserContext(publishing.WithActor(c.UserContext(), user))

	return c.Next()
}

func bearerToken(header string) (string, bool) {
	const scheme = "Bearer"

	if len(header) < len(scheme)+2 {
		return "", false
	}
	if !strings.EqualFold(header[:len(scheme)], scheme) || header[len(scheme)] != ' ' {
		return "", false
	}

	token := strings.TrimSpace(header[len(scheme)+1:])
	if token == "" {
		return "", false
	}

	return token, true
}
