// Package publishing implements the core of a small publishing platform
// backend: articles and comments written by authenticated users and read by
// anonymous clients.
//
// Authentication:
//   - Credentials is a tagged union over the two login shapes the platform
//     accepts. A request carrying an exchange code is resolved against the
//     external identity provider (code exchange plus profile fetch); anything
//     else is treated as a login/password pair verified against the standard
//     provider. Both paths resolve to a local User or fail with a rich error.
//   - Authenticating never issues a credential. TokenService mints opaque
//     bearer tokens backed by the access_tokens table, so revocation on
//     logout is immediate and requires no client cooperation.
//
// Persistence:
//   - Repositories are Bun backed and follow the embedded
//     repository.Repository[T] pattern. Uniqueness (user login, token string,
//     article slug) is enforced by the store; get-or-create falls back to
//     re-reading the winning row when it loses a race.
//
// The HTTP surface lives in the rest package; jsonapi holds the wire format
// (documents, pagination links, error mapping).
package publishing
