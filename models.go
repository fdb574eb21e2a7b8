package publishing

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserProvider identifies how a user account was provisioned
type UserProvider = string

const (
	// ProviderStandard is a login/password account created via sign up
	ProviderStandard UserProvider = "standard"
	// ProviderGithub is an account provisioned through the GitHub code exchange
	ProviderGithub UserProvider = "github"
)

// User is the user model
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID    `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Login         string       `bun:"login,notnull,unique" json:"login,omitempty"`
	PasswordHash  string       `bun:"password_hash" json:"-"`
	Provider      UserProvider `bun:"provider,notnull" json:"provider,omitempty"`
	Name          string       `bun:"name" json:"name,omitempty"`
	AvatarURL     string       `bun:"avatar_url" json:"avatar_url,omitempty"`
	ProfileURL    string       `bun:"profile_url" json:"profile_url,omitempty"`
	CreatedAt     *time.Time   `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time   `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// IsStandard reports whether the user authenticates with a password
func (u *User) IsStandard() bool {
	return u != nil && u.Provider == ProviderStandard
}

// AccessToken is the opaque bearer credential bound to a user. A token is
// valid from the moment the row exists until the row is deleted; there is
// no expiry column, sessions last until explicit logout.
type AccessToken struct {
	bun.BaseModel `bun:"table:access_tokens,alias:tok"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Token         string     `bun:"token,notnull,unique" json:"token,omitempty"`
	UserID        uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	User          *User      `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

// Article is an authored piece of content, owned by exactly one user
type Article struct {
	bun.BaseModel `bun:"table:articles,alias:art"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Title         string     `bun:"title,notnull" json:"title,omitempty"`
	Content       string     `bun:"content,notnull" json:"content,omitempty"`
	Slug          string     `bun:"slug,notnull,unique" json:"slug,omitempty"`
	UserID        uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	User          *User      `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Comment belongs to one article and one user
type Comment struct {
	bun.BaseModel `bun:"table:comments,alias:cmt"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Content       string     `bun:"content,notnull" json:"content,omitempty"`
	ArticleID     uuid.UUID  `bun:"article_id,notnull,type:uuid" json:"article_id,omitempty"`
	Article       *Article   `bun:"rel:belongs-to,join:article_id=id" json:"article,omitempty"`
	UserID        uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	User          *User      `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}
