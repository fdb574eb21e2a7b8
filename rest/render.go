package rest

import (
	"github.com/goliatone/go-publishing"
	"github.com/goliatone/go-publishing/jsonapi"
)

type userAttributes struct {
	Login      string `json:"login"`
	Name       string `json:"name,omitempty"`
	AvatarURL  string `json:"avatar_url,omitempty"`
	ProfileURL string `json:"profile_url,omitempty"`
}

type tokenAttributes struct {
	Token string `json:"token"`
}

type articleAttributes struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Slug    string `json:"slug"`
}

type commentAttributes struct {
	Content string `json:"content"`
}

func userResource(u *publishing.User) jsonapi.Resource {
	return jsonapi.Resource{
		ID:   u.ID.String(),
		Type: "users",
		Attributes: userAttributes{
			Login:      u.Login,
			Name:       u.Name,
			AvatarURL:  u.AvatarURL,
			ProfileURL: u.ProfileURL,
		},
	}
}

func tokenResource(t *publishing.AccessToken) jsonapi.Resource {
	return jsonapi.Resource{
		ID:   t.ID.String(),
		Type: "access_tokens",
		Attributes: tokenAttributes{
			Token: t.Token,
		},
	}
}

func articleResource(a *publishing.Article) jsonapi.Resource {
	return jsonapi.Resource{
		ID:   a.ID.String(),
		Type: "articles",
		Attributes: articleAttributes{
			Title:   a.Title,
			Content: a.Content,
			Slug:    a.Slug,
		},
	}
}

func commentResource(cmt *publishing.Comment) jsonapi.Resource {
	return jsonapi.Resource{
		ID:   cmt.ID.String(),
		Type: "comments",
		Attributes: commentAttributes{
			Content: cmt.Content,
		},
		Relationships: map[string]jsonapi.Relationship{
			"article": {
				Data: jsonapi.ResourceIdentifier{
					ID:   cmt.ArticleID.String(),
					Type: "articles",
				},
			},
			"user": {
				Data: jsonapi.ResourceIdentifier{
					ID:   cmt.UserID.String(),
					Type: "users",
				},
			},
		},
	}
}

func articleCollection(items []*publishing.Article, links jsonapi.Links) jsonapi.CollectionDocument {
	data := make([]jsonapi.Resource, 0, len(items))
	for _, a := range items {
		data = append(data, articleResource(a))
	}
	return jsonapi.CollectionDocument{Data: data, Links: &links}
}

func commentCollection(items []*publishing.Comment, links jsonapi.Links) jsonapi.CollectionDocument {
	data := make([]jsonapi.Resource, 0, len(items))
	for _, cmt := range items {
		data = append(data, commentResource(cmt))
	}
	return jsonapi.CollectionDocument{Data: data, Links: &links}
}
