package github

import "github.com/goliatone/go-publishing"

type githubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
	Company   string `json:"company"`
	Blog      string `json:"blog"`
	Location  string `json:"location"`
	Bio       string `json:"bio"`
}

func mapProfile(user *githubUser) *publishing.ProviderProfile {
	if user == nil {
		return nil
	}

	return &publishing.ProviderProfile{
		Login:      user.Login,
		Name:       user.Name,
		AvatarURL:  user.AvatarURL,
		ProfileURL: user.HTMLURL,
	}
}
