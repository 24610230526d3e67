package apiimpl

import (
	"context"
	"net/http"
	"net/url"

	"github.com/micro-blogger/telegram-client/internal/domain"
)

type profilePayload struct {
	Username    string        `json:"username"`
	DisplayName *string       `json:"display_name"`
	Bio         *string       `json:"bio"`
	AvatarURL   *string       `json:"avatar_url"`
	Posts       []postPayload `json:"posts"`
}

func (p profilePayload) toDomain() *domain.Profile {
	profile := &domain.Profile{
		Username: p.Username,
		Posts:    make([]domain.Post, 0, len(p.Posts)),
	}
	if p.DisplayName != nil {
		profile.DisplayName = *p.DisplayName
	}
	if p.Bio != nil {
		profile.Bio = *p.Bio
	}
	if p.AvatarURL != nil {
		profile.AvatarURL = *p.AvatarURL
	}
	for _, post := range p.Posts {
		profile.Posts = append(profile.Posts, post.toDomain())
	}
	return profile
}

func (a *APIImpl) Profile(ctx context.Context, username string) (*domain.Profile, error) {
	var payload profilePayload
	if err := a.do(ctx, http.MethodGet, "/users/"+url.PathEscape(username), nil, false, &payload); err != nil {
		return nil, err
	}
	return payload.toDomain(), nil
}

func (a *APIImpl) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.Profile, error) {
	body := map[string]string{
		"display_name": update.DisplayName,
		"bio":          update.Bio,
		"avatar_url":   update.AvatarURL,
	}

	var payload profilePayload
	if err := a.do(ctx, http.MethodPut, "/me", body, true, &payload); err != nil {
		return nil, err
	}
	return payload.toDomain(), nil
}
