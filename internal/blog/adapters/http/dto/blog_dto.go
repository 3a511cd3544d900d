package dto

import (
	"time"

	"bloghub/internal/blog/domain/entities"
)

// CreatePostRequest содержит данные нового поста.
type CreatePostRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// Validate проверяет наличие заголовка и текста.
func (r *CreatePostRequest) Validate() error {
	return check(r, entities.ErrPostFieldsRequired)
}

// UpdatePostRequest содержит частичное обновление. Пустые поля не меняются.
type UpdatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Patch переводит запрос в доменное обновление.
func (r *UpdatePostRequest) Patch() entities.PostPatch {
	return entities.PostPatch{Title: r.Title, Content: r.Content}
}

// AuthorResponse - публичные поля автора.
type AuthorResponse struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PostResponse - пост вместе с автором.
type PostResponse struct {
	ID        string          `json:"_id"`
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	Author    *AuthorResponse `json:"author"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// NewPostResponse строит ответ. Без денормализованного автора отдается только его ID.
func NewPostResponse(p *entities.Post) PostResponse {
	author := &AuthorResponse{ID: p.AuthorID}
	if p.Author != nil {
		author = &AuthorResponse{ID: p.Author.ID, Name: p.Author.Name, Email: p.Author.Email}
	}
	return PostResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Author:    author,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// NewPostListResponse строит список постов. Пустой список сериализуется как [].
func NewPostListResponse(posts []entities.Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, NewPostResponse(&posts[i]))
	}
	return out
}

// AuthoredPostResponse - пост в профиле автора.
type AuthoredPostResponse struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProfileResponse - текущий пользователь и его посты.
type ProfileResponse struct {
	User          UserResponse           `json:"user"`
	AuthoredPosts []AuthoredPostResponse `json:"authoredPosts"`
}

// NewProfileResponse строит ответ профиля.
func NewProfileResponse(p *entities.Profile) ProfileResponse {
	posts := make([]AuthoredPostResponse, 0, len(p.Posts))
	for _, post := range p.Posts {
		posts = append(posts, AuthoredPostResponse{
			ID:        post.ID,
			Title:     post.Title,
			Content:   post.Content,
			CreatedAt: post.CreatedAt,
			UpdatedAt: post.UpdatedAt,
		})
	}
	return ProfileResponse{User: NewUserResponse(p.User), AuthoredPosts: posts}
}
