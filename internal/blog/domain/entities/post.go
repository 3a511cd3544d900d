package entities

import "time"

// Post представляет пост блога. Author заполняется при чтении с денормализацией.
type Post struct {
	ID        string
	AuthorID  string
	Author    *Author
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAuthoredBy сообщает, является ли userID автором поста.
func (p *Post) IsAuthoredBy(userID string) bool {
	return userID != "" && p.AuthorID == userID
}

// PostPatch описывает частичное обновление поста. Пустые поля не меняются.
type PostPatch struct {
	Title   string
	Content string
}

// Profile - пользователь вместе с его постами.
type Profile struct {
	User  *User
	Posts []Post
}
