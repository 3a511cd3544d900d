package entities

import "time"

// User представляет зарегистрированного пользователя.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Author - публичные поля автора поста.
type Author struct {
	ID    string
	Name  string
	Email string
}

// AsAuthor возвращает публичное представление пользователя как автора.
func (u *User) AsAuthor() Author {
	return Author{ID: u.ID, Name: u.Name, Email: u.Email}
}
