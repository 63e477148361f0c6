// Package entities содержит доменные сущности сервиса blog.
package entities

import (
	"time"
)

// Note представляет заметку вместе с производными данными (лайки, теги).
type Note struct {
	ID        string
	Title     string
	Content   string
	AuthorID  string
	ViewCount int64
	CreatedAt time.Time
	UpdatedAt time.Time
	Likes     NoteLikes
	Tags      []Tag
}

// NoteLikes - агрегированная информация о лайках заметки.
type NoteLikes struct {
	Count int
	Users []LikeUser
}

// LikeUser - пользователь, поставивший лайк.
type LikeUser struct {
	ID    string
	Email string
}

// NoteInput - данные для создания заметки.
type NoteInput struct {
	Title   string
	Content string
	Tags    []string
}

// NotePatch - частичное изменение заметки. nil означает "не менять".
type NotePatch struct {
	Title   *string
	Content *string
	Tags    *[]string
}

// IsEmpty сообщает, что не передано ни title, ни content.
func (p NotePatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil
}

// NoteFilter описывает выборку списка заметок.
type NoteFilter struct {
	Search   string
	AuthorID string
	Tags     []string
	PageRequest
}

// Filtered сообщает, сужает ли фильтр выборку по содержимому (поиск или теги).
func (f NoteFilter) Filtered() bool {
	return f.Search != "" || len(f.Tags) > 0
}

// NotePage - страница заметок с метаданными пагинации.
type NotePage struct {
	Notes      []*Note
	Pagination Pagination
	Search     string
}

// NoteStats - общая статистика по заметкам.
type NoteStats struct {
	TotalNotes   int
	TotalAuthors int
	NotesToday   int
}

// LikeState - состояние лайка пары (цель, пользователь) после операции.
type LikeState struct {
	TargetID  string
	UserID    string
	IsLiked   bool
	LikeCount int
}
