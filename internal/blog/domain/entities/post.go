package entities

import "time"

// Post представляет запись блога.
type Post struct {
	ID            string
	Title         string
	Content       string
	Views         int64
	Tags          []string
	LikeCount     int
	IsLikedByUser bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PostInput - данные для создания записи.
type PostInput struct {
	Title   string
	Content string
	Tags    []string
}

// PostPatch - частичное изменение записи.
type PostPatch struct {
	Title   *string
	Content *string
	Tags    *[]string
}

// IsEmpty сообщает, что изменять нечего.
func (p PostPatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Tags == nil
}

// PostFilter описывает выборку списка записей.
type PostFilter struct {
	Search   string
	Tag      string
	ViewerID string
	PageRequest
}

// PostPage - страница записей.
type PostPage struct {
	Posts      []*Post
	Pagination Pagination
	Search     string
}
