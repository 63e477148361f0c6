package dto

import (
	"time"

	"noteblog/internal/blog/domain/entities"
)

// LikeUser - пользователь в списке лайкнувших.
type LikeUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Likes - агрегат лайков заметки.
type Likes struct {
	Count int        `json:"count"`
	Users []LikeUser `json:"users"`
}

// Tag - тег в ответе.
type Tag struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	NoteCount int    `json:"noteCount,omitempty"`
}

// Note представляет заметку.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"authorId"`
	ViewCount int64     `json:"viewCount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Likes     Likes     `json:"likes"`
	Tags      []Tag     `json:"tags"`
}

// Pagination - метаданные страницы.
type Pagination struct {
	CurrentPage     int  `json:"currentPage"`
	TotalPages      int  `json:"totalPages"`
	TotalCount      int  `json:"totalCount"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// ListNotesResponse содержит страницу заметок.
type ListNotesResponse struct {
	Notes      []Note     `json:"notes"`
	Pagination Pagination `json:"pagination"`
	Search     string     `json:"search,omitempty"`
}

// NotesResponse - список заметок без пагинации.
type NotesResponse struct {
	Notes []Note `json:"notes"`
}

// NoteStats - общая статистика.
type NoteStats struct {
	TotalNotes int `json:"totalNotes"`
	TotalUsers int `json:"totalUsers"`
	NotesToday int `json:"notesToday"`
}

// LikedNotesResponse - идентификаторы лайкнутых заметок.
type LikedNotesResponse struct {
	NoteIDs []string `json:"noteIds"`
}

// LikeStatusResponse - состояние лайков заметки.
type LikeStatusResponse struct {
	NoteID    string `json:"noteId"`
	LikeCount int    `json:"likeCount"`
	IsLiked   bool   `json:"isLiked"`
	UserID    string `json:"userId,omitempty"`
}

// NoteLikeResponse - результат переключения лайка заметки.
type NoteLikeResponse struct {
	NoteID    string `json:"noteId"`
	UserID    string `json:"userId"`
	IsLiked   bool   `json:"isLiked"`
	LikeCount int    `json:"likeCount"`
	Message   string `json:"message"`
}

// PostLikeResponse - результат переключения лайка записи.
type PostLikeResponse struct {
	PostID    string `json:"postId"`
	UserID    string `json:"userId"`
	IsLiked   bool   `json:"isLiked"`
	LikeCount int    `json:"likeCount"`
	Message   string `json:"message"`
}

// NoteViewResponse - новое значение счетчика просмотров заметки.
type NoteViewResponse struct {
	Message   string `json:"message"`
	ViewCount int64  `json:"viewCount"`
}

// PostViewResponse - новое значение счетчика просмотров записи.
type PostViewResponse struct {
	Message string `json:"message"`
	Views   int64  `json:"views"`
}

// Comment - комментарий с ответами.
type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	NoteID    string    `json:"noteId"`
	AuthorID  string    `json:"authorId"`
	ParentID  *string   `json:"parentId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Replies   []Comment `json:"replies"`
}

// CommentsResponse - дерево комментариев.
type CommentsResponse struct {
	Comments []Comment `json:"comments"`
}

// TagsResponse - теги с числом заметок.
type TagsResponse struct {
	Tags []Tag `json:"tags"`
}

// PostTagsResponse - имена тегов записей.
type PostTagsResponse struct {
	Tags []string `json:"tags"`
}

// Post представляет запись блога.
type Post struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Views         int64     `json:"views"`
	Tags          []string  `json:"tags"`
	LikeCount     int       `json:"likeCount"`
	IsLikedByUser bool      `json:"isLikedByUser"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ListPostsResponse содержит страницу записей.
type ListPostsResponse struct {
	Posts      []Post     `json:"posts"`
	Pagination Pagination `json:"pagination"`
	Search     string     `json:"search,omitempty"`
}

// PostsResponse - список записей без пагинации.
type PostsResponse struct {
	Posts []Post `json:"posts"`
}

// Profile - публичный профиль.
type Profile struct {
	ID        string    `json:"id"`
	Email     *string   `json:"email"`
	FullName  *string   `json:"fullName"`
	AvatarURL *string   `json:"avatarUrl"`
	Bio       *string   `json:"bio"`
	Website   *string   `json:"website"`
	Location  *string   `json:"location"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProfileResponse - профиль с сообщением.
type ProfileResponse struct {
	Profile Profile `json:"profile"`
	Message string  `json:"message"`
}

// DeleteResponse - результат удаления.
type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RevalidateResponse - сброшенные теги кэша.
type RevalidateResponse struct {
	Revalidated []string `json:"revalidated"`
}

// HealthResponse - состояние сервиса и зависимостей.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

// ClientConfigResponse - публичные настройки для клиента.
type ClientConfigResponse struct {
	AuthURL     string `json:"authUrl"`
	AuthAnonKey string `json:"authAnonKey"`
	SiteURL     string `json:"siteUrl"`
	Environment string `json:"environment"`
}

// NewNote переводит доменную заметку в ответ.
func NewNote(n *entities.Note) Note {
	users := make([]LikeUser, 0, len(n.Likes.Users))
	for _, u := range n.Likes.Users {
		users = append(users, LikeUser{ID: u.ID, Email: u.Email})
	}
	tags := make([]Tag, 0, len(n.Tags))
	for _, t := range n.Tags {
		tags = append(tags, Tag{ID: t.ID, Name: t.Name, Slug: t.Slug})
	}
	return Note{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		AuthorID:  n.AuthorID,
		ViewCount: n.ViewCount,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
		Likes:     Likes{Count: n.Likes.Count, Users: users},
		Tags:      tags,
	}
}

// NewNotes переводит список заметок.
func NewNotes(notes []*entities.Note) []Note {
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		out = append(out, NewNote(n))
	}
	return out
}

// NewPagination переводит метаданные страницы.
func NewPagination(p entities.Pagination) Pagination {
	return Pagination{
		CurrentPage:     p.CurrentPage,
		TotalPages:      p.TotalPages,
		TotalCount:      p.TotalCount,
		HasNextPage:     p.HasNextPage,
		HasPreviousPage: p.HasPreviousPage,
	}
}

// NewTags переводит теги со счетчиками.
func NewTags(tags []*entities.Tag) []Tag {
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		out = append(out, Tag{ID: t.ID, Name: t.Name, Slug: t.Slug, NoteCount: t.NoteCount})
	}
	return out
}

// NewPost переводит запись блога.
func NewPost(p *entities.Post) Post {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return Post{
		ID:            p.ID,
		Title:         p.Title,
		Content:       p.Content,
		Views:         p.Views,
		Tags:          tags,
		LikeCount:     p.LikeCount,
		IsLikedByUser: p.IsLikedByUser,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// NewPosts переводит список записей.
func NewPosts(posts []*entities.Post) []Post {
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		out = append(out, NewPost(p))
	}
	return out
}

// NewProfile переводит профиль.
func NewProfile(p *entities.Profile) Profile {
	return Profile{
		ID:        p.ID,
		Email:     p.Email,
		FullName:  p.FullName,
		AvatarURL: p.AvatarURL,
		Bio:       p.Bio,
		Website:   p.Website,
		Location:  p.Location,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// NewComments переводит дерево комментариев.
func NewComments(comments []*entities.Comment) []Comment {
	out := make([]Comment, 0, len(comments))
	for _, c := range comments {
		out = append(out, NewComment(c))
	}
	return out
}

// NewComment переводит комментарий вместе с ответами.
func NewComment(c *entities.Comment) Comment {
	return Comment{
		ID:        c.ID,
		Content:   c.Content,
		NoteID:    c.NoteID,
		AuthorID:  c.AuthorID,
		ParentID:  c.ParentID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Replies:   NewComments(c.Replies),
	}
}
