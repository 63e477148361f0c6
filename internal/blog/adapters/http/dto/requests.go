// Package dto содержит структуры запросов и ответов HTTP API.
package dto

import (
	"strings"

	"noteblog/internal/blog/domain/entities"
)

// CreateNoteRequest содержит данные для создания заметки.
type CreateNoteRequest struct {
	Title   string   `json:"title" validate:"required,max=200"`
	Content string   `json:"content" validate:"required,max=50000"`
	Tags    []string `json:"tags" validate:"omitempty,max=20,dive,required,max=50"`
}

// Normalize обрезает пробелы перед валидацией.
func (r *CreateNoteRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Content = strings.TrimSpace(r.Content)
	trimAll(r.Tags)
}

// Input переводит запрос в доменную структуру.
func (r *CreateNoteRequest) Input() entities.NoteInput {
	return entities.NoteInput{Title: r.Title, Content: r.Content, Tags: r.Tags}
}

// UpdateNoteRequest содержит частичное изменение заметки.
type UpdateNoteRequest struct {
	Title   *string   `json:"title" validate:"omitnil,min=1,max=200"`
	Content *string   `json:"content" validate:"omitnil,min=1,max=50000"`
	Tags    *[]string `json:"tags" validate:"omitnil,max=20,dive,required,max=50"`
}

// Normalize обрезает пробелы перед валидацией.
func (r *UpdateNoteRequest) Normalize() {
	trimPtr(r.Title)
	trimPtr(r.Content)
	if r.Tags != nil {
		trimAll(*r.Tags)
	}
}

// Patch переводит запрос в доменную структуру.
func (r *UpdateNoteRequest) Patch() entities.NotePatch {
	return entities.NotePatch{Title: r.Title, Content: r.Content, Tags: r.Tags}
}

// CreatePostRequest содержит данные для создания записи.
type CreatePostRequest struct {
	Title   string   `json:"title" validate:"required,max=200"`
	Content string   `json:"content" validate:"required,max=50000"`
	Tags    []string `json:"tags" validate:"omitempty,max=10,dive,required,max=50"`
}

// Normalize обрезает пробелы перед валидацией.
func (r *CreatePostRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Content = strings.TrimSpace(r.Content)
	trimAll(r.Tags)
}

// Input переводит запрос в доменную структуру.
func (r *CreatePostRequest) Input() entities.PostInput {
	return entities.PostInput{Title: r.Title, Content: r.Content, Tags: r.Tags}
}

// UpdatePostRequest содержит частичное изменение записи.
type UpdatePostRequest struct {
	Title   *string   `json:"title" validate:"omitnil,min=1,max=200"`
	Content *string   `json:"content" validate:"omitnil,min=1,max=50000"`
	Tags    *[]string `json:"tags" validate:"omitnil,max=10,dive,required,max=50"`
}

// Normalize обрезает пробелы перед валидацией.
func (r *UpdatePostRequest) Normalize() {
	trimPtr(r.Title)
	trimPtr(r.Content)
	if r.Tags != nil {
		trimAll(*r.Tags)
	}
}

// Patch переводит запрос в доменную структуру.
func (r *UpdatePostRequest) Patch() entities.PostPatch {
	return entities.PostPatch{Title: r.Title, Content: r.Content, Tags: r.Tags}
}

// UpdateProfileRequest содержит изменяемые поля профиля.
type UpdateProfileRequest struct {
	Email     *string `json:"email" validate:"omitnil,email"`
	FullName  *string `json:"fullName" validate:"omitnil,min=1,max=100"`
	AvatarURL *string `json:"avatarUrl" validate:"omitnil,max=2048,weburl"`
	Bio       *string `json:"bio" validate:"omitnil,max=500"`
	Website   *string `json:"website" validate:"omitnil,max=2048,weburl"`
	Location  *string `json:"location" validate:"omitnil,max=100"`
}

// Normalize обрезает пробелы перед валидацией.
func (r *UpdateProfileRequest) Normalize() {
	trimPtr(r.Email)
	trimPtr(r.FullName)
	trimPtr(r.AvatarURL)
	trimPtr(r.Bio)
	trimPtr(r.Website)
	trimPtr(r.Location)
}

// Patch переводит запрос в доменную структуру.
func (r *UpdateProfileRequest) Patch() entities.ProfilePatch {
	return entities.ProfilePatch{
		Email:     r.Email,
		FullName:  r.FullName,
		AvatarURL: r.AvatarURL,
		Bio:       r.Bio,
		Website:   r.Website,
		Location:  r.Location,
	}
}

// CreateCommentRequest содержит комментарий или ответ.
type CreateCommentRequest struct {
	Content  string  `json:"content" validate:"required,max=1000"`
	ParentID *string `json:"parentId" validate:"omitnil,uuid"`
}

// Normalize обрезает пробелы перед валидацией.
func (r *CreateCommentRequest) Normalize() {
	r.Content = strings.TrimSpace(r.Content)
	trimPtr(r.ParentID)
}

// RevalidateRequest перечисляет теги кэша для сброса.
type RevalidateRequest struct {
	Tags []string `json:"tags" validate:"omitempty,max=50,dive,required,max=100"`
}

// ListQuery - общие параметры списков.
type ListQuery struct {
	Page   int    `json:"page" validate:"min=1"`
	Limit  int    `json:"limit" validate:"min=1,max=100"`
	Search string `json:"search" validate:"max=200"`
	UserID string `json:"userId" validate:"omitempty,uuid"`
	Tag    string `json:"tag" validate:"max=50"`
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

func trimAll(items []string) {
	for i := range items {
		items[i] = strings.TrimSpace(items[i])
	}
}
