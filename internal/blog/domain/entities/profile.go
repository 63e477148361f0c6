package entities

import "time"

// Profile - публичный профиль пользователя. ID совпадает с идентификатором у провайдера аутентификации.
type Profile struct {
	ID        string
	Email     *string
	FullName  *string
	AvatarURL *string
	Bio       *string
	Website   *string
	Location  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfilePatch - изменяемые пользователем поля профиля.
type ProfilePatch struct {
	Email     *string
	FullName  *string
	AvatarURL *string
	Bio       *string
	Website   *string
	Location  *string
}

// IsEmpty сообщает, что изменять нечего.
func (p ProfilePatch) IsEmpty() bool {
	return p.Email == nil && p.FullName == nil && p.AvatarURL == nil &&
		p.Bio == nil && p.Website == nil && p.Location == nil
}

// Principal - аутентифицированный вызывающий.
type Principal struct {
	UserID string
	Email  string
}
