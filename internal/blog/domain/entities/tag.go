package entities

import (
	"strings"

	"github.com/gosimple/slug"
)

// Tag - метка заметки.
type Tag struct {
	ID        string
	Name      string
	Slug      string
	NoteCount int
}

// NormalizeTagNames обрезает пробелы, отбрасывает пустые имена и дубликаты по slug,
// сохраняя порядок первого вхождения.
func NormalizeTagNames(names []string) []Tag {
	seen := make(map[string]struct{}, len(names))
	out := make([]Tag, 0, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		s := TagSlug(name)
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, Tag{Name: name, Slug: s})
	}
	return out
}

// TagSlug возвращает slug имени тега. Для имен без латиницы и цифр
// (slug пустой) используется имя в нижнем регистре.
func TagSlug(name string) string {
	s := slug.Make(name)
	if s == "" {
		return strings.ToLower(strings.TrimSpace(name))
	}
	return s
}
