package app

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/blake2b"

	"noteblog/internal/blog/config"
	"noteblog/internal/blog/domain/entities"
)

// Теги кэша заметок.
const (
	TagNotes         = "notes"
	TagNotesList     = "notes-list"
	TagNotesAll      = "notes-all"
	TagNotesFiltered = "notes-filtered"
	TagNoteStats     = "notes-stats"
	TagTags          = "tags"

	TagPosts     = "posts"
	TagPostsList = "posts-list"

	TagProfiles = "profiles"
)

// NoteTag - тег записей кэша, содержащих заметку.
func NoteTag(noteID string) string { return "note-" + noteID }

// NotePageTag - тег страницы списка заметок.
func NotePageTag(page int) string { return "notes-page-" + strconv.Itoa(page) }

// NoteSearchTag - тег списков с данным поисковым запросом.
func NoteSearchTag(search string) string { return "notes-search-" + HashTerm(search) }

// NoteCommentsTag - тег комментариев заметки.
func NoteCommentsTag(noteID string) string { return "note-" + noteID + "-comments" }

// PostTag - тег записей кэша, содержащих запись блога.
func PostTag(postID string) string { return "post-" + postID }

// ProfileTag - тег профиля.
func ProfileTag(profileID string) string { return "profile-" + profileID }

// HashTerm возвращает короткий blake2b-отпечаток свободного текста для ключей и тегов кэша.
func HashTerm(term string) string {
	sum := blake2b.Sum256([]byte(strings.ToLower(strings.TrimSpace(term))))
	return hex.EncodeToString(sum[:12])
}

// CacheEvent - мутация, после которой нужно инвалидировать кэш заметок.
type CacheEvent int

// События мутаций заметок.
const (
	EventNoteCreated CacheEvent = iota
	EventNoteUpdated
	EventNoteDeleted
	EventNoteLiked
	EventNoteViewed
)

func (e CacheEvent) String() string {
	switch e {
	case EventNoteCreated:
		return "created"
	case EventNoteUpdated:
		return "updated"
	case EventNoteDeleted:
		return "deleted"
	case EventNoteLiked:
		return "liked"
	case EventNoteViewed:
		return "viewed"
	default:
		return "unknown"
	}
}

// CachePlanner решает, какие теги инвалидировать после мутации заметки.
type CachePlanner struct {
	Mode             config.InvalidationMode
	InvalidateOnView bool
}

// Plan возвращает теги для инвалидации. Пустой результат - ничего не делать.
func (p CachePlanner) Plan(event CacheEvent, noteID string) []string {
	if event == EventNoteViewed && !p.InvalidateOnView {
		return nil
	}

	switch p.Mode {
	case config.InvalidationTTL:
		return nil
	case config.InvalidationFine:
		return fineTags(event, noteID)
	default:
		return []string{TagNotes}
	}
}

func fineTags(event CacheEvent, noteID string) []string {
	switch event {
	case EventNoteCreated:
		return []string{TagNotesList, TagNoteStats, TagTags}
	case EventNoteDeleted:
		return []string{TagNotesList, NoteTag(noteID), TagNoteStats, TagTags}
	case EventNoteUpdated:
		return []string{NoteTag(noteID), TagNotesFiltered, TagTags}
	case EventNoteLiked, EventNoteViewed:
		return []string{NoteTag(noteID)}
	default:
		return []string{TagNotes}
	}
}

// NoteDetailTags - теги записи кэша с одной заметкой.
func NoteDetailTags(noteID string) []string {
	return []string{TagNotes, NoteTag(noteID)}
}

// NoteListTags - теги страницы списка: общие, страница, вид фильтра и каждая заметка страницы.
func NoteListTags(filter entities.NoteFilter, notes []*entities.Note) []string {
	tags := []string{TagNotes, TagNotesList, NotePageTag(filter.Page)}
	if filter.Filtered() {
		tags = append(tags, TagNotesFiltered)
		if filter.Search != "" {
			tags = append(tags, NoteSearchTag(filter.Search))
		}
	} else {
		tags = append(tags, TagNotesAll)
	}
	for _, n := range notes {
		tags = append(tags, NoteTag(n.ID))
	}
	return tags
}

// NoteListKey - ключ кэша страницы списка заметок. filter должен быть нормализован.
func NoteListKey(filter entities.NoteFilter) string {
	tags := entities.NormalizeTagNames(filter.Tags)
	slugs := make([]string, 0, len(tags))
	for _, t := range tags {
		slugs = append(slugs, t.Slug)
	}
	search := "-"
	if filter.Search != "" {
		search = HashTerm(filter.Search)
	}
	return fmt.Sprintf("notes:list:%d:%d:%s:%s:%s",
		filter.Page, filter.Limit, filter.AuthorID, strings.Join(slugs, ","), search)
}

// NoteDetailKey - ключ кэша заметки.
func NoteDetailKey(noteID string) string { return "notes:detail:" + noteID }

// PostListKey - ключ кэша анонимной страницы списка записей.
func PostListKey(filter entities.PostFilter) string {
	search := "-"
	if filter.Search != "" {
		search = HashTerm(filter.Search)
	}
	return fmt.Sprintf("posts:list:%d:%d:%s:%s", filter.Page, filter.Limit, entities.TagSlug(filter.Tag), search)
}
