package entities

import "time"

// Comment - комментарий к заметке. ParentID задает ветку обсуждения.
type Comment struct {
	ID        string
	Content   string
	NoteID    string
	AuthorID  string
	ParentID  *string
	CreatedAt time.Time
	UpdatedAt time.Time
	Replies   []*Comment
}

// BuildCommentTree собирает плоский список (в порядке создания) в дерево.
// Комментарии с неизвестным родителем поднимаются на верхний уровень.
func BuildCommentTree(flat []*Comment) []*Comment {
	byID := make(map[string]*Comment, len(flat))
	for _, c := range flat {
		c.Replies = nil
		byID[c.ID] = c
	}

	roots := make([]*Comment, 0)
	for _, c := range flat {
		if c.ParentID != nil {
			if parent, ok := byID[*c.ParentID]; ok && parent != c {
				parent.Replies = append(parent.Replies, c)
				continue
			}
		}
		roots = append(roots, c)
	}
	return roots
}
