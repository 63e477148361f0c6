package config

// NotesConfig содержит настройки поведения заметок.
type NotesConfig struct {
	// CountViewOnGet включает старое поведение: каждый GET заметки увеличивает счетчик просмотров.
	CountViewOnGet bool `env:"BLOG_NOTES_COUNT_VIEW_ON_GET" env-default:"false"`
	RecentLimit    int  `env:"BLOG_NOTES_RECENT_LIMIT" env-default:"5"`
}
