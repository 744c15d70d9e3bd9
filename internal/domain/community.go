package domain

// Skin - запись из публичного каталога скинов сообщества.
type Skin struct {
	Name    string `json:"name"`
	Package string `json:"package"`
	Version string `json:"version"`
	Author  string `json:"author"`
	Image   string `json:"image"`
	URL     string `json:"url"`
}

// RepoStats - счетчики репозитория для витрины.
type RepoStats struct {
	Name     string `json:"name"`
	Stars    int    `json:"stars"`
	Forks    int    `json:"forks"`
	Language string `json:"language,omitempty"`
}
