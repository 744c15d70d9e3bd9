// Package community читает публичные данные сообщества: каталог скинов и счетчики репозиториев.
package community

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"skin-relay/internal/domain"
	"skin-relay/internal/ports"
)

// HTTPSource получает данные сообщества по HTTP.
type HTTPSource struct {
	skinsURL   string
	githubURL  string
	httpClient *http.Client
}

var _ ports.CommunitySource = (*HTTPSource)(nil)

// NewHTTPSource создает новый экземпляр HTTPSource.
func NewHTTPSource(skinsURL, githubURL string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		skinsURL:  skinsURL,
		githubURL: strings.TrimRight(githubURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// githubRepo - подмножество ответа GET /repos/{owner}/{repo}.
type githubRepo struct {
	FullName        string `json:"full_name"`
	StargazersCount int    `json:"stargazers_count"`
	ForksCount      int    `json:"forks_count"`
	Language        string `json:"language"`
}

// FetchSkins загружает JSON-массив скинов.
func (s *HTTPSource) FetchSkins(ctx context.Context) ([]domain.Skin, error) {
	var skins []domain.Skin
	if err := s.getJSON(ctx, s.skinsURL, &skins); err != nil {
		return nil, fmt.Errorf("failed to fetch skins: %w", err)
	}
	return skins, nil
}

// FetchRepoStats загружает счетчики репозитория вида owner/name.
func (s *HTTPSource) FetchRepoStats(ctx context.Context, repo string) (domain.RepoStats, error) {
	var r githubRepo
	if err := s.getJSON(ctx, s.githubURL+"/repos/"+repo, &r); err != nil {
		return domain.RepoStats{}, fmt.Errorf("failed to fetch repo %s: %w", repo, err)
	}
	return domain.RepoStats{
		Name:     repo,
		Stars:    r.StargazersCount,
		Forks:    r.ForksCount,
		Language: r.Language,
	}, nil
}

func (s *HTTPSource) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
