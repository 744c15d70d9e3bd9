package community

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"skin-relay/internal/cache"
	"skin-relay/internal/domain"
	"skin-relay/internal/ports"
)

const skinsCacheKey = "skins"

// Repository описывает отслеживаемый репозиторий и язык по умолчанию.
type Repository struct {
	Name            string
	DefaultLanguage string
}

// Service отдает каталог скинов и счетчики репозиториев с кэшированием.
type Service struct {
	source     ports.CommunitySource
	repos      []Repository
	ttl        time.Duration
	skinsCache *cache.Store[[]domain.Skin]
	statsCache *cache.Store[domain.RepoStats]
	logger     *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(source ports.CommunitySource, repos []Repository, ttl time.Duration, logger *slog.Logger) *Service {
	return &Service{
		source:     source,
		repos:      repos,
		ttl:        ttl,
		skinsCache: cache.NewStore[[]domain.Skin](),
		statsCache: cache.NewStore[domain.RepoStats](),
		logger:     logger,
	}
}

// StartCleanup запускает периодическую очистку кэшей.
func (s *Service) StartCleanup(ctx context.Context, interval time.Duration) {
	s.skinsCache.StartCleanupTicker(ctx, interval)
	s.statsCache.StartCleanupTicker(ctx, interval)
}

// Skins возвращает каталог, отфильтрованный по query (имя, автор или пакет).
func (s *Service) Skins(ctx context.Context, query string) ([]domain.Skin, error) {
	skins, found := s.skinsCache.Get(skinsCacheKey)
	if !found {
		var err error
		skins, err = s.source.FetchSkins(ctx)
		if err != nil {
			return nil, err
		}
		s.skinsCache.Put(skinsCacheKey, skins, s.ttl)
	}
	return FilterSkins(skins, query), nil
}

// FilterSkins оставляет скины, у которых имя, автор или пакет содержит query без учета регистра.
func FilterSkins(skins []domain.Skin, query string) []domain.Skin {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return skins
	}

	filtered := make([]domain.Skin, 0, len(skins))
	for _, skin := range skins {
		if strings.Contains(strings.ToLower(skin.Name), query) ||
			strings.Contains(strings.ToLower(skin.Author), query) ||
			strings.Contains(strings.ToLower(skin.Package), query) {
			filtered = append(filtered, skin)
		}
	}
	return filtered
}

// Stats возвращает счетчики всех репозиториев. Репозиторий, который не удалось
// загрузить, получает нулевые счетчики и язык по умолчанию, а degraded становится true.
func (s *Service) Stats(ctx context.Context) (stats []domain.RepoStats, degraded bool) {
	stats = make([]domain.RepoStats, len(s.repos))
	failed := make([]bool, len(s.repos))

	var wg sync.WaitGroup
	for i, repo := range s.repos {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stats[i], failed[i] = s.repoStats(ctx, repo)
		}()
	}
	wg.Wait()

	for _, f := range failed {
		degraded = degraded || f
	}
	return stats, degraded
}

func (s *Service) repoStats(ctx context.Context, repo Repository) (domain.RepoStats, bool) {
	if cached, found := s.statsCache.Get(repo.Name); found {
		return cached, false
	}

	st, err := s.source.FetchRepoStats(ctx, repo.Name)
	if err != nil {
		s.logger.Warn("failed to fetch repository stats",
			slog.String("repo", repo.Name),
			slog.String("error", err.Error()),
		)
		return domain.RepoStats{Name: repo.Name, Language: repo.DefaultLanguage}, true
	}
	if st.Language == "" {
		st.Language = repo.DefaultLanguage
	}
	s.statsCache.Put(repo.Name, st, s.ttl)
	return st, false
}
