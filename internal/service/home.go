package service

import (
	"context"
	"log/slog"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/sourcegraph/conc/pool"
)

// HomeRow is one category row of the home screen
type HomeRow struct {
	Category domain.Category
	Items    []domain.CatalogItem
}

// Home is the content of the home screen
type Home struct {
	Rows     []HomeRow
	Featured *domain.CatalogItem
}

// HomeService loads the first page of every list category
type HomeService struct {
	repo   domain.CatalogRepository
	logger *slog.Logger
}

// NewHomeService creates a new HomeService
func NewHomeService(repo domain.CatalogRepository, logger *slog.Logger) *HomeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HomeService{repo: repo, logger: logger}
}

// Load fetches all rows concurrently. Any failure fails the whole load.
func (s *HomeService) Load(ctx context.Context, credential string) (Home, error) {
	categories := domain.Categories()
	rows := make([]HomeRow, len(categories))

	p := pool.New().WithErrors().WithContext(ctx).WithCancelOnError()
	for i, category := range categories {
		p.Go(func(ctx context.Context) error {
			res, err := s.repo.FetchPage(ctx, category, credential, 1)
			if err != nil {
				return err
			}
			rows[i] = HomeRow{Category: category, Items: res.Items}
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		s.logger.Error("home load failed", "error", err)
		return Home{}, err
	}

	home := Home{Rows: rows}
	for _, row := range rows {
		if len(row.Items) > 0 {
			featured := row.Items[0]
			home.Featured = &featured
			break
		}
	}
	return home, nil
}
