package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/Areandra/Kelvin/pkg/config"
	"github.com/Areandra/Kelvin/pkg/db/models"
	pkgerrors "github.com/Areandra/Kelvin/pkg/errors"
)

const recentTransactionsLimit = 10

// Service exposes the dashboard summary.
type Service interface {
	Summary(ctx context.Context) (*Summary, error)
}

// Summary is the landing-page aggregate.
type Summary struct {
	TotalProducts      int64                  `json:"totalProducts"`
	TotalCategories    int64                  `json:"totalCategories"`
	TodayTransactions  int64                  `json:"todayTransactions"`
	LowStockItems      []models.Product       `json:"lowStockItems"`
	RecentTransactions []models.Transaction   `json:"recentTransactions"`
	ProductsByCategory []CategoryProductCount `json:"productsByCategory"`
}

type service struct {
	repo     *Repository
	stockCfg config.StockConfig
	now      func() time.Time
}

// NewService constructs a dashboard service instance.
func NewService(repo *Repository, stockCfg config.StockConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("dashboard repository required")
	}
	return &service{
		repo:     repo,
		stockCfg: stockCfg,
		now:      time.Now,
	}, nil
}

func (s *service) Summary(ctx context.Context) (*Summary, error) {
	totalProducts, err := s.repo.CountProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count products")
	}

	totalCategories, err := s.repo.CountCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count categories")
	}

	now := s.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayTransactions, err := s.repo.CountTransactionsSince(ctx, startOfDay)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count today's transactions")
	}

	threshold := s.stockCfg.LowStockThreshold
	if threshold <= 0 {
		threshold = 10
	}
	lowStock, err := s.repo.ListLowStock(ctx, threshold)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list low stock")
	}

	recent, err := s.repo.ListRecentTransactions(ctx, recentTransactionsLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list recent transactions")
	}

	byCategory, err := s.repo.ProductsByCategory(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: group products by category")
	}

	return &Summary{
		TotalProducts:      totalProducts,
		TotalCategories:    totalCategories,
		TodayTransactions:  todayTransactions,
		LowStockItems:      lowStock,
		RecentTransactions: recent,
		ProductsByCategory: byCategory,
	}, nil
}
