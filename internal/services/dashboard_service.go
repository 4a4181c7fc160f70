package services

import (
	"fmt"

	"looped/internal/models"
	"looped/internal/repositories"
)

// DashboardSummary is the admin dashboard snapshot: soft-delete-filtered
// counts, the latest orders, and the most recent audit entries.
type DashboardSummary struct {
	ProductCount int64             `json:"product_count"`
	UserCount    int64             `json:"user_count"`
	OrderCount   int64             `json:"order_count"`
	LatestOrders []models.Order    `json:"latest_orders"`
	RecentLogs   []models.AuditLog `json:"recent_logs"`
}

// DashboardService composes store-wide read models for the admin dashboard.
type DashboardService struct {
	productRepo repositories.ProductRepository
	userRepo    repositories.UserRepository
	orderRepo   repositories.OrderRepository
	audit       *AuditService
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(productRepo repositories.ProductRepository, userRepo repositories.UserRepository, orderRepo repositories.OrderRepository, audit *AuditService) *DashboardService {
	return &DashboardService{
		productRepo: productRepo,
		userRepo:    userRepo,
		orderRepo:   orderRepo,
		audit:       audit,
	}
}

// Summary builds the dashboard snapshot.
func (s *DashboardService) Summary() (*DashboardSummary, error) {
	productCount, err := s.productRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	userCount, err := s.userRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	orderCount, err := s.orderRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	latestOrders, err := s.orderRepo.Latest(5)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest orders: %w", err)
	}
	recentLogs, err := s.audit.Latest(10)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent audit logs: %w", err)
	}

	return &DashboardSummary{
		ProductCount: productCount,
		UserCount:    userCount,
		OrderCount:   orderCount,
		LatestOrders: latestOrders,
		RecentLogs:   recentLogs,
	}, nil
}
