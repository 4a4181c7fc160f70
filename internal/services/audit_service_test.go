package services_test

import (
	"fmt"
	"testing"
	"time"

	"looped/internal/models"
	"looped/internal/repositories"
	"looped/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAuditLogRepo is a testify mock of repositories.AuditLogRepository.
type MockAuditLogRepo struct {
	mock.Mock
}

func (m *MockAuditLogRepo) Create(entry *models.AuditLog) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockAuditLogRepo) Page(filter repositories.AuditLogFilter, page, limit int) ([]models.AuditLog, int64, error) {
	args := m.Called(filter, page, limit)
	return args.Get(0).([]models.AuditLog), args.Get(1).(int64), args.Error(2)
}

func (m *MockAuditLogRepo) Latest(n int) ([]models.AuditLog, error) {
	args := m.Called(n)
	return args.Get(0).([]models.AuditLog), args.Error(1)
}

// MockPublisher is a testify mock of services.Publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(exchange, routingKey string, body []byte) error {
	args := m.Called(exchange, routingKey, body)
	return args.Error(0)
}

func TestAuditService_RecordWritesOneEntry(t *testing.T) {
	repo := repositories.NewMockAuditLogRepository()
	service := services.NewAuditService(repo, nil)

	err := service.Record(models.AuditActionCreate, models.AuditEntityProduct, "prod-1", "admin-1")
	assert.NoError(t, err)

	entries, total, err := repo.Page(repositories.AuditLogFilter{}, 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, entries, 1)
	assert.Equal(t, models.AuditActionCreate, entries[0].Action)
	assert.Equal(t, models.AuditEntityProduct, entries[0].Entity)
	assert.Equal(t, "prod-1", entries[0].EntityID)
	assert.Equal(t, "admin-1", entries[0].PerformedBy)
	assert.False(t, entries[0].Timestamp.IsZero())
}

func TestAuditService_RecordReturnsRepositoryError(t *testing.T) {
	repo := new(MockAuditLogRepo)
	service := services.NewAuditService(repo, nil)

	repo.On("Create", mock.AnythingOfType("*models.AuditLog")).Return(fmt.Errorf("database down")).Once()

	err := service.Record(models.AuditActionDelete, models.AuditEntityOrder, "order-1", "admin-1")
	assert.Error(t, err)
	repo.AssertExpectations(t)
}

func TestAuditService_RecordSurvivesPublishFailure(t *testing.T) {
	repo := repositories.NewMockAuditLogRepository()
	pub := new(MockPublisher)
	service := services.NewAuditService(repo, pub)

	pub.On("Publish", "audit", "audit.recorded", mock.Anything).Return(fmt.Errorf("broker down")).Once()

	err := service.Record(models.AuditActionUpdate, models.AuditEntityProduct, "prod-1", "admin-1")
	assert.NoError(t, err)

	_, total, err := repo.Page(repositories.AuditLogFilter{}, 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	pub.AssertExpectations(t)
}

// seedTrail writes a known mix of entries spread over distinct timestamps.
func seedTrail(t *testing.T, repo *repositories.MockAuditLogRepository) {
	t.Helper()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []models.AuditLog{
		{Action: models.AuditActionCreate, Entity: models.AuditEntityUser, EntityID: "u1", PerformedBy: "u1", Timestamp: base},
		{Action: models.AuditActionCreate, Entity: models.AuditEntityProduct, EntityID: "p1", PerformedBy: "a1", Timestamp: base.Add(1 * time.Hour)},
		{Action: models.AuditActionUpdate, Entity: models.AuditEntityProduct, EntityID: "p1", PerformedBy: "a1", Timestamp: base.Add(2 * time.Hour)},
		{Action: models.AuditActionDelete, Entity: models.AuditEntityProduct, EntityID: "p1", PerformedBy: "a1", Timestamp: base.Add(3 * time.Hour)},
		{Action: models.AuditActionDelete, Entity: models.AuditEntityProduct, EntityID: "p2", PerformedBy: "a1", Timestamp: base.Add(4 * time.Hour)},
		{Action: models.AuditActionCreate, Entity: models.AuditEntityOrder, EntityID: "o1", PerformedBy: "u1", Timestamp: base.Add(5 * time.Hour)},
		{Action: models.AuditActionDelete, Entity: models.AuditEntityOrder, EntityID: "o1", PerformedBy: "a1", Timestamp: base.Add(6 * time.Hour)},
	}
	for i := range entries {
		assert.NoError(t, repo.Create(&entries[i]))
	}
}

func TestAuditService_PageTotalMatchesFilter(t *testing.T) {
	repo := repositories.NewMockAuditLogRepository()
	service := services.NewAuditService(repo, nil)
	seedTrail(t, repo)

	// Filtered by action and entity: total must reflect the filtered count,
	// not the global count.
	filter := repositories.AuditLogFilter{
		Action: models.AuditActionDelete,
		Entity: models.AuditEntityProduct,
	}
	logs, total, err := service.Page(filter, 1, 5)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, logs, 2)
	for _, l := range logs {
		assert.Equal(t, models.AuditActionDelete, l.Action)
		assert.Equal(t, models.AuditEntityProduct, l.Entity)
	}

	// The total is independent of the page requested.
	logs, total, err = service.Page(filter, 2, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, logs, 1)
}

func TestAuditService_PagePastTheEnd(t *testing.T) {
	repo := repositories.NewMockAuditLogRepository()
	service := services.NewAuditService(repo, nil)
	seedTrail(t, repo)

	logs, total, err := service.Page(repositories.AuditLogFilter{}, 99, 5)
	assert.NoError(t, err)
	assert.Empty(t, logs)
	assert.Equal(t, int64(7), total)
}

func TestAuditService_PageNewestFirst(t *testing.T) {
	repo := repositories.NewMockAuditLogRepository()
	service := services.NewAuditService(repo, nil)
	seedTrail(t, repo)

	logs, _, err := service.Page(repositories.AuditLogFilter{}, 1, 10)
	assert.NoError(t, err)
	for i := 1; i < len(logs); i++ {
		assert.False(t, logs[i-1].Timestamp.Before(logs[i].Timestamp))
	}
}

func TestAuditService_PageDateRangeInclusive(t *testing.T) {
	repo := repositories.NewMockAuditLogRepository()
	service := services.NewAuditService(repo, nil)
	seedTrail(t, repo)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	start := base.Add(1 * time.Hour)
	end := base.Add(3 * time.Hour)
	logs, total, err := service.Page(repositories.AuditLogFilter{Start: &start, End: &end}, 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, logs, 3)
	// Both bounds are inclusive.
	assert.Equal(t, end, logs[0].Timestamp)
	assert.Equal(t, start, logs[len(logs)-1].Timestamp)
}
