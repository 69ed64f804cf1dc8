package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
	"github.com/m04kA/SMC-InstrumentReservation/internal/service/catalog/models"
	"github.com/m04kA/SMC-InstrumentReservation/pkg/pgerrors"
)

// Service сервис справочников: статистика, типы приборов, свободные слоты
type Service struct {
	catalogRepo CatalogRepository
	cache       InstrumentTypeCache
	location    *time.Location
	logger      Logger
}

// NewService создает новый экземпляр сервиса справочников
// cache может быть nil - тогда типы приборов всегда читаются из БД
func NewService(catalogRepo CatalogRepository, cache InstrumentTypeCache, location *time.Location, logger Logger) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		catalogRepo: catalogRepo,
		cache:       cache,
		location:    location,
		logger:      logger,
	}
}

// GetDashboardStats возвращает агрегированные счетчики
func (s *Service) GetDashboardStats(ctx context.Context) (*models.DashboardStatsResponse, error) {
	stats, err := s.catalogRepo.GetDashboardStats(ctx)
	if err != nil {
		s.logger.Error("GetDashboardStats: repository error: %v", err)
		return nil, wrapStoreError("GetDashboardStats", err)
	}
	return models.FromDomainStats(stats), nil
}

// ListInstrumentTypes возвращает типы приборов, упорядоченные по уровню доступа и названию
// Сначала читает из кэша, при промахе идет в БД и заполняет кэш
func (s *Service) ListInstrumentTypes(ctx context.Context) ([]models.InstrumentTypeResponse, error) {
	if s.cache != nil {
		if cached, ok := s.cache.GetInstrumentTypes(ctx); ok {
			return models.FromDomainInstrumentTypes(cached), nil
		}
	}

	list, err := s.catalogRepo.ListInstrumentTypes(ctx)
	if err != nil {
		s.logger.Error("ListInstrumentTypes: repository error: %v", err)
		return nil, wrapStoreError("ListInstrumentTypes", err)
	}

	if s.cache != nil {
		s.cache.SetInstrumentTypes(ctx, list)
	}

	s.logger.Info("ListInstrumentTypes: loaded %d instrument types from database", len(list))
	return models.FromDomainInstrumentTypes(list), nil
}

// ListAvailableSlots возвращает свободные слоты с опциональной фильтрацией
func (s *Service) ListAvailableSlots(ctx context.Context, req *models.GetAvailableSlotsRequest) ([]models.AvailableSlotResponse, error) {
	filter, err := s.toDomainFilter(req)
	if err != nil {
		s.logger.Warn("ListAvailableSlots: invalid filter: %v", err)
		return nil, err
	}

	slots, err := s.catalogRepo.ListAvailableSlots(ctx, filter)
	if err != nil {
		s.logger.Error("ListAvailableSlots: repository error: %v", err)
		return nil, wrapStoreError("ListAvailableSlots", err)
	}

	return models.FromDomainSlots(slots), nil
}

func (s *Service) toDomainFilter(req *models.GetAvailableSlotsRequest) (domain.SlotsFilter, error) {
	var filter domain.SlotsFilter
	if req == nil {
		return filter, nil
	}

	if req.InstrumentTypeID != nil {
		if *req.InstrumentTypeID <= 0 {
			return filter, fmt.Errorf("%w: instrumentTypeId must be positive", ErrInvalidInput)
		}
		filter.InstrumentTypeID = req.InstrumentTypeID
	}

	if req.Date != nil && strings.TrimSpace(*req.Date) != "" {
		date, err := time.ParseInLocation(domain.DateFormat, strings.TrimSpace(*req.Date), s.location)
		if err != nil {
			return filter, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
		}
		filter.Date = &date
	}

	return filter, nil
}

func wrapStoreError(op string, err error) error {
	if pgerrors.IsUnavailable(err) {
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
	}
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
