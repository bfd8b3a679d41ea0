package service

import (
	"context"
	"time"

	"biteclub-backend/internal/domains/menu/model"
	"biteclub-backend/internal/domains/menu/repository"
	"biteclub-backend/internal/infrastructure/database"
	"biteclub-backend/internal/shared"
	"biteclub-backend/pkg/cache"
	"biteclub-backend/pkg/logger"

	"github.com/google/uuid"
)

const menuCacheTTL = 10 * time.Minute

func menuCacheKey(restaurantID uuid.UUID) string {
	return "menu:" + restaurantID.String()
}

type MenuService interface {
	CreateItem(ctx context.Context, actor shared.Actor, req model.CreateMenuItemRequest) (*model.MenuItem, error)
	UpdateItem(ctx context.Context, actor shared.Actor, itemID uuid.UUID, req model.UpdateMenuItemRequest) (*model.MenuItem, error)
	GetMenu(ctx context.Context, restaurantID uuid.UUID) ([]model.MenuItem, error)
	SetAvailability(ctx context.Context, actor shared.Actor, itemID uuid.UUID, available bool) error
	DeleteItem(ctx context.Context, actor shared.Actor, itemID uuid.UUID) error
}

type menuService struct {
	menuRepo  repository.MenuRepository
	txManager database.TxManager
	cache     cache.Cache
}

func NewMenuService(menuRepo repository.MenuRepository, txManager database.TxManager, cacheClient cache.Cache) MenuService {
	return &menuService{
		menuRepo:  menuRepo,
		txManager: txManager,
		cache:     cacheClient,
	}
}

func (s *menuService) CreateItem(ctx context.Context, actor shared.Actor, req model.CreateMenuItemRequest) (*model.MenuItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	item := buildItem(uuid.New(), actor.EffectiveID(), req)

	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.menuRepo.CreateItem(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateMenu(ctx, item.RestaurantID)
	return item, nil
}

func (s *menuService) UpdateItem(ctx context.Context, actor shared.Actor, itemID uuid.UUID, req model.UpdateMenuItemRequest) (*model.MenuItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.menuRepo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwnership(actor, existing); err != nil {
		return nil, err
	}

	item := buildItem(itemID, existing.RestaurantID, req)

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.menuRepo.ReplaceItem(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateMenu(ctx, item.RestaurantID)
	return item, nil
}

func (s *menuService) GetMenu(ctx context.Context, restaurantID uuid.UUID) ([]model.MenuItem, error) {
	var items []model.MenuItem

	if s.cache != nil {
		found, err := s.cache.Get(ctx, menuCacheKey(restaurantID), &items)
		if err != nil {
			logger.Warn("menu cache read failed", map[string]interface{}{"error": err.Error()})
		} else if found {
			return items, nil
		}
	}

	items, err := s.menuRepo.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, menuCacheKey(restaurantID), items, menuCacheTTL); err != nil {
			logger.Warn("menu cache write failed", map[string]interface{}{"error": err.Error()})
		}
	}

	return items, nil
}

func (s *menuService) SetAvailability(ctx context.Context, actor shared.Actor, itemID uuid.UUID, available bool) error {
	item, err := s.menuRepo.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if err := s.checkOwnership(actor, item); err != nil {
		return err
	}

	if err := s.menuRepo.SetAvailability(ctx, itemID, available); err != nil {
		return err
	}

	s.invalidateMenu(ctx, item.RestaurantID)
	return nil
}

func (s *menuService) DeleteItem(ctx context.Context, actor shared.Actor, itemID uuid.UUID) error {
	item, err := s.menuRepo.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if err := s.checkOwnership(actor, item); err != nil {
		return err
	}

	if err := s.menuRepo.DeleteItem(ctx, itemID); err != nil {
		return err
	}

	s.invalidateMenu(ctx, item.RestaurantID)
	return nil
}

func buildItem(id, restaurantID uuid.UUID, req model.CreateMenuItemRequest) *model.MenuItem {
	item := &model.MenuItem{
		ID:           id,
		RestaurantID: restaurantID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price.Round(2),
		Available:    req.Available,
	}
	for _, group := range req.ModifierGroups {
		mg := model.ModifierGroup{
			Name:      group.Name,
			MinSelect: group.MinSelect,
			MaxSelect: group.MaxSelect,
		}
		for _, mod := range group.Modifiers {
			mg.Modifiers = append(mg.Modifiers, model.Modifier{
				Name:      mod.Name,
				Price:     mod.Price.Round(2),
				Available: mod.Available,
			})
		}
		item.ModifierGroups = append(item.ModifierGroups, mg)
	}
	return item
}

func (s *menuService) checkOwnership(actor shared.Actor, item *model.MenuItem) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.Role != shared.RoleRestaurant || actor.SubjectID != item.RestaurantID {
		return model.ErrUnauthorized
	}
	return nil
}

func (s *menuService) invalidateMenu(ctx context.Context, restaurantID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, menuCacheKey(restaurantID)); err != nil {
		logger.Warn("menu cache invalidation failed", map[string]interface{}{
			"restaurant_id": restaurantID.String(),
			"error":         err.Error(),
		})
	}
}
