package service

import (
	"context"
	"errors"

	creditmodel "biteclub-backend/internal/domains/credit/model"
	creditrepo "biteclub-backend/internal/domains/credit/repository"
	menurepo "biteclub-backend/internal/domains/menu/repository"
	"biteclub-backend/internal/domains/order/model"
	"biteclub-backend/internal/domains/order/repository"
	promomodel "biteclub-backend/internal/domains/promotion/model"
	promoservice "biteclub-backend/internal/domains/promotion/service"
	restmodel "biteclub-backend/internal/domains/restaurant/model"
	restrepo "biteclub-backend/internal/domains/restaurant/repository"
	"biteclub-backend/internal/shared"
	"biteclub-backend/internal/shared/utils"
	"biteclub-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
)

// DispatchCallPayload is the task payload for phoning the restaurant
// about a freshly placed order.
type DispatchCallPayload struct {
	OrderID      uuid.UUID `json:"order_id"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
}

type OrderService interface {
	Checkout(ctx context.Context, actor shared.Actor, req model.CheckoutRequest) (*model.Receipt, error)
	Accept(ctx context.Context, actor shared.Actor, orderID uuid.UUID) (*model.Order, error)
	Reject(ctx context.Context, actor shared.Actor, orderID uuid.UUID, reason string) (*model.Order, error)
	Cancel(ctx context.Context, actor shared.Actor, orderID uuid.UUID) (*model.Order, error)
	Advance(ctx context.Context, actor shared.Actor, orderID uuid.UUID) (*model.Order, error)
	Closeout(ctx context.Context, actor shared.Actor, orderID uuid.UUID) (*model.Order, error)
	GetOrder(ctx context.Context, actor shared.Actor, orderID uuid.UUID) (*model.Order, error)
	GetStatusHistory(ctx context.Context, actor shared.Actor, orderID uuid.UUID) ([]model.StatusHistory, error)
	ListForStudent(ctx context.Context, actor shared.Actor, page, limit int) ([]model.Order, int, error)
	ListForRestaurant(ctx context.Context, actor shared.Actor, status string, page, limit int) ([]model.Order, int, error)
}

// TxManager matches database.TxManager; declared here so service tests
// can stub it without a live pool.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type orderService struct {
	orderRepo      repository.OrderRepository
	menuRepo       menurepo.MenuRepository
	creditRepo     creditrepo.CreditRepository
	restaurantRepo restrepo.RestaurantRepository
	evaluator      *promoservice.Evaluator
	txManager      TxManager
	taskClient     *asynq.Client
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	menuRepo menurepo.MenuRepository,
	creditRepo creditrepo.CreditRepository,
	restaurantRepo restrepo.RestaurantRepository,
	evaluator *promoservice.Evaluator,
	txManager TxManager,
	taskClient *asynq.Client,
) OrderService {
	return &orderService{
		orderRepo:      orderRepo,
		menuRepo:       menuRepo,
		creditRepo:     creditRepo,
		restaurantRepo: restaurantRepo,
		evaluator:      evaluator,
		txManager:      txManager,
		taskClient:     taskClient,
	}
}

// =====================================================
// CHECKOUT
// =====================================================

// Checkout converts a cart into a persisted order plus its ledger
// effects. Prices come from the canonical menu rows, never from the
// client. Everything from the balance check to the reward credit runs
// inside one transaction; a failure at any point persists nothing.
func (s *orderService) Checkout(ctx context.Context, actor shared.Actor, req model.CheckoutRequest) (*model.Receipt, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	studentID := actor.EffectiveID()

	restaurant, err := s.restaurantRepo.GetByID(ctx, req.RestaurantID)
	if err != nil {
		if errors.Is(err, restmodel.ErrRestaurantNotFound) {
			return nil, model.NewOrderError(model.ErrCodeValidation, "restaurant does not exist", model.ErrValidation)
		}
		return nil, err
	}
	if !restaurant.Active {
		return nil, model.NewOrderError(model.ErrCodeRestaurantInactive, "restaurant is not accepting orders", model.ErrRestaurantInactive)
	}

	orderID := uuid.New()
	orderItems, subtotal, err := s.priceCart(ctx, orderID, req)
	if err != nil {
		return nil, err
	}

	var receipt *model.Receipt

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		// Row lock on the student serializes concurrent checkouts so
		// two requests cannot both pass the balance check.
		balance, err := s.creditRepo.GetBalanceForUpdate(ctx, studentID)
		if err != nil {
			return err
		}

		history, err := s.orderRepo.GetPromotionHistory(ctx, studentID, req.RestaurantID)
		if err != nil {
			return err
		}

		result, err := s.evaluator.Evaluate(restaurant.Promotion, history, subtotal)
		if err != nil {
			return err
		}

		if balance.LessThan(result.FinalAmount) {
			return model.NewOrderError(model.ErrCodeInsufficientCredit,
				"credit balance is too low for this order", creditmodel.ErrInsufficientCredit)
		}

		order := &model.Order{
			ID:                  orderID,
			StudentID:           studentID,
			RestaurantID:        req.RestaurantID,
			TotalAmount:         subtotal,
			DiscountAmount:      result.DiscountAmount,
			FinalAmount:         result.FinalAmount,
			Status:              model.StatusPending,
			SpecialInstructions: req.SpecialInstructions,
			Version:             1,
			Items:               orderItems,
		}
		if result.Kind != "" && result.Kind != promomodel.KindNone {
			kind := result.Kind
			order.PromotionApplied = &kind
		}

		if err := s.orderRepo.Create(ctx, order); err != nil {
			return err
		}
		if err := s.orderRepo.CreateItems(ctx, orderItems); err != nil {
			return err
		}

		if err := s.creditRepo.Append(ctx, &creditmodel.CreditTransaction{
			ID:        uuid.New(),
			StudentID: studentID,
			Type:      creditmodel.TypeSpend,
			Amount:    result.FinalAmount.Neg(),
			OrderID:   &order.ID,
			Note:      "order payment",
			CreatedBy: actor.SubjectID,
		}); err != nil {
			return err
		}

		remaining := balance.Sub(result.FinalAmount)

		// The reward is granted at order creation, not deferred to
		// completion.
		if result.LoyaltyReward.GreaterThan(decimal.Zero) {
			if err := s.creditRepo.Append(ctx, &creditmodel.CreditTransaction{
				ID:        uuid.New(),
				StudentID: studentID,
				Type:      creditmodel.TypeLoyaltyReward,
				Amount:    result.LoyaltyReward,
				OrderID:   &order.ID,
				Note:      "loyalty reward",
				CreatedBy: actor.SubjectID,
			}); err != nil {
				return err
			}
			remaining = remaining.Add(result.LoyaltyReward)
		}

		promotionApplied := promomodel.KindNone
		if order.PromotionApplied != nil {
			promotionApplied = *order.PromotionApplied
		}

		receipt = &model.Receipt{
			Order:            order,
			PromotionApplied: promotionApplied,
			DiscountAmount:   result.DiscountAmount,
			LoyaltyReward:    result.LoyaltyReward,
			RemainingBalance: remaining,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.enqueueDispatchCall(ctx, receipt.Order, restaurant)

	logger.Info("order placed", map[string]interface{}{
		"order_id":      receipt.Order.ID.String(),
		"student_id":    studentID.String(),
		"restaurant_id": req.RestaurantID.String(),
		"final_amount":  receipt.Order.FinalAmount.String(),
		"promotion":     receipt.PromotionApplied,
	})

	return receipt, nil
}

// priceCart resolves every cart line against the canonical menu and
// computes the order subtotal.
func (s *orderService) priceCart(ctx context.Context, orderID uuid.UUID, req model.CheckoutRequest) ([]model.OrderItem, decimal.Decimal, error) {
	itemIDs := make([]uuid.UUID, 0, len(req.Items))
	for _, cartItem := range req.Items {
		itemIDs = append(itemIDs, cartItem.MenuItemID)
	}

	menuItems, err := s.menuRepo.GetItemsForCheckout(ctx, req.RestaurantID, itemIDs)
	if err != nil {
		return nil, decimal.Zero, err
	}

	subtotal := decimal.Zero
	orderItems := make([]model.OrderItem, 0, len(req.Items))
	for _, cartItem := range req.Items {
		menuItem, ok := menuItems[cartItem.MenuItemID]
		if !ok {
			return nil, decimal.Zero, model.NewOrderError(model.ErrCodeValidation,
				"cart references an item not on this restaurant's menu", model.ErrValidation)
		}
		if !menuItem.Available {
			return nil, decimal.Zero, model.NewOrderError(model.ErrCodeItemUnavailable,
				"'"+menuItem.Name+"' is currently unavailable", model.ErrValidation)
		}

		selections, err := menuItem.ResolveSelections(cartItem.ModifierIDs)
		if err != nil {
			return nil, decimal.Zero, err
		}

		unitPrice, totalPrice := menuItem.LinePrice(selections, cartItem.Quantity)
		orderItems = append(orderItems, model.OrderItem{
			ID:         uuid.New(),
			OrderID:    orderID,
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			Quantity:   cartItem.Quantity,
			UnitPrice:  unitPrice,
			Modifiers:  selections,
			TotalPrice: totalPrice,
		})
		subtotal = subtotal.Add(totalPrice)
	}

	return orderItems, subtotal.Round(2), nil
}

func (s *orderService) enqueueDispatchCall(ctx context.Context, order *model.Order, restaurant *restmodel.Restaurant) {
	if s.taskClient == nil {
		return
	}

	task, err := utils.MarshalTask(shared.TypeDispatchOrderCall, DispatchCallPayload{
		OrderID:      order.ID,
		RestaurantID: order.RestaurantID,
	})
	if err != nil {
		logger.Error("failed to build dispatch call task", err)
		return
	}

	_, err = s.taskClient.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueCalls),
		asynq.MaxRetry(restaurant.CallDispatch.MaxRetries),
	)
	if err != nil {
		// The order is already committed; a lost call is an
		// operational problem, not a checkout failure.
		logger.Error("failed to enqueue dispatch call", err)
	}
}

// =====================================================
// LIFECYCLE TRANSITIONS
// =====================================================

func (s *orderService) Accept(ctx context.Context, actor shared.Actor, orderID uuid.UUID) (*model.Order, error) {
	return s.transition(ctx, actor, orderID, model.ActionAccept, "")
}

func (s *orderService) Reject(ctx context.Context, actor shared.Actor, orderID uuid.UUID, reason string) (*model.Order, error) {
	return s.transition(ctx, actor, orderID, model.ActionReject, reason)
}

func (s *orderService) Cancel(ctx context.Context, actor shared.Actor, orderID uuid.UUID) (*model.Order, error) {
	return s.transition(ctx, actor, orderID, model.ActionCancel, "")
}

func (s *orderService) Advance(ctx context.Context, actor shared.Actor, orderID uuid.UUID) (*model.Order, error) {
	return s.transition(ctx, actor, orderID, model.ActionAdvance, "")
}

func (s *orderService) Closeout(ctx context.Context, actor shared.Actor, orderID uuid.UUID) (*model.Order, error) {
	return s.transition(ctx, actor, orderID, model.ActionCloseout, "")
}

// transition applies one FSM action. The version check on the status
// update is what stops two concurrent transitions (double-reject,
// double-refund) from both succeeding.
func (s *orderService) transition(ctx context.Context, actor shared.Actor, orderID uuid.UUID, action, note string) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.checkTransitionRights(actor, order, action); err != nil {
		return nil, err
	}

	next, err := model.NextStatus(order.Status, action)
	if err != nil {
		return nil, err
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.orderRepo.UpdateStatus(ctx, order.ID, order.Version, next); err != nil {
			return err
		}

		if model.RefundsStudent(next) {
			if err := s.creditRepo.Append(ctx, &creditmodel.CreditTransaction{
				ID:        uuid.New(),
				StudentID: order.StudentID,
				Type:      creditmodel.TypeRefund,
				Amount:    order.FinalAmount,
				OrderID:   &order.ID,
				Note:      "order " + next,
				CreatedBy: actor.SubjectID,
			}); err != nil {
				return err
			}
		}

		return s.orderRepo.AddStatusHistory(ctx, &model.StatusHistory{
			ID:         uuid.New(),
			OrderID:    order.ID,
			FromStatus: order.Status,
			ToStatus:   next,
			ChangedBy:  actor.SubjectID,
			Note:       note,
		})
	})
	if err != nil {
		return nil, err
	}

	order.Status = next
	order.Version++

	logger.Info("order transition", map[string]interface{}{
		"order_id": order.ID.String(),
		"action":   action,
		"status":   next,
	})

	return order, nil
}

func (s *orderService) checkTransitionRights(actor shared.Actor, order *model.Order, action string) error {
	if actor.IsAdmin() {
		return nil
	}

	switch action {
	case model.ActionCancel:
		if actor.Role == shared.RoleStudent && actor.SubjectID == order.StudentID {
			return nil
		}
	default:
		if actor.Role == shared.RoleRestaurant && actor.SubjectID == order.RestaurantID {
			return nil
		}
	}

	return model.ErrUnauthorized
}

// =====================================================
// READS
// =====================================================

func (s *orderService) GetOrder(ctx context.Context, actor shared.Actor, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.checkReadRights(actor, order); err != nil {
		return nil, err
	}

	return order, nil
}

func (s *orderService) GetStatusHistory(ctx context.Context, actor shared.Actor, orderID uuid.UUID) ([]model.StatusHistory, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.checkReadRights(actor, order); err != nil {
		return nil, err
	}

	return s.orderRepo.GetStatusHistory(ctx, orderID)
}

func (s *orderService) checkReadRights(actor shared.Actor, order *model.Order) error {
	if actor.IsAdmin() {
		return nil
	}
	effective := actor.EffectiveID()
	if effective == order.StudentID || effective == order.RestaurantID {
		return nil
	}
	return model.ErrUnauthorized
}

func (s *orderService) ListForStudent(ctx context.Context, actor shared.Actor, page, limit int) ([]model.Order, int, error) {
	page, limit = normalizePage(page, limit)
	return s.orderRepo.ListByStudent(ctx, actor.EffectiveID(), page, limit)
}

func (s *orderService) ListForRestaurant(ctx context.Context, actor shared.Actor, status string, page, limit int) ([]model.Order, int, error) {
	page, limit = normalizePage(page, limit)
	return s.orderRepo.ListByRestaurant(ctx, actor.EffectiveID(), status, page, limit)
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
