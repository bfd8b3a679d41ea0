package job

import (
	"context"
	"fmt"

	"biteclub-backend/internal/domains/order/model"
	"biteclub-backend/internal/domains/order/repository"
	"biteclub-backend/internal/domains/order/service"
	restrepo "biteclub-backend/internal/domains/restaurant/repository"
	"biteclub-backend/internal/infrastructure/telephony"
	"biteclub-backend/internal/shared/utils"
	"biteclub-backend/pkg/logger"

	"github.com/hibiken/asynq"
)

// DispatchCallHandler phones the restaurant about a new order. asynq
// retries it up to the restaurant's configured max, with backoff.
type DispatchCallHandler struct {
	orderRepo      repository.OrderRepository
	restaurantRepo restrepo.RestaurantRepository
	telephony      *telephony.Client
}

func NewDispatchCallHandler(
	orderRepo repository.OrderRepository,
	restaurantRepo restrepo.RestaurantRepository,
	telephonyClient *telephony.Client,
) *DispatchCallHandler {
	return &DispatchCallHandler{
		orderRepo:      orderRepo,
		restaurantRepo: restaurantRepo,
		telephony:      telephonyClient,
	}
}

func (h *DispatchCallHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload service.DispatchCallPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	order, err := h.orderRepo.GetByID(ctx, payload.OrderID)
	if err != nil {
		return err
	}

	// The order may already have been handled through the app by the
	// time a retry fires; calling about it again would only confuse.
	if order.Status != model.StatusPending {
		logger.Info("skipping dispatch call, order no longer pending", map[string]interface{}{
			"order_id": order.ID.String(),
			"status":   order.Status,
		})
		return nil
	}

	restaurant, err := h.restaurantRepo.GetByID(ctx, payload.RestaurantID)
	if err != nil {
		return err
	}

	itemCount := 0
	for _, item := range order.Items {
		itemCount += item.Quantity
	}

	result, err := h.telephony.PlaceOrderCall(ctx, telephony.CallRequest{
		PhoneNumber:    restaurant.CallDispatch.PhoneNumber,
		OrderNumber:    order.ID.String(),
		ItemCount:      itemCount,
		TimeoutSeconds: restaurant.CallDispatch.TimeoutSeconds,
	})
	if err != nil {
		return fmt.Errorf("dispatch call failed for order %s: %w", order.ID, err)
	}

	logger.Info("dispatch call placed", map[string]interface{}{
		"order_id": order.ID.String(),
		"call_id":  result.CallID,
		"status":   result.Status,
	})

	return nil
}
