package service

import (
	"context"
	"errors"
	"testing"

	creditmodel "biteclub-backend/internal/domains/credit/model"
	menumodel "biteclub-backend/internal/domains/menu/model"
	"biteclub-backend/internal/domains/order/model"
	promomodel "biteclub-backend/internal/domains/promotion/model"
	promoservice "biteclub-backend/internal/domains/promotion/service"
	restmodel "biteclub-backend/internal/domains/restaurant/model"
	"biteclub-backend/internal/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================================================
// MOCKS
// =====================================================

type mockOrderRepo struct{ mock.Mock }

func (m *mockOrderRepo) Create(ctx context.Context, order *model.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockOrderRepo) CreateItems(ctx context.Context, items []model.OrderItem) error {
	return m.Called(ctx, items).Error(0)
}

func (m *mockOrderRepo) GetByID(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, orderID uuid.UUID, version int, newStatus string) error {
	return m.Called(ctx, orderID, version, newStatus).Error(0)
}

func (m *mockOrderRepo) AddStatusHistory(ctx context.Context, entry *model.StatusHistory) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *mockOrderRepo) GetStatusHistory(ctx context.Context, orderID uuid.UUID) ([]model.StatusHistory, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StatusHistory), args.Error(1)
}

func (m *mockOrderRepo) GetPromotionHistory(ctx context.Context, studentID, restaurantID uuid.UUID) (promomodel.History, error) {
	args := m.Called(ctx, studentID, restaurantID)
	return args.Get(0).(promomodel.History), args.Error(1)
}

func (m *mockOrderRepo) ListByStudent(ctx context.Context, studentID uuid.UUID, page, limit int) ([]model.Order, int, error) {
	args := m.Called(ctx, studentID, page, limit)
	return args.Get(0).([]model.Order), args.Int(1), args.Error(2)
}

func (m *mockOrderRepo) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID, status string, page, limit int) ([]model.Order, int, error) {
	args := m.Called(ctx, restaurantID, status, page, limit)
	return args.Get(0).([]model.Order), args.Int(1), args.Error(2)
}

type mockMenuRepo struct{ mock.Mock }

func (m *mockMenuRepo) CreateItem(ctx context.Context, item *menumodel.MenuItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockMenuRepo) ReplaceItem(ctx context.Context, item *menumodel.MenuItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockMenuRepo) GetItem(ctx context.Context, itemID uuid.UUID) (*menumodel.MenuItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menumodel.MenuItem), args.Error(1)
}

func (m *mockMenuRepo) GetItemsForCheckout(ctx context.Context, restaurantID uuid.UUID, itemIDs []uuid.UUID) (map[uuid.UUID]*menumodel.MenuItem, error) {
	args := m.Called(ctx, restaurantID, itemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]*menumodel.MenuItem), args.Error(1)
}

func (m *mockMenuRepo) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]menumodel.MenuItem, error) {
	args := m.Called(ctx, restaurantID)
	return args.Get(0).([]menumodel.MenuItem), args.Error(1)
}

func (m *mockMenuRepo) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	return m.Called(ctx, itemID).Error(0)
}

func (m *mockMenuRepo) SetAvailability(ctx context.Context, itemID uuid.UUID, available bool) error {
	return m.Called(ctx, itemID, available).Error(0)
}

type mockCreditRepo struct{ mock.Mock }

func (m *mockCreditRepo) Append(ctx context.Context, entry *creditmodel.CreditTransaction) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *mockCreditRepo) GetBalanceForUpdate(ctx context.Context, studentID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, studentID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockCreditRepo) GetBalance(ctx context.Context, studentID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, studentID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockCreditRepo) ListByStudent(ctx context.Context, studentID uuid.UUID, page, limit int) ([]creditmodel.CreditTransaction, int, error) {
	args := m.Called(ctx, studentID, page, limit)
	return args.Get(0).([]creditmodel.CreditTransaction), args.Int(1), args.Error(2)
}

type mockRestaurantRepo struct{ mock.Mock }

func (m *mockRestaurantRepo) Create(ctx context.Context, restaurant *restmodel.Restaurant) error {
	return m.Called(ctx, restaurant).Error(0)
}

func (m *mockRestaurantRepo) GetByID(ctx context.Context, id uuid.UUID) (*restmodel.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*restmodel.Restaurant), args.Error(1)
}

func (m *mockRestaurantRepo) GetByEmail(ctx context.Context, email string) (*restmodel.Restaurant, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*restmodel.Restaurant), args.Error(1)
}

func (m *mockRestaurantRepo) List(ctx context.Context, school string, activeOnly bool, page, limit int) ([]restmodel.Restaurant, int, error) {
	args := m.Called(ctx, school, activeOnly, page, limit)
	return args.Get(0).([]restmodel.Restaurant), args.Int(1), args.Error(2)
}

func (m *mockRestaurantRepo) UpdateProfile(ctx context.Context, restaurant *restmodel.Restaurant) error {
	return m.Called(ctx, restaurant).Error(0)
}

func (m *mockRestaurantRepo) UpdatePromotion(ctx context.Context, id uuid.UUID, cfg promomodel.Config) error {
	return m.Called(ctx, id, cfg).Error(0)
}

func (m *mockRestaurantRepo) UpdateCallDispatch(ctx context.Context, id uuid.UUID, cfg restmodel.CallDispatchConfig) error {
	return m.Called(ctx, id, cfg).Error(0)
}

func (m *mockRestaurantRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// fakeTxManager runs the function inline; commit/rollback semantics are
// covered by the database layer, not here.
type fakeTxManager struct{}

func (fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// =====================================================
// FIXTURES
// =====================================================

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

type fixture struct {
	orderRepo      *mockOrderRepo
	menuRepo       *mockMenuRepo
	creditRepo     *mockCreditRepo
	restaurantRepo *mockRestaurantRepo
	svc            OrderService

	studentID    uuid.UUID
	restaurantID uuid.UUID
	itemID       uuid.UUID
	actor        shared.Actor
}

func newFixture() *fixture {
	f := &fixture{
		orderRepo:      &mockOrderRepo{},
		menuRepo:       &mockMenuRepo{},
		creditRepo:     &mockCreditRepo{},
		restaurantRepo: &mockRestaurantRepo{},
		studentID:      uuid.New(),
		restaurantID:   uuid.New(),
		itemID:         uuid.New(),
	}
	f.actor = shared.Actor{SubjectID: f.studentID, Role: shared.RoleStudent}
	f.svc = NewOrderService(
		f.orderRepo,
		f.menuRepo,
		f.creditRepo,
		f.restaurantRepo,
		promoservice.NewEvaluator(),
		fakeTxManager{},
		nil, // no task queue in unit tests
	)
	return f
}

func (f *fixture) restaurant(promo promomodel.Config) *restmodel.Restaurant {
	return &restmodel.Restaurant{
		ID:        f.restaurantID,
		Name:      "Campus Grill",
		Active:    true,
		Promotion: promo,
		CallDispatch: restmodel.CallDispatchConfig{
			PhoneNumber:    "+15550001111",
			MaxRetries:     2,
			TimeoutSeconds: 60,
		},
	}
}

func (f *fixture) menuItem(price string) *menumodel.MenuItem {
	return &menumodel.MenuItem{
		ID:           f.itemID,
		RestaurantID: f.restaurantID,
		Name:         "Club Sandwich",
		Price:        dec(price),
		Available:    true,
	}
}

func (f *fixture) checkoutRequest(qty int) model.CheckoutRequest {
	return model.CheckoutRequest{
		RestaurantID: f.restaurantID,
		Items:        []model.CartItem{{MenuItemID: f.itemID, Quantity: qty}},
	}
}

// =====================================================
// CHECKOUT
// =====================================================

func TestCheckout_FirstTimeDiscountLedgerMath(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.restaurantRepo.On("GetByID", mock.Anything, f.restaurantID).Return(f.restaurant(promomodel.Config{
		FirstTimeEnabled: true,
		FirstTimePercent: dec("20"),
	}), nil)
	f.menuRepo.On("GetItemsForCheckout", mock.Anything, f.restaurantID, mock.Anything).
		Return(map[uuid.UUID]*menumodel.MenuItem{f.itemID: f.menuItem("10.00")}, nil)
	f.creditRepo.On("GetBalanceForUpdate", mock.Anything, f.studentID).Return(dec("50.00"), nil)
	f.orderRepo.On("GetPromotionHistory", mock.Anything, f.studentID, f.restaurantID).
		Return(promomodel.History{CompletedOrders: 0, CompletedSpend: decimal.Zero}, nil)

	var createdOrder *model.Order
	f.orderRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		createdOrder = args.Get(1).(*model.Order)
	}).Return(nil)
	f.orderRepo.On("CreateItems", mock.Anything, mock.Anything).Return(nil)

	var ledger []*creditmodel.CreditTransaction
	f.creditRepo.On("Append", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		ledger = append(ledger, args.Get(1).(*creditmodel.CreditTransaction))
	}).Return(nil)

	receipt, err := f.svc.Checkout(ctx, f.actor, f.checkoutRequest(2))
	require.NoError(t, err)

	// Subtotal 20.00, 20% first-time discount -> 4.00 off, 16.00 due.
	require.NotNil(t, createdOrder)
	assert.True(t, createdOrder.TotalAmount.Equal(dec("20.00")))
	assert.True(t, createdOrder.DiscountAmount.Equal(dec("4.00")))
	assert.True(t, createdOrder.FinalAmount.Equal(dec("16.00")))
	assert.Equal(t, model.StatusPending, createdOrder.Status)
	assert.Equal(t, 1, createdOrder.Version)
	require.NotNil(t, createdOrder.PromotionApplied)
	assert.Equal(t, promomodel.KindFirstTime, *createdOrder.PromotionApplied)

	require.Len(t, ledger, 1)
	assert.Equal(t, creditmodel.TypeSpend, ledger[0].Type)
	assert.True(t, ledger[0].Amount.Equal(dec("-16.00")))
	require.NotNil(t, ledger[0].OrderID)
	assert.Equal(t, createdOrder.ID, *ledger[0].OrderID)

	assert.Equal(t, promomodel.KindFirstTime, receipt.PromotionApplied)
	assert.True(t, receipt.RemainingBalance.Equal(dec("34.00")))
}

func TestCheckout_LoyaltyRewardCreditedImmediately(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.restaurantRepo.On("GetByID", mock.Anything, f.restaurantID).Return(f.restaurant(promomodel.Config{
		LoyaltyEnabled:        true,
		LoyaltySpendThreshold: dec("50.00"),
		LoyaltyRewardAmount:   dec("5.00"),
	}), nil)
	f.menuRepo.On("GetItemsForCheckout", mock.Anything, f.restaurantID, mock.Anything).
		Return(map[uuid.UUID]*menumodel.MenuItem{f.itemID: f.menuItem("10.00")}, nil)
	f.creditRepo.On("GetBalanceForUpdate", mock.Anything, f.studentID).Return(dec("100.00"), nil)
	// 45.00 of prior completed spend; this 10.00 order crosses 50.
	f.orderRepo.On("GetPromotionHistory", mock.Anything, f.studentID, f.restaurantID).
		Return(promomodel.History{CompletedOrders: 3, CompletedSpend: dec("45.00")}, nil)
	f.orderRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.orderRepo.On("CreateItems", mock.Anything, mock.Anything).Return(nil)

	var ledger []*creditmodel.CreditTransaction
	f.creditRepo.On("Append", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		ledger = append(ledger, args.Get(1).(*creditmodel.CreditTransaction))
	}).Return(nil)

	receipt, err := f.svc.Checkout(ctx, f.actor, f.checkoutRequest(1))
	require.NoError(t, err)

	// No discount on the crossing order, exactly one reward credit.
	assert.True(t, receipt.DiscountAmount.IsZero())
	assert.True(t, receipt.LoyaltyReward.Equal(dec("5.00")))

	require.Len(t, ledger, 2)
	assert.Equal(t, creditmodel.TypeSpend, ledger[0].Type)
	assert.True(t, ledger[0].Amount.Equal(dec("-10.00")))
	assert.Equal(t, creditmodel.TypeLoyaltyReward, ledger[1].Type)
	assert.True(t, ledger[1].Amount.Equal(dec("5.00")))

	// 100 - 10 + 5
	assert.True(t, receipt.RemainingBalance.Equal(dec("95.00")))
}

func TestCheckout_InsufficientCreditWritesNothing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.restaurantRepo.On("GetByID", mock.Anything, f.restaurantID).Return(f.restaurant(promomodel.Config{}), nil)
	f.menuRepo.On("GetItemsForCheckout", mock.Anything, f.restaurantID, mock.Anything).
		Return(map[uuid.UUID]*menumodel.MenuItem{f.itemID: f.menuItem("30.00")}, nil)
	f.creditRepo.On("GetBalanceForUpdate", mock.Anything, f.studentID).Return(dec("10.00"), nil)
	f.orderRepo.On("GetPromotionHistory", mock.Anything, f.studentID, f.restaurantID).
		Return(promomodel.History{}, nil)

	_, err := f.svc.Checkout(ctx, f.actor, f.checkoutRequest(1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, creditmodel.ErrInsufficientCredit))

	var orderErr *model.OrderError
	require.True(t, errors.As(err, &orderErr))
	assert.Equal(t, model.ErrCodeInsufficientCredit, orderErr.Code)

	f.orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.orderRepo.AssertNotCalled(t, "CreateItems", mock.Anything, mock.Anything)
	f.creditRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestCheckout_InactiveRestaurantRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	restaurant := f.restaurant(promomodel.Config{})
	restaurant.Active = false
	f.restaurantRepo.On("GetByID", mock.Anything, f.restaurantID).Return(restaurant, nil)

	_, err := f.svc.Checkout(ctx, f.actor, f.checkoutRequest(1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrRestaurantInactive))
	f.creditRepo.AssertNotCalled(t, "GetBalanceForUpdate", mock.Anything, mock.Anything)
}

func TestCheckout_UnavailableItemRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	item := f.menuItem("10.00")
	item.Available = false

	f.restaurantRepo.On("GetByID", mock.Anything, f.restaurantID).Return(f.restaurant(promomodel.Config{}), nil)
	f.menuRepo.On("GetItemsForCheckout", mock.Anything, f.restaurantID, mock.Anything).
		Return(map[uuid.UUID]*menumodel.MenuItem{f.itemID: item}, nil)

	_, err := f.svc.Checkout(ctx, f.actor, f.checkoutRequest(1))
	require.Error(t, err)

	var orderErr *model.OrderError
	require.True(t, errors.As(err, &orderErr))
	assert.Equal(t, model.ErrCodeItemUnavailable, orderErr.Code)
}

func TestCheckout_EmptyCartRejected(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Checkout(context.Background(), f.actor, model.CheckoutRequest{
		RestaurantID: f.restaurantID,
	})
	require.Error(t, err)
	f.restaurantRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestCheckout_ZeroQuantityRejected(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Checkout(context.Background(), f.actor, f.checkoutRequest(0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrValidation))
}

// =====================================================
// LIFECYCLE
// =====================================================

func (f *fixture) pendingOrder() *model.Order {
	return &model.Order{
		ID:           uuid.New(),
		StudentID:    f.studentID,
		RestaurantID: f.restaurantID,
		TotalAmount:  dec("20.00"),
		FinalAmount:  dec("20.00"),
		Status:       model.StatusPending,
		Version:      1,
	}
}

func restaurantActor(f *fixture) shared.Actor {
	return shared.Actor{SubjectID: f.restaurantID, Role: shared.RoleRestaurant}
}

func TestReject_RefundsFinalAmountOnce(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	order := f.pendingOrder()

	f.orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, nil)
	f.orderRepo.On("UpdateStatus", mock.Anything, order.ID, 1, model.StatusCancelled).Return(nil)
	f.orderRepo.On("AddStatusHistory", mock.Anything, mock.Anything).Return(nil)

	var refund *creditmodel.CreditTransaction
	f.creditRepo.On("Append", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		refund = args.Get(1).(*creditmodel.CreditTransaction)
	}).Return(nil)

	updated, err := f.svc.Reject(ctx, restaurantActor(f), order.ID, "out of bread")
	require.NoError(t, err)

	assert.Equal(t, model.StatusCancelled, updated.Status)
	assert.Equal(t, 2, updated.Version)

	require.NotNil(t, refund)
	assert.Equal(t, creditmodel.TypeRefund, refund.Type)
	assert.True(t, refund.Amount.Equal(dec("20.00")))
	f.creditRepo.AssertNumberOfCalls(t, "Append", 1)
}

func TestReject_AlreadyCancelledFailsWithoutRefund(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	order := f.pendingOrder()
	order.Status = model.StatusCancelled
	order.Version = 2

	f.orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, nil)

	_, err := f.svc.Reject(ctx, restaurantActor(f), order.ID, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidTransition))

	f.orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.creditRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestCloseout_FromPendingFails(t *testing.T) {
	f := newFixture()
	order := f.pendingOrder()

	f.orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, nil)

	_, err := f.svc.Closeout(context.Background(), restaurantActor(f), order.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidTransition))
}

func TestTransition_VersionConflictSurfaces(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	order := f.pendingOrder()

	f.orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, nil)
	f.orderRepo.On("UpdateStatus", mock.Anything, order.ID, 1, model.StatusConfirmed).
		Return(model.ErrVersionMismatch)

	_, err := f.svc.Accept(ctx, restaurantActor(f), order.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrVersionMismatch))

	// The refund and audit row live in the same transaction as the
	// status update, so nothing else may have been written.
	f.creditRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	f.orderRepo.AssertNotCalled(t, "AddStatusHistory", mock.Anything, mock.Anything)
}

func TestAccept_NoLedgerEffect(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	order := f.pendingOrder()

	f.orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, nil)
	f.orderRepo.On("UpdateStatus", mock.Anything, order.ID, 1, model.StatusConfirmed).Return(nil)
	f.orderRepo.On("AddStatusHistory", mock.Anything, mock.Anything).Return(nil)

	updated, err := f.svc.Accept(ctx, restaurantActor(f), order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, updated.Status)
	f.creditRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestCancel_ByOwningStudentFromConfirmed(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	order := f.pendingOrder()
	order.Status = model.StatusConfirmed
	order.Version = 2

	f.orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, nil)
	f.orderRepo.On("UpdateStatus", mock.Anything, order.ID, 2, model.StatusCancelled).Return(nil)
	f.orderRepo.On("AddStatusHistory", mock.Anything, mock.Anything).Return(nil)
	f.creditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

	updated, err := f.svc.Cancel(ctx, f.actor, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, updated.Status)
	f.creditRepo.AssertNumberOfCalls(t, "Append", 1)
}

func TestTransition_WrongActorForbidden(t *testing.T) {
	f := newFixture()
	order := f.pendingOrder()

	f.orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, nil)

	// A different student cannot cancel someone else's order.
	stranger := shared.Actor{SubjectID: uuid.New(), Role: shared.RoleStudent}
	_, err := f.svc.Cancel(context.Background(), stranger, order.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrUnauthorized))

	// A student cannot accept their own order either; that is the
	// restaurant's move.
	_, err = f.svc.Accept(context.Background(), f.actor, order.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrUnauthorized))
}

func TestAdminCanActOnAnyOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	order := f.pendingOrder()

	f.orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, nil)
	f.orderRepo.On("UpdateStatus", mock.Anything, order.ID, 1, model.StatusConfirmed).Return(nil)
	f.orderRepo.On("AddStatusHistory", mock.Anything, mock.Anything).Return(nil)

	admin := shared.Actor{SubjectID: uuid.New(), Role: shared.RoleAdmin}
	_, err := f.svc.Accept(ctx, admin, order.ID)
	require.NoError(t, err)
}
