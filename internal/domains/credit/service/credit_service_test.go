package service

import (
	"context"
	"errors"
	"testing"

	"biteclub-backend/internal/domains/credit/model"
	"biteclub-backend/internal/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCreditRepository struct {
	mock.Mock
}

func (m *mockCreditRepository) Append(ctx context.Context, entry *model.CreditTransaction) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockCreditRepository) GetBalanceForUpdate(ctx context.Context, studentID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, studentID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockCreditRepository) GetBalance(ctx context.Context, studentID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, studentID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockCreditRepository) ListByStudent(ctx context.Context, studentID uuid.UUID, page, limit int) ([]model.CreditTransaction, int, error) {
	args := m.Called(ctx, studentID, page, limit)
	return args.Get(0).([]model.CreditTransaction), args.Int(1), args.Error(2)
}

type fakeTxManager struct{}

func (fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func studentActor(id uuid.UUID) shared.Actor {
	return shared.Actor{SubjectID: id, Role: shared.RoleStudent}
}

func TestTopup_AppendsPurchaseEntry(t *testing.T) {
	repo := new(mockCreditRepository)
	svc := NewCreditService(repo, fakeTxManager{})

	studentID := uuid.New()
	repo.On("Append", mock.Anything, mock.MatchedBy(func(e *model.CreditTransaction) bool {
		return e.StudentID == studentID &&
			e.Type == model.TypePurchase &&
			e.Amount.Equal(decimal.RequireFromString("25.00")) &&
			e.CreatedBy == studentID
	})).Return(nil)

	entry, err := svc.Topup(context.Background(), studentActor(studentID), model.TopupRequest{
		Amount:    decimal.RequireFromString("25"),
		Reference: "kiosk-017",
	})

	require.NoError(t, err)
	assert.Equal(t, model.TypePurchase, entry.Type)
	assert.Equal(t, "kiosk-017", entry.Note)
	repo.AssertExpectations(t)
}

func TestTopup_RejectsNonPositiveAmount(t *testing.T) {
	repo := new(mockCreditRepository)
	svc := NewCreditService(repo, fakeTxManager{})

	_, err := svc.Topup(context.Background(), studentActor(uuid.New()), model.TopupRequest{
		Amount: decimal.Zero,
	})

	require.Error(t, err)
	repo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestAdminAdjust_RequiresAdmin(t *testing.T) {
	repo := new(mockCreditRepository)
	svc := NewCreditService(repo, fakeTxManager{})

	_, err := svc.AdminAdjust(context.Background(), studentActor(uuid.New()), model.AdminAdjustRequest{
		StudentID: uuid.New(),
		Amount:    decimal.RequireFromString("10"),
		Note:      "goodwill",
	})

	require.ErrorIs(t, err, model.ErrUnauthorized)
	repo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestAdminAdjust_NegativeAmountPassesThroughGuard(t *testing.T) {
	repo := new(mockCreditRepository)
	svc := NewCreditService(repo, fakeTxManager{})

	adminID := uuid.New()
	targetID := uuid.New()
	actor := shared.Actor{SubjectID: adminID, Role: shared.RoleAdmin}

	repo.On("Append", mock.Anything, mock.MatchedBy(func(e *model.CreditTransaction) bool {
		return e.StudentID == targetID &&
			e.Type == model.TypeAdminAdd &&
			e.Amount.Equal(decimal.RequireFromString("-5.00")) &&
			e.CreatedBy == adminID
	})).Return(nil)

	entry, err := svc.AdminAdjust(context.Background(), actor, model.AdminAdjustRequest{
		StudentID: targetID,
		Amount:    decimal.RequireFromString("-5"),
		Note:      "duplicate top-up reversal",
	})

	require.NoError(t, err)
	assert.True(t, entry.Amount.IsNegative())
	repo.AssertExpectations(t)
}

func TestAdminAdjust_SurfacesInsufficientCredit(t *testing.T) {
	repo := new(mockCreditRepository)
	svc := NewCreditService(repo, fakeTxManager{})

	actor := shared.Actor{SubjectID: uuid.New(), Role: shared.RoleAdmin}
	repo.On("Append", mock.Anything, mock.Anything).Return(model.ErrInsufficientCredit)

	_, err := svc.AdminAdjust(context.Background(), actor, model.AdminAdjustRequest{
		StudentID: uuid.New(),
		Amount:    decimal.RequireFromString("-500"),
		Note:      "reversal",
	})

	require.True(t, errors.Is(err, model.ErrInsufficientCredit))
}

func TestGetBalance_UsesEffectiveID(t *testing.T) {
	repo := new(mockCreditRepository)
	svc := NewCreditService(repo, fakeTxManager{})

	studentID := uuid.New()
	adminID := uuid.New()
	actor := shared.Actor{SubjectID: adminID, Role: shared.RoleAdmin, OnBehalfOf: &studentID}

	repo.On("GetBalance", mock.Anything, studentID).Return(decimal.RequireFromString("42.50"), nil)

	resp, err := svc.GetBalance(context.Background(), actor)

	require.NoError(t, err)
	assert.Equal(t, studentID, resp.StudentID)
	assert.True(t, resp.Balance.Equal(decimal.RequireFromString("42.50")))
}

func TestHistory_NormalizesPagination(t *testing.T) {
	repo := new(mockCreditRepository)
	svc := NewCreditService(repo, fakeTxManager{})

	studentID := uuid.New()
	repo.On("ListByStudent", mock.Anything, studentID, 1, 20).
		Return([]model.CreditTransaction{}, 0, nil)

	_, _, err := svc.History(context.Background(), studentActor(studentID), 0, 500)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}
