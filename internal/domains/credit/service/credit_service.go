package service

import (
	"context"

	"biteclub-backend/internal/domains/credit/model"
	"biteclub-backend/internal/domains/credit/repository"
	"biteclub-backend/internal/infrastructure/database"
	"biteclub-backend/internal/shared"
	"biteclub-backend/pkg/logger"

	"github.com/google/uuid"
)

type CreditService interface {
	// Topup records a purchase entry. The external payment already
	// succeeded by the time this is called; we only append the ledger
	// row and bump the balance.
	Topup(ctx context.Context, actor shared.Actor, req model.TopupRequest) (*model.CreditTransaction, error)
	AdminAdjust(ctx context.Context, actor shared.Actor, req model.AdminAdjustRequest) (*model.CreditTransaction, error)
	GetBalance(ctx context.Context, actor shared.Actor) (*model.BalanceResponse, error)
	History(ctx context.Context, actor shared.Actor, page, limit int) ([]model.CreditTransaction, int, error)
}

type creditService struct {
	creditRepo repository.CreditRepository
	txManager  database.TxManager
}

func NewCreditService(creditRepo repository.CreditRepository, txManager database.TxManager) CreditService {
	return &creditService{
		creditRepo: creditRepo,
		txManager:  txManager,
	}
}

func (s *creditService) Topup(ctx context.Context, actor shared.Actor, req model.TopupRequest) (*model.CreditTransaction, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	entry := &model.CreditTransaction{
		ID:        uuid.New(),
		StudentID: actor.EffectiveID(),
		Type:      model.TypePurchase,
		Amount:    req.Amount.Round(2),
		Note:      req.Reference,
		CreatedBy: actor.SubjectID,
	}

	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.creditRepo.Append(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("credit top-up recorded", map[string]interface{}{
		"student_id": entry.StudentID.String(),
		"amount":     entry.Amount.String(),
	})

	return entry, nil
}

func (s *creditService) AdminAdjust(ctx context.Context, actor shared.Actor, req model.AdminAdjustRequest) (*model.CreditTransaction, error) {
	if !actor.IsAdmin() {
		return nil, model.ErrUnauthorized
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	entry := &model.CreditTransaction{
		ID:        uuid.New(),
		StudentID: req.StudentID,
		Type:      model.TypeAdminAdd,
		Amount:    req.Amount.Round(2),
		Note:      req.Note,
		CreatedBy: actor.SubjectID,
	}

	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.creditRepo.Append(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("admin credit adjustment", map[string]interface{}{
		"student_id": entry.StudentID.String(),
		"amount":     entry.Amount.String(),
		"admin_id":   actor.SubjectID.String(),
	})

	return entry, nil
}

func (s *creditService) GetBalance(ctx context.Context, actor shared.Actor) (*model.BalanceResponse, error) {
	studentID := actor.EffectiveID()

	balance, err := s.creditRepo.GetBalance(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return &model.BalanceResponse{StudentID: studentID, Balance: balance}, nil
}

func (s *creditService) History(ctx context.Context, actor shared.Actor, page, limit int) ([]model.CreditTransaction, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	return s.creditRepo.ListByStudent(ctx, actor.EffectiveID(), page, limit)
}
