package service

import (
	"biteclub-backend/internal/domains/promotion/model"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// Evaluator computes which promotion, if any, applies to a candidate
// order. It is a pure function of its inputs: it never writes orders or
// ledger entries, and identical inputs always yield identical results.
type Evaluator struct{}

func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate applies the restaurant's promotion rules to a candidate
// subtotal, given the student's history of COMPLETED orders at that
// restaurant.
//
// Rules, mutually exclusive, first match wins:
//  1. First-time: enabled and zero prior completed orders.
//     discount = subtotal * percent / 100, rounded to 2 places
//     (half-up). A configured percent of 0 still tags the order
//     first_time with a zero discount; the tag is tracked for
//     analytics.
//  2. Loyalty: enabled and the order pushes cumulative spend across the
//     threshold. The reward is a credit granted after order creation,
//     never a discount on this order. Progress restarts from the
//     remainder above the threshold, so a single order spanning more
//     than one full threshold still earns exactly one reward.
//  3. Otherwise no promotion; loyalty progress is included for display
//     when loyalty is enabled.
func (e *Evaluator) Evaluate(cfg model.Config, hist model.History, subtotal decimal.Decimal) (*model.Result, error) {
	if subtotal.LessThan(decimal.Zero) {
		return nil, model.NewPromotionError(model.ErrCodeInvalidSubtotal, "candidate subtotal is negative", model.ErrInvalidSubtotal)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Rule 1: first-time discount
	if cfg.FirstTimeEnabled && hist.CompletedOrders == 0 {
		discount := subtotal.Mul(cfg.FirstTimePercent).Div(oneHundred).Round(2)

		return &model.Result{
			Kind:            model.KindFirstTime,
			DiscountAmount:  discount,
			FinalAmount:     subtotal.Sub(discount),
			LoyaltyReward:   decimal.Zero,
			LoyaltyProgress: e.loyaltyProgress(cfg, hist, subtotal),
		}, nil
	}

	// Rule 2: loyalty threshold crossing
	if cfg.LoyaltyEnabled {
		// Progress within the current reward cycle: spend already
		// rewarded is subtracted by taking the remainder.
		progress := hist.CompletedSpend.Mod(cfg.LoyaltySpendThreshold)
		post := progress.Add(subtotal)

		if post.GreaterThanOrEqual(cfg.LoyaltySpendThreshold) {
			return &model.Result{
				Kind:           model.KindLoyalty,
				DiscountAmount: decimal.Zero,
				FinalAmount:    subtotal,
				LoyaltyReward:  cfg.LoyaltyRewardAmount,
				LoyaltyProgress: &model.LoyaltyProgress{
					CurrentSpend: post.Mod(cfg.LoyaltySpendThreshold),
					Threshold:    cfg.LoyaltySpendThreshold,
					Remaining:    cfg.LoyaltySpendThreshold.Sub(post.Mod(cfg.LoyaltySpendThreshold)),
				},
			}, nil
		}
	}

	// Rule 3: nothing fires
	return &model.Result{
		Kind:            model.KindNone,
		DiscountAmount:  decimal.Zero,
		FinalAmount:     subtotal,
		LoyaltyReward:   decimal.Zero,
		LoyaltyProgress: e.loyaltyProgress(cfg, hist, subtotal),
	}, nil
}

// loyaltyProgress builds the display-only progress block, including the
// candidate subtotal, or nil when loyalty is disabled.
func (e *Evaluator) loyaltyProgress(cfg model.Config, hist model.History, subtotal decimal.Decimal) *model.LoyaltyProgress {
	if !cfg.LoyaltyEnabled {
		return nil
	}

	current := hist.CompletedSpend.Mod(cfg.LoyaltySpendThreshold).Add(subtotal)
	remaining := cfg.LoyaltySpendThreshold.Sub(current)
	if remaining.LessThan(decimal.Zero) {
		remaining = decimal.Zero
	}

	return &model.LoyaltyProgress{
		CurrentSpend: current,
		Threshold:    cfg.LoyaltySpendThreshold,
		Remaining:    remaining,
	}
}
