package service

import (
	"testing"

	"biteclub-backend/internal/domains/promotion/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func firstTimeConfig(percent string) model.Config {
	return model.Config{
		FirstTimeEnabled: true,
		FirstTimePercent: dec(percent),
	}
}

func loyaltyConfig(threshold, reward string) model.Config {
	return model.Config{
		LoyaltyEnabled:        true,
		LoyaltySpendThreshold: dec(threshold),
		LoyaltyRewardAmount:   dec(reward),
	}
}

func TestEvaluate_FirstTimeDiscount(t *testing.T) {
	e := NewEvaluator()

	result, err := e.Evaluate(firstTimeConfig("20"), model.History{}, dec("20.00"))
	require.NoError(t, err)

	assert.Equal(t, model.KindFirstTime, result.Kind)
	assert.True(t, result.DiscountAmount.Equal(dec("4.00")), "discount = %s", result.DiscountAmount)
	assert.True(t, result.FinalAmount.Equal(dec("16.00")), "final = %s", result.FinalAmount)
	assert.True(t, result.LoyaltyReward.IsZero())
}

func TestEvaluate_FirstTimeRoundsHalfUp(t *testing.T) {
	e := NewEvaluator()

	// 16.70 * 15% = 2.505 -> 2.51
	result, err := e.Evaluate(firstTimeConfig("15"), model.History{}, dec("16.70"))
	require.NoError(t, err)

	assert.True(t, result.DiscountAmount.Equal(dec("2.51")), "discount = %s", result.DiscountAmount)
	assert.True(t, result.FinalAmount.Equal(dec("14.19")), "final = %s", result.FinalAmount)
}

func TestEvaluate_FirstTimeZeroPercentStillTags(t *testing.T) {
	e := NewEvaluator()

	// A configured 0% keeps the first_time tag for analytics.
	result, err := e.Evaluate(firstTimeConfig("0"), model.History{}, dec("12.50"))
	require.NoError(t, err)

	assert.Equal(t, model.KindFirstTime, result.Kind)
	assert.True(t, result.DiscountAmount.IsZero())
	assert.True(t, result.FinalAmount.Equal(dec("12.50")))
}

func TestEvaluate_FirstTimeSkippedAfterFirstCompletedOrder(t *testing.T) {
	e := NewEvaluator()

	hist := model.History{CompletedOrders: 1, CompletedSpend: dec("18.00")}
	result, err := e.Evaluate(firstTimeConfig("20"), hist, dec("20.00"))
	require.NoError(t, err)

	assert.Equal(t, model.KindNone, result.Kind)
	assert.True(t, result.DiscountAmount.IsZero())
	assert.True(t, result.FinalAmount.Equal(dec("20.00")))
}

func TestEvaluate_FirstTimeDisabled(t *testing.T) {
	e := NewEvaluator()

	cfg := model.Config{FirstTimeEnabled: false, FirstTimePercent: dec("20")}
	result, err := e.Evaluate(cfg, model.History{}, dec("20.00"))
	require.NoError(t, err)

	assert.Equal(t, model.KindNone, result.Kind)
}

func TestEvaluate_LoyaltyThresholdCrossing(t *testing.T) {
	e := NewEvaluator()

	// $45 completed spend, $10 order crosses the $50 threshold:
	// exactly one reward, no discount on this order.
	hist := model.History{CompletedOrders: 3, CompletedSpend: dec("45.00")}
	result, err := e.Evaluate(loyaltyConfig("50.00", "5.00"), hist, dec("10.00"))
	require.NoError(t, err)

	assert.Equal(t, model.KindLoyalty, result.Kind)
	assert.True(t, result.DiscountAmount.IsZero())
	assert.True(t, result.FinalAmount.Equal(dec("10.00")))
	assert.True(t, result.LoyaltyReward.Equal(dec("5.00")))

	// Progress restarts from the remainder above the threshold.
	require.NotNil(t, result.LoyaltyProgress)
	assert.True(t, result.LoyaltyProgress.CurrentSpend.Equal(dec("5.00")),
		"progress = %s", result.LoyaltyProgress.CurrentSpend)
}

func TestEvaluate_LoyaltyBelowThreshold(t *testing.T) {
	e := NewEvaluator()

	hist := model.History{CompletedOrders: 2, CompletedSpend: dec("30.00")}
	result, err := e.Evaluate(loyaltyConfig("50.00", "5.00"), hist, dec("10.00"))
	require.NoError(t, err)

	assert.Equal(t, model.KindNone, result.Kind)
	assert.True(t, result.LoyaltyReward.IsZero())

	require.NotNil(t, result.LoyaltyProgress)
	assert.True(t, result.LoyaltyProgress.CurrentSpend.Equal(dec("40.00")))
	assert.True(t, result.LoyaltyProgress.Remaining.Equal(dec("10.00")))
}

func TestEvaluate_LoyaltyResetPolicy(t *testing.T) {
	e := NewEvaluator()
	cfg := loyaltyConfig("50.00", "5.00")

	// $55 already rewarded once; cycle progress is the $5 remainder.
	hist := model.History{CompletedOrders: 4, CompletedSpend: dec("55.00")}

	// $40 more does not reach the next threshold (5 + 40 = 45).
	result, err := e.Evaluate(cfg, hist, dec("40.00"))
	require.NoError(t, err)
	assert.Equal(t, model.KindNone, result.Kind)
	assert.True(t, result.LoyaltyProgress.Remaining.Equal(dec("5.00")))

	// $45 does (5 + 45 = 50).
	result, err = e.Evaluate(cfg, hist, dec("45.00"))
	require.NoError(t, err)
	assert.Equal(t, model.KindLoyalty, result.Kind)
	assert.True(t, result.LoyaltyReward.Equal(dec("5.00")))
}

func TestEvaluate_LoyaltySingleRewardPerOrder(t *testing.T) {
	e := NewEvaluator()

	// One giant order spanning two full thresholds still earns one reward.
	result, err := e.Evaluate(loyaltyConfig("50.00", "5.00"), model.History{CompletedOrders: 1}, dec("120.00"))
	require.NoError(t, err)

	assert.Equal(t, model.KindLoyalty, result.Kind)
	assert.True(t, result.LoyaltyReward.Equal(dec("5.00")))
}

func TestEvaluate_FirstTimeWinsOverLoyalty(t *testing.T) {
	e := NewEvaluator()

	cfg := model.Config{
		FirstTimeEnabled:      true,
		FirstTimePercent:      dec("10"),
		LoyaltyEnabled:        true,
		LoyaltySpendThreshold: dec("50.00"),
		LoyaltyRewardAmount:   dec("5.00"),
	}

	// First order large enough to cross the loyalty threshold by itself:
	// only the first-time rule fires.
	result, err := e.Evaluate(cfg, model.History{}, dec("60.00"))
	require.NoError(t, err)

	assert.Equal(t, model.KindFirstTime, result.Kind)
	assert.True(t, result.DiscountAmount.Equal(dec("6.00")))
	assert.True(t, result.LoyaltyReward.IsZero())
}

func TestEvaluate_NegativeSubtotalRejected(t *testing.T) {
	e := NewEvaluator()

	_, err := e.Evaluate(firstTimeConfig("20"), model.History{}, dec("-1.00"))
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidSubtotal)
}

func TestEvaluate_InvalidConfigRejected(t *testing.T) {
	e := NewEvaluator()

	cfg := model.Config{FirstTimeEnabled: true, FirstTimePercent: dec("150")}
	_, err := e.Evaluate(cfg, model.History{}, dec("10.00"))
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidConfig)

	cfg = model.Config{LoyaltyEnabled: true, LoyaltySpendThreshold: dec("0")}
	_, err = e.Evaluate(cfg, model.History{}, dec("10.00"))
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidConfig)
}

func TestEvaluate_Idempotent(t *testing.T) {
	e := NewEvaluator()
	cfg := loyaltyConfig("50.00", "5.00")
	hist := model.History{CompletedOrders: 3, CompletedSpend: dec("45.00")}

	first, err := e.Evaluate(cfg, hist, dec("10.00"))
	require.NoError(t, err)
	second, err := e.Evaluate(cfg, hist, dec("10.00"))
	require.NoError(t, err)

	assert.Equal(t, first.Kind, second.Kind)
	assert.True(t, first.FinalAmount.Equal(second.FinalAmount))
	assert.True(t, first.LoyaltyReward.Equal(second.LoyaltyReward))
}
