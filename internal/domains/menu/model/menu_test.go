package model

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func burrito() *MenuItem {
	proteinGroup := uuid.New()
	extrasGroup := uuid.New()
	return &MenuItem{
		ID:        uuid.New(),
		Name:      "Burrito",
		Price:     dec("9.50"),
		Available: true,
		ModifierGroups: []ModifierGroup{
			{
				ID:        proteinGroup,
				Name:      "Protein",
				MinSelect: 1,
				MaxSelect: 1,
				Modifiers: []Modifier{
					{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), GroupID: proteinGroup, Name: "Chicken", Price: dec("0.00"), Available: true},
					{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), GroupID: proteinGroup, Name: "Steak", Price: dec("2.00"), Available: true},
				},
			},
			{
				ID:        extrasGroup,
				Name:      "Extras",
				MinSelect: 0,
				MaxSelect: 2,
				Modifiers: []Modifier{
					{ID: uuid.MustParse("33333333-3333-3333-3333-333333333333"), GroupID: extrasGroup, Name: "Guacamole", Price: dec("1.50"), Available: true},
					{ID: uuid.MustParse("44444444-4444-4444-4444-444444444444"), GroupID: extrasGroup, Name: "Queso", Price: dec("1.00"), Available: true},
					{ID: uuid.MustParse("55555555-5555-5555-5555-555555555555"), GroupID: extrasGroup, Name: "Truffle", Price: dec("3.00"), Available: false},
				},
			},
		},
	}
}

func TestResolveSelections_PricedSnapshot(t *testing.T) {
	item := burrito()

	selections, err := item.ResolveSelections([]uuid.UUID{
		uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		uuid.MustParse("33333333-3333-3333-3333-333333333333"),
	})
	require.NoError(t, err)
	require.Len(t, selections, 2)

	assert.Equal(t, "Steak", selections[0].Name)
	assert.Equal(t, "Protein", selections[0].GroupName)
	assert.True(t, selections[0].Price.Equal(dec("2.00")))
	assert.Equal(t, "Guacamole", selections[1].Name)
}

func TestResolveSelections_MinSelectEnforced(t *testing.T) {
	item := burrito()

	// No protein chosen but the group requires one.
	_, err := item.ResolveSelections([]uuid.UUID{
		uuid.MustParse("33333333-3333-3333-3333-333333333333"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSelection))
}

func TestResolveSelections_MaxSelectEnforced(t *testing.T) {
	item := burrito()
	// Allow a third available extra so the cap itself is what trips.
	item.ModifierGroups[1].Modifiers[2].Available = true

	_, err := item.ResolveSelections([]uuid.UUID{
		uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		uuid.MustParse("33333333-3333-3333-3333-333333333333"),
		uuid.MustParse("44444444-4444-4444-4444-444444444444"),
		uuid.MustParse("55555555-5555-5555-5555-555555555555"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSelection))
}

func TestResolveSelections_UnavailableModifierRejected(t *testing.T) {
	item := burrito()

	_, err := item.ResolveSelections([]uuid.UUID{
		uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		uuid.MustParse("55555555-5555-5555-5555-555555555555"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrModifierUnavailable))
}

func TestResolveSelections_ForeignModifierRejected(t *testing.T) {
	item := burrito()

	_, err := item.ResolveSelections([]uuid.UUID{
		uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		uuid.New(), // not on this item
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrModifierNotFound))
}

func TestResolveSelections_DuplicateRejected(t *testing.T) {
	item := burrito()

	_, err := item.ResolveSelections([]uuid.UUID{
		uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		uuid.MustParse("11111111-1111-1111-1111-111111111111"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSelection))
}

func TestLinePrice_UnitPlusModifiersTimesQuantity(t *testing.T) {
	item := burrito()

	selections, err := item.ResolveSelections([]uuid.UUID{
		uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		uuid.MustParse("33333333-3333-3333-3333-333333333333"),
	})
	require.NoError(t, err)

	unit, total := item.LinePrice(selections, 3)
	// 9.50 + 2.00 + 1.50 = 13.00 per unit, 39.00 for three.
	assert.True(t, unit.Equal(dec("13.00")), "unit = %s", unit)
	assert.True(t, total.Equal(dec("39.00")), "total = %s", total)
}

func TestLinePrice_NoModifiers(t *testing.T) {
	item := burrito()

	unit, total := item.LinePrice(nil, 2)
	assert.True(t, unit.Equal(dec("9.50")))
	assert.True(t, total.Equal(dec("19.00")))
}

func TestModifierGroupInput_MinExceedsMax(t *testing.T) {
	group := ModifierGroupInput{
		Name:      "Protein",
		MinSelect: 3,
		MaxSelect: 1,
		Modifiers: []ModifierInput{{Name: "Chicken"}, {Name: "Steak"}, {Name: "Tofu"}},
	}

	err := group.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSelection))
}
