package model

import (
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// ENTITY: MenuItem
// =====================================================
type MenuItem struct {
	ID             uuid.UUID       `json:"id"`
	RestaurantID   uuid.UUID       `json:"restaurant_id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	Available      bool            `json:"available"`
	ModifierGroups []ModifierGroup `json:"modifier_groups"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ModifierGroup bounds how many modifiers a student picks from it.
// MinSelect 0 makes the group optional; MaxSelect 0 means unbounded.
type ModifierGroup struct {
	ID         uuid.UUID  `json:"id"`
	MenuItemID uuid.UUID  `json:"menu_item_id"`
	Name       string     `json:"name"`
	MinSelect  int        `json:"min_select"`
	MaxSelect  int        `json:"max_select"`
	Modifiers  []Modifier `json:"modifiers"`
}

type Modifier struct {
	ID        uuid.UUID       `json:"id"`
	GroupID   uuid.UUID       `json:"group_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Available bool            `json:"available"`
}

// =====================================================
// CANONICAL LINE PRICING
// =====================================================

// SelectedModifier is a priced snapshot of one chosen modifier, stored
// on the order item so receipts survive later menu edits.
type SelectedModifier struct {
	ModifierID uuid.UUID       `json:"modifier_id"`
	GroupName  string          `json:"group_name"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
}

// ResolveSelections validates the chosen modifier IDs against the
// item's groups (availability, per-group min/max) and returns priced
// snapshots. Client-sent prices are never trusted; everything is
// looked up here.
func (m *MenuItem) ResolveSelections(modifierIDs []uuid.UUID) ([]SelectedModifier, error) {
	chosen := make(map[uuid.UUID]bool, len(modifierIDs))
	for _, id := range modifierIDs {
		if chosen[id] {
			return nil, NewMenuError(ErrCodeInvalidSelection, "duplicate modifier selection", ErrInvalidSelection)
		}
		chosen[id] = true
	}

	var selections []SelectedModifier
	for _, group := range m.ModifierGroups {
		count := 0
		for _, mod := range group.Modifiers {
			if !chosen[mod.ID] {
				continue
			}
			if !mod.Available {
				return nil, NewMenuError(ErrCodeModifierUnavailable, "modifier '"+mod.Name+"' is unavailable", ErrModifierUnavailable)
			}
			selections = append(selections, SelectedModifier{
				ModifierID: mod.ID,
				GroupName:  group.Name,
				Name:       mod.Name,
				Price:      mod.Price,
			})
			delete(chosen, mod.ID)
			count++
		}

		if count < group.MinSelect {
			return nil, NewMenuError(ErrCodeInvalidSelection, "group '"+group.Name+"' requires at least "+strconv.Itoa(group.MinSelect)+" selection(s)", ErrInvalidSelection)
		}
		if group.MaxSelect > 0 && count > group.MaxSelect {
			return nil, NewMenuError(ErrCodeInvalidSelection, "group '"+group.Name+"' allows at most "+strconv.Itoa(group.MaxSelect)+" selection(s)", ErrInvalidSelection)
		}
	}

	if len(chosen) > 0 {
		return nil, NewMenuError(ErrCodeModifierNotFound, "selected modifier does not belong to this item", ErrModifierNotFound)
	}

	return selections, nil
}

// LinePrice computes (unit price + sum of modifier prices) * quantity,
// rounded to 2 decimal places.
func (m *MenuItem) LinePrice(selections []SelectedModifier, quantity int) (unit, total decimal.Decimal) {
	unit = m.Price
	for _, sel := range selections {
		unit = unit.Add(sel.Price)
	}
	unit = unit.Round(2)
	total = unit.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
	return unit, total
}

// =====================================================
// REQUEST DTOs
// =====================================================

type ModifierInput struct {
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Available bool            `json:"available"`
}

type ModifierGroupInput struct {
	Name      string          `json:"name"`
	MinSelect int             `json:"min_select"`
	MaxSelect int             `json:"max_select"`
	Modifiers []ModifierInput `json:"modifiers"`
}

func (g ModifierGroupInput) Validate() error {
	if err := validation.ValidateStruct(&g,
		validation.Field(&g.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&g.MinSelect, validation.Min(0)),
		validation.Field(&g.MaxSelect, validation.Min(0)),
	); err != nil {
		return err
	}
	if g.MaxSelect > 0 && g.MinSelect > g.MaxSelect {
		return NewMenuError(ErrCodeInvalidSelection, "min_select cannot exceed max_select", ErrInvalidSelection)
	}
	if g.MinSelect > len(g.Modifiers) {
		return NewMenuError(ErrCodeInvalidSelection, "min_select cannot exceed the number of modifiers", ErrInvalidSelection)
	}
	for _, mod := range g.Modifiers {
		if err := validation.ValidateStruct(&mod,
			validation.Field(&mod.Name, validation.Required, validation.Length(1, 120)),
		); err != nil {
			return err
		}
		if mod.Price.LessThan(decimal.Zero) {
			return NewMenuError(ErrCodeInvalidSelection, "modifier price cannot be negative", ErrInvalidSelection)
		}
	}
	return nil
}

type CreateMenuItemRequest struct {
	Name           string               `json:"name" binding:"required"`
	Description    string               `json:"description"`
	Price          decimal.Decimal      `json:"price"`
	Available      bool                 `json:"available"`
	ModifierGroups []ModifierGroupInput `json:"modifier_groups"`
}

func (r CreateMenuItemRequest) Validate() error {
	if err := validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&r.Description, validation.Length(0, 500)),
	); err != nil {
		return err
	}
	if r.Price.LessThan(decimal.Zero) {
		return NewMenuError(ErrCodeInvalidSelection, "price cannot be negative", ErrInvalidSelection)
	}
	for _, group := range r.ModifierGroups {
		if err := group.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// UpdateMenuItemRequest replaces the item and its modifier groups
// wholesale. Existing orders keep their snapshots.
type UpdateMenuItemRequest = CreateMenuItemRequest
