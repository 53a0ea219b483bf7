package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/uzeyirrr/yenicrm-sub000/internal/backend"
	"github.com/uzeyirrr/yenicrm-sub000/internal/model"
)

type SlotRepository struct {
	client *backend.Client
}

func NewSlotRepository(client *backend.Client) *SlotRepository {
	return &SlotRepository{client: client}
}

// Create inserts a new slot record. The backend fills ID and timestamps
// back into the struct.
func (r *SlotRepository) Create(ctx context.Context, slot *model.Slot) error {
	if err := r.client.Create(ctx, CollectionSlots, slot, slot); err != nil {
		return fmt.Errorf("create slot: %w", err)
	}
	return nil
}

// GetByID fetches a slot, nil when it does not exist.
func (r *SlotRepository) GetByID(ctx context.Context, id string) (*model.Slot, error) {
	var slot model.Slot
	err := r.client.GetOne(ctx, CollectionSlots, id, backend.Query{}, &slot)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get slot by id: %w", err)
	}
	return &slot, nil
}

// ListAll fetches every slot. The backend's date filtering on this field is
// unreliable, so range narrowing happens client-side in the reconciler.
func (r *SlotRepository) ListAll(ctx context.Context) ([]*model.Slot, error) {
	var slots []*model.Slot
	err := r.client.List(ctx, CollectionSlots, backend.Query{Sort: "date,start"}, &slots)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return slots, nil
}

// Update patches the given fields on a slot.
func (r *SlotRepository) Update(ctx context.Context, id string, patch map[string]any) (*model.Slot, error) {
	var slot model.Slot
	if err := r.client.Update(ctx, CollectionSlots, id, patch, &slot); err != nil {
		return nil, fmt.Errorf("update slot: %w", err)
	}
	return &slot, nil
}

// Delete removes a slot record.
func (r *SlotRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, CollectionSlots, id); err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	return nil
}
