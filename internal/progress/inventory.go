package progress

import (
	"context"
	"fmt"

	"github.com/meltforce/fitquest/internal/kv"
	"github.com/meltforce/fitquest/internal/models"
	"github.com/meltforce/fitquest/internal/observability"
)

// GetInventory returns the owned items in acquisition order.
func (m *Manager) GetInventory(ctx context.Context) []models.InventoryItem {
	return kv.Get(ctx, m.store, kv.InventoryKey, []models.InventoryItem{})
}

// Owns reports whether itemID is in the inventory.
func (m *Manager) Owns(ctx context.Context, itemID string) bool {
	for _, it := range m.GetInventory(ctx) {
		if it.ItemID == itemID {
			return true
		}
	}
	return false
}

// BuyItem spends coins on a store item. It returns false with no state
// change when there is no profile, the item is unknown or already owned, or
// the balance is short of the cost.
func (m *Manager) BuyItem(ctx context.Context, itemID string) (bool, error) {
	p := m.GetProfile(ctx)
	if p == nil {
		observability.RecordPurchase("no_profile", 0)
		return false, nil
	}
	item, ok := m.catalog.StoreItem(itemID)
	if !ok {
		observability.RecordPurchase("unknown_item", 0)
		return false, nil
	}
	inventory := m.GetInventory(ctx)
	for _, it := range inventory {
		if it.ItemID == itemID {
			observability.RecordPurchase("owned", 0)
			return false, nil
		}
	}
	if p.Coins < item.Cost {
		m.log.Info("purchase rejected, insufficient coins", "item", itemID, "cost", item.Cost, "coins", p.Coins)
		observability.RecordPurchase("insufficient_funds", 0)
		return false, nil
	}

	before := *p
	p.Coins -= item.Cost
	if err := m.SaveProfile(ctx, *p); err != nil {
		return false, err
	}
	inventory = append(inventory, models.InventoryItem{ItemID: itemID, AcquiredAt: m.now()})
	if err := m.store.Set(ctx, kv.InventoryKey, inventory); err != nil {
		// Refund the coins.
		if rerr := m.SaveProfile(ctx, before); rerr != nil {
			m.log.Error("refund after failed purchase", "item", itemID, "error", rerr)
		}
		return false, fmt.Errorf("saving inventory: %w", err)
	}

	m.log.Info("item purchased", "item", itemID, "cost", item.Cost, "coins_left", p.Coins)
	observability.RecordPurchase("ok", item.Cost)
	return true, nil
}

// EquipItem sets the equipped skin to the item's preview. It is a no-op
// (false) unless there is a profile and the item exists and is a skin.
func (m *Manager) EquipItem(ctx context.Context, itemID string) (bool, error) {
	item, ok := m.catalog.StoreItem(itemID)
	if !ok || item.Type != models.ItemSkin {
		return false, nil
	}
	p := m.GetProfile(ctx)
	if p == nil {
		return false, nil
	}
	p.EquippedSkin = item.Preview
	if err := m.SaveProfile(ctx, *p); err != nil {
		return false, err
	}
	return true, nil
}
