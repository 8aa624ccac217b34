package models

import "time"

// UserAchievement records that an achievement was unlocked.
type UserAchievement struct {
	ID         string    `json:"id"`
	UnlockedAt time.Time `json:"unlockedAt"`
}

// ItemType is the kind of cosmetic store item.
type ItemType string

const (
	ItemSkin  ItemType = "skin"
	ItemBadge ItemType = "badge"
	ItemTitle ItemType = "title"
)

// StoreItem is a catalog item purchasable with coins.
type StoreItem struct {
	ID      string   `json:"id" yaml:"id"`
	Name    string   `json:"name" yaml:"name"`
	Type    ItemType `json:"type" yaml:"type"`
	Cost    int      `json:"cost" yaml:"cost"`
	Preview string   `json:"preview" yaml:"preview"`
}

// InventoryItem records ownership of a store item.
type InventoryItem struct {
	ItemID     string    `json:"itemId"`
	AcquiredAt time.Time `json:"acquiredAt"`
}
