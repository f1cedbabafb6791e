package domain

import "time"

// Operation log actions
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionLogin  = "login"
	ActionLogout = "logout"
)

// OprLog records one operator action against the inventory
type OprLog struct {
	ID        int64     `json:"id,string"`
	OprName   string    `json:"opr_name"`
	OptAction string    `json:"opt_action"`
	ItemID    int64     `json:"item_id,omitempty"`
	OptDesc   string    `json:"opt_desc"`
	OptTime   time.Time `json:"opt_time"`
}

// StoreEvent is published on the event bus after every store mutation
type StoreEvent struct {
	Action      string
	Item        InventoryItem
	Previous    *InventoryItem // set on update
	NewCategory bool           // Item.Category was not known before
	Operator    string
	At          time.Time
}
