package tui

import (
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/engine/query"
)

// MsgSummary carries a new state of the stock summary query.
type MsgSummary struct {
	Snapshot query.Snapshot[*domain.InventorySummary]
}

// MsgStock carries a new state of the stock list query.
type MsgStock struct {
	Snapshot query.Snapshot[*domain.Page[domain.InventoryItem]]
}

type msgTick struct{}
