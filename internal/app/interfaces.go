package app

import (
	"github.com/robfig/cron/v3"
	"github.com/talkincode/inventory/config"
	"github.com/talkincode/inventory/internal/inventory"
	"github.com/talkincode/inventory/internal/view"
)

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// StoreProvider provides the inventory collection
type StoreProvider interface {
	Store() *inventory.Store
}

// WorkspaceProvider provides the per-session view state
type WorkspaceProvider interface {
	Workspaces() *view.Workspaces
}

// OprLogProvider provides the operation log
type OprLogProvider interface {
	OprLogs() *AuditLog
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// AppContext combines all provider interfaces for full application context
// Services should depend on specific providers or this combined interface
type AppContext interface {
	ConfigProvider
	StoreProvider
	WorkspaceProvider
	OprLogProvider
	SchedulerProvider

	// Authenticate checks a username and password against the configured account
	Authenticate(username, password string) bool
}
