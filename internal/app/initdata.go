package app

import (
	"os"

	"github.com/pkg/errors"
	"github.com/talkincode/inventory/config"
	"github.com/talkincode/inventory/internal/inventory"
	"github.com/talkincode/inventory/pkg/common"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// checkAuth installs a hash of the default password when none is configured
func (a *Application) checkAuth() {
	if a.appConfig.Auth.PasswordHash != "" {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(config.DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		zap.L().Error("failed to hash default password", zap.Error(err))
		return
	}
	a.appConfig.Auth.PasswordHash = string(hash)
	zap.L().Warn("auth.password_hash is empty, the default password is active",
		zap.String("username", a.appConfig.Auth.Username))
}

func (a *Application) checkItems() {
	n, err := a.LoadItems()
	if err != nil {
		zap.L().Error("failed to load inventory seed", zap.Error(err))
		return
	}
	zap.L().Info("inventory loaded", zap.Int("items", n))
}

// LoadItems seeds the store from the seed file when configured, otherwise
// from the built-in records when seed_defaults is on.
func (a *Application) LoadItems() (int, error) {
	cfg := a.appConfig.Inventory
	if cfg.SeedFile != "" {
		if !common.FileExists(cfg.SeedFile) {
			return 0, errors.Errorf("seed file %s does not exist", cfg.SeedFile)
		}
		f, err := os.Open(cfg.SeedFile)
		if err != nil {
			return 0, errors.Wrap(err, "open seed file")
		}
		defer f.Close()
		items, err := inventory.ReadSeedCSV(f)
		if err != nil {
			return 0, errors.Wrapf(err, "read seed file %s", cfg.SeedFile)
		}
		a.store.Load(items)
		return len(items), nil
	}
	if cfg.SeedDefaults {
		a.store.Load(inventory.DefaultItems())
	}
	return a.store.Len(), nil
}
