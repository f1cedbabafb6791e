package app

import (
	"crypto/subtle"
	"os"
	"sync"
	"time"
	_ "time/tzdata"

	EventBus "github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"
	"github.com/talkincode/inventory/config"
	"github.com/talkincode/inventory/internal/domain"
	"github.com/talkincode/inventory/internal/inventory"
	"github.com/talkincode/inventory/internal/view"
	"github.com/talkincode/inventory/pkg/metrics"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Application struct {
	appConfig  *config.AppConfig
	bus        EventBus.Bus
	store      *inventory.Store
	workspaces *view.Workspaces
	oprlogs    *AuditLog
	sched      *cron.Cron

	countsMu   sync.Mutex
	lastCounts map[domain.Status]int
}

// Ensure Application implements all interfaces
var (
	_ ConfigProvider    = (*Application)(nil)
	_ StoreProvider     = (*Application)(nil)
	_ WorkspaceProvider = (*Application)(nil)
	_ OprLogProvider    = (*Application)(nil)
	_ SchedulerProvider = (*Application)(nil)
	_ AppContext        = (*Application)(nil)
)

// NewApplication wires the store, event bus and view workspaces. The store
// starts empty; Init seeds it.
func NewApplication(appConfig *config.AppConfig) *Application {
	a := &Application{
		appConfig: appConfig,
		bus:       EventBus.New(),
		oprlogs:   NewAuditLog(appConfig.Scheduler.OprLogCapacity),
	}
	a.store = inventory.NewStore(a.bus)
	a.workspaces = view.NewWorkspaces(a.store)
	if err := inventory.SubscribeAll(a.bus, a.onStoreEvent); err != nil {
		zap.S().Errorf("subscribe store events error %s", err.Error())
	}
	return a
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) Store() *inventory.Store {
	return a.store
}

func (a *Application) Workspaces() *view.Workspaces {
	return a.workspaces
}

func (a *Application) OprLogs() *AuditLog {
	return a.oprlogs
}

// Scheduler returns the cron scheduler, nil until Init starts it
func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

func (a *Application) Init(cfg *config.AppConfig) {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	// Initialize zap logger
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	// Build logger with file rotation if enabled
	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller())
	} else {
		logger, err = zapConfig.Build(zap.AddCaller())
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)

	if err := metrics.InitMetrics(); err != nil {
		zap.S().Warn("Failed to initialize metrics:", err)
	}

	a.checkAuth()
	a.checkItems()

	if cfg.Scheduler.Enabled {
		a.initJob()
	}
}

// Authenticate checks username and password against the auth section
func (a *Application) Authenticate(username, password string) bool {
	auth := a.appConfig.Auth
	if auth.PasswordHash == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(auth.Username)) == 1
	passOK := bcrypt.CompareHashAndPassword([]byte(auth.PasswordHash), []byte(password)) == nil
	return userOK && passOK
}

// onStoreEvent runs synchronously on the publishing goroutine
func (a *Application) onStoreEvent(ev domain.StoreEvent) {
	a.oprlogs.Append(domain.OprLog{
		OprName:   ev.Operator,
		OptAction: ev.Action,
		ItemID:    ev.Item.ID,
		OptDesc:   describe(ev),
		OptTime:   ev.At,
	})
	zap.L().Info("inventory changed",
		zap.String("action", ev.Action),
		zap.Int64("id", ev.Item.ID),
		zap.String("name", ev.Item.Name),
		zap.String("status", string(ev.Item.Status)),
		zap.String("operator", ev.Operator))
	a.workspaces.Refresh()
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	_ = metrics.Close()
	_ = zap.L().Sync()
}
