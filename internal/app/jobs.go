package app

import (
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shirou/gopsutil/process"
	"github.com/talkincode/inventory/internal/domain"
	"github.com/talkincode/inventory/internal/view"
	"github.com/talkincode/inventory/pkg/metrics"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, err := time.LoadLocation(a.appConfig.System.Location)
	if err != nil {
		loc = time.Local
	}
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	interval := a.appConfig.Scheduler.StatsInterval
	if interval == "" {
		interval = "@every 30s"
	}
	_, err = a.sched.AddFunc(interval, func() {
		go a.SchedStatsTask()
		go a.SchedProcessMonitorTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", a.SchedClearExpireData)
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedStatsTask records the unfiltered inventory aggregate as gauges
func (a *Application) SchedStatsTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	st := view.Aggregate(a.store.Snapshot())
	counts := st.CountByStatus()

	metrics.SetGauge(metrics.InventoryTotalValue, st.TotalValue.InexactFloat64())
	metrics.SetGauge(metrics.InventoryTotalItems, float64(st.TotalItems))
	metrics.SetGauge(metrics.InventoryInStock, float64(counts[domain.StatusInStock]))
	metrics.SetGauge(metrics.InventoryLowStock, float64(counts[domain.StatusLowStock]))
	metrics.SetGauge(metrics.InventoryOutOfStock, float64(counts[domain.StatusOutOfStock]))

	a.countsMu.Lock()
	defer a.countsMu.Unlock()
	if a.lastCounts != nil {
		for _, s := range []domain.Status{domain.StatusLowStock, domain.StatusOutOfStock} {
			if prev := a.lastCounts[s]; prev != counts[s] {
				zap.L().Warn("stock level count changed",
					zap.String("status", string(s)),
					zap.Int("previous", prev),
					zap.Int("current", counts[s]))
			}
		}
	}
	a.lastCounts = counts
}

// SchedProcessMonitorTask app process monitor
func (a *Application) SchedProcessMonitorTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	p, err := process.NewProcess(int32(os.Getpid())) //nolint:gosec // G115: PID is always within int32 range
	if err != nil {
		return
	}

	meminfo, err := p.MemoryInfo()
	if err == nil {
		metrics.SetGauge(metrics.ProcessMemUse, float64(meminfo.RSS/1024/1024))
	}
}

// SchedClearExpireData drops operation log entries past the retention window
func (a *Application) SchedClearExpireData() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()
	days := a.appConfig.Scheduler.OprLogRetentionDays
	if days <= 0 {
		days = 30
	}
	n := a.oprlogs.Prune(time.Now().AddDate(0, 0, -days))
	if n > 0 {
		zap.L().Info("pruned operation logs", zap.Int("removed", n))
	}
}
