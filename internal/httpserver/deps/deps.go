package deps

import (
	"time"

	"github.com/alarmbridge/alarmbridge/internal/logger"
	"github.com/alarmbridge/alarmbridge/internal/scheduler"
	redisstore "github.com/alarmbridge/alarmbridge/internal/store/redis"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	// Coordinators keyed by account-context id (or the account label for an
	// unscoped context). The set is fixed at startup.
	Coordinators map[string]*scheduler.Coordinator
	// Order preserves the configured listing order of the coordinator keys.
	Order []string

	Store *redisstore.Store // nil when the Redis warm cache is disabled
}
