package global

import (
	"sync"

	"tigerwm/pkg/config"
	"tigerwm/pkg/logger"
	"tigerwm/pkg/notify"
)

var (
	cfg      *config.Config
	log      *logger.Logger
	notifier *notify.NotifyService
	initOnce sync.Once
	mu       sync.RWMutex
)

func InitGlobals(config *config.Config, logger *logger.Logger) {
	initOnce.Do(func() {
		mu.Lock()
		defer mu.Unlock()
		cfg = config
		log = logger
		notifier = notify.NewNotifyService(config.GetNotifyCommand(), logger)
	})
}

// GetConfig returns the global config instance
func GetConfig() *config.Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// GetLogger returns the global logger instance, or a discarding logger
// before InitGlobals has run.
func GetLogger() *logger.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if log == nil {
		return logger.Nop()
	}
	return log
}

// GetNotifier returns the global notifier instance
func GetNotifier() *notify.NotifyService {
	mu.RLock()
	defer mu.RUnlock()
	return notifier
}

// GetAll returns all global instances at once.
func GetAll() (*config.Config, *logger.Logger) {
	return GetConfig(), GetLogger()
}
