package logger

import "sync"

// Names of the component loggers used across the module.
const (
	ComponentApp        = "airlinerank"
	ComponentObservable = "observable"
	ComponentDatasource = "datasource"
	ComponentRanking    = "ranking"
	ComponentCatalog    = "catalog"
	ComponentLifecycle  = "component"
)

// DefaultComponents is what RegisterDefaults seeds when called without names.
var DefaultComponents = []string{
	ComponentApp,
	ComponentObservable,
	ComponentDatasource,
	ComponentRanking,
	ComponentCatalog,
	ComponentLifecycle,
}

var (
	namedMu sync.RWMutex
	named   = map[string]*Logger{}
)

// Register stores l under name, replacing any previous logger.
func Register(name string, l *Logger) {
	namedMu.Lock()
	named[name] = l
	namedMu.Unlock()
}

// Get returns the logger registered under name. Unregistered names get the
// global logger tagged with the name, so packages can log before Init.
func Get(name string) *Logger {
	namedMu.RLock()
	l, ok := named[name]
	namedMu.RUnlock()
	if ok {
		return l
	}
	return GetGlobalLogger().WithComponent(name)
}

// RegisterDefaults derives one component logger per name from the global
// logger, DefaultComponents when names is empty. Call it after Init so the
// loggers pick up the configured level and format.
func RegisterDefaults(names ...string) {
	if len(names) == 0 {
		names = DefaultComponents
	}
	global := GetGlobalLogger()
	namedMu.Lock()
	defer namedMu.Unlock()
	for _, name := range names {
		named[name] = global.WithComponent(name)
	}
}

func registered(name string) bool {
	namedMu.RLock()
	defer namedMu.RUnlock()
	_, ok := named[name]
	return ok
}
