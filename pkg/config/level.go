package config

import (
	"fmt"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

var levels = map[string]hlog.Level{
	"trace":  hlog.LevelTrace,
	"debug":  hlog.LevelDebug,
	"info":   hlog.LevelInfo,
	"notice": hlog.LevelNotice,
	"warn":   hlog.LevelWarn,
	"error":  hlog.LevelError,
	"fatal":  hlog.LevelFatal,
}

// HlogLevel maps the configured level name to an hlog level. An empty name
// means info.
func (l LogConfig) HlogLevel() (hlog.Level, error) {
	name := strings.ToLower(strings.TrimSpace(l.Level))
	if name == "" {
		return hlog.LevelInfo, nil
	}
	if name == "warning" {
		name = "warn"
	}
	level, ok := levels[name]
	if !ok {
		return hlog.LevelInfo, fmt.Errorf("config: unknown log level %q", l.Level)
	}
	return level, nil
}
