package logging

type Logger interface {
	Init()

	Debug(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any)
	Debugf(template string, args ...any)

	Info(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any)
	Infof(template string, args ...any)

	Warn(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any)
	Warnf(template string, args ...any)

	Error(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any)
	Errorf(template string, args ...any)
}

type LoggerConfig struct {
	FilePath   string
	Level      string
	MaxSizeMB  int
	MaxBackups int
}

func NewLogger(cfg *LoggerConfig) Logger {
	return newZapLogger(cfg)
}
