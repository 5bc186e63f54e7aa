package kit

import "go.uber.org/zap"

func NewLogger(component string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.InitialFields = map[string]any{"component": component}
	l, _ := cfg.Build()
	return l
}
