package logger

import (
	"go.uber.org/zap"
)

// Log — глобальный логгер приложения. До Initialize является no-op,
// чтобы пакеты могли логировать без проверок на nil.
var Log *zap.Logger = zap.NewNop()

// Initialize настраивает Log на заданный уровень.
func Initialize(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	zl, err := cfg.Build()
	if err != nil {
		return err
	}

	Log = zl
	return nil
}
