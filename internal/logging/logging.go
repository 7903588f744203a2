// Package logging builds the zap logger shared by docflow commands.
//
// Diagnostics go to stderr in a plain console format so stdout stays reserved
// for the generated AI instruction. The level comes from the workflow
// configuration's logging key; warn is the default, keeping routine runs
// quiet apart from soft failures such as unresolved template variables.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a console logger writing to stderr at the given level.
// Unrecognized level names fall back to warn.
func New(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.WarnLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		lvl,
	)
	return zap.New(core)
}
