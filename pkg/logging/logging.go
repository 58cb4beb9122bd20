// Package logging owns the process-wide zap logger used by megasrc.
package logging

import (
	"go.uber.org/zap"
)

// Logger receives the run's diagnostics. It discards everything until Setup
// has run, so library code can log before the command line is parsed.
var Logger = zap.NewNop()

// Setup builds the global logger. Debug selects the development config,
// which logs at debug level in a console format.
func Setup(debug bool, appName, appVersion string) error {
	var err error
	var cfg zap.Config

	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}

	// Add default fields
	cfg.InitialFields = map[string]interface{}{
		"appName":    appName,
		"appVersion": appVersion,
	}

	Logger, err = cfg.Build()
	if err != nil {
		Logger = zap.NewExample()
		return err
	}

	zap.ReplaceGlobals(Logger)
	return nil
}
