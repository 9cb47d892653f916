// Package logging provides structured logging using uber/zap.
//
// Two modes, switched by configuration:
//   - Production: JSON output for machine parsing
//   - Development: colored console output for humans
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("Bridge listening", zap.String("port", "9160"))
//	logger.Error("Plugin registration failed", zap.Error(err))
package logging
