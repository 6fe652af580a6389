// Package logger provides structured logging for airlinerank using zerolog.
//
// It supports JSON and console output, level configuration and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get(logger.ComponentRanking)
//	log.Info("cycle finished", logger.Fields("origin", "AMS", "airlines", 12))
package logger
