// Package logger provides structured logging for fuel using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers carrying HTTP call fields.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("fuel.httpclient")
//	log.Debug("call done", logger.CallFields("GET", "https://example.com", 200))
package logger
