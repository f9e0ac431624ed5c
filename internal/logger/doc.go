// Package logger wraps zap for the vibration monitor.
//
// A global sugared logger with a console encoder is created at init time.
// Services carry a named logger in their context (WithName, WithKV) and log
// through the package helpers, so tests can swap the sink with ToContext.
package logger
