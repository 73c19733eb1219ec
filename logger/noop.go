package logger

import "time"

// NopLogger discards all log events. It is the default logger for clients
// constructed without one and is handy in tests.
type NopLogger struct{}

var _ Logger = NopLogger{}

// Nop returns a logger that discards everything.
func Nop() Logger { return NopLogger{} }

func (NopLogger) Info() LogEvent                   { return nopEvent{} }
func (NopLogger) Error() LogEvent                  { return nopEvent{} }
func (NopLogger) Debug() LogEvent                  { return nopEvent{} }
func (NopLogger) Warn() LogEvent                   { return nopEvent{} }
func (NopLogger) WithFields(map[string]any) Logger { return NopLogger{} }

type nopEvent struct{}

func (nopEvent) Msg(string)                         {}
func (nopEvent) Msgf(string, ...any)                {}
func (nopEvent) Err(error) LogEvent                 { return nopEvent{} }
func (nopEvent) Str(string, string) LogEvent        { return nopEvent{} }
func (nopEvent) Int(string, int) LogEvent           { return nopEvent{} }
func (nopEvent) Int64(string, int64) LogEvent       { return nopEvent{} }
func (nopEvent) Dur(string, time.Duration) LogEvent { return nopEvent{} }
func (nopEvent) Interface(string, any) LogEvent     { return nopEvent{} }
