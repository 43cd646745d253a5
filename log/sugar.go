package log

// Loosely typed helpers for command line tools. Library code logs through
// Logger or With with typed fields.

func Debug(args ...any) { sugaredLogger.Debug(args...) }
func Info(args ...any)  { sugaredLogger.Info(args...) }
func Warn(args ...any)  { sugaredLogger.Warn(args...) }
func Error(args ...any) { sugaredLogger.Error(args...) }

// Tracef logs at debug level, but only while Trace is on.
func Tracef(format string, args ...any) {
	if Trace {
		sugaredLogger.Debugf(format, args...)
	}
}

func Infof(format string, args ...any)  { sugaredLogger.Infof(format, args...) }
func Warnf(format string, args ...any)  { sugaredLogger.Warnf(format, args...) }
func Errorf(format string, args ...any) { sugaredLogger.Errorf(format, args...) }
