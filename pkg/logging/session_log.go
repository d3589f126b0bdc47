// Package logging provides the optional line-oriented diagnostic log a
// console session writes during its lifetime. It is purely for operator
// debugging and never touches the managed terminal.
package logging

import (
	"log"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// SessionLog writes timestamped diagnostic lines to a size-rotated file.
// Each session is stamped with a correlation id so interleaved runs can be
// told apart.
type SessionLog struct {
	logger *log.Logger
	sink   *lumberjack.Logger
	id     string
}

// Open creates (or appends to) the diagnostic log at path.
func Open(path string) *SessionLog {
	sink := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    15, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	l := &SessionLog{
		logger: log.New(sink, "", log.LstdFlags),
		sink:   sink,
		id:     uuid.NewString(),
	}
	l.logger.Printf("session start cid=%s", l.id)
	return l
}

// CorrelationID returns this session's id.
func (l *SessionLog) CorrelationID() string {
	return l.id
}

// Logf writes one formatted diagnostic line.
func (l *SessionLog) Logf(format string, v ...any) {
	l.logger.Printf(format, v...)
}

// Close flushes and closes the underlying file.
func (l *SessionLog) Close() error {
	l.logger.Printf("session end cid=%s", l.id)
	return l.sink.Close()
}
