package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// NewJSONLogger creates a logger writing to writer at the given level.
func NewJSONLogger(writer io.Writer, level Level) *JSONLogger {
	return &JSONLogger{
		out:   &syncWriter{w: writer},
		level: level,
	}
}

// NewLogger creates a JSON logger at the level named by levelStr; unknown
// names fall back to INFO.
func NewLogger(writer io.Writer, levelStr string) *JSONLogger {
	return NewJSONLogger(writer, ParseLevel(levelStr))
}

func (l *JSONLogger) log(level Level, msg string, fields ...Field) {
	l.mu.Lock()
	threshold, preset := l.level, l.fields
	l.mu.Unlock()
	if level < threshold {
		return
	}

	entry := make(map[string]any, 3+len(preset)+len(fields))
	// later fields win, so call-site fields override With fields
	for _, f := range preset {
		entry[fieldKey(f.Key)] = f.Value
	}
	for _, f := range fields {
		entry[fieldKey(f.Key)] = f.Value
	}
	entry[TimeKey] = time.Now().UTC().Format(time.RFC3339Nano)
	entry[LevelKey] = level.String()
	entry[MessageKey] = msg

	data, err := json.Marshal(entry)
	if err != nil {
		data = []byte(fmt.Sprintf(`{"%s":%q,"%s":"ERROR","%s":"unencodable log entry: %s"}`,
			TimeKey, time.Now().UTC().Format(time.RFC3339Nano), LevelKey, MessageKey, err))
	}
	data = append(data, '\n')

	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	l.out.w.Write(data)
}

func fieldKey(key string) string {
	switch key {
	case TimeKey, LevelKey, MessageKey:
		return "field." + key
	}
	return key
}

func (l *JSONLogger) Debug(msg string, fields ...Field) { l.log(DebugLevel, msg, fields...) }
func (l *JSONLogger) Info(msg string, fields ...Field)  { l.log(InfoLevel, msg, fields...) }
func (l *JSONLogger) Warn(msg string, fields ...Field)  { l.log(WarnLevel, msg, fields...) }
func (l *JSONLogger) Error(msg string, fields ...Field) { l.log(ErrorLevel, msg, fields...) }

// With creates a child logger with the given fields pre-set. The child
// shares the parent's writer but has its own level.
func (l *JSONLogger) With(fields ...Field) Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	newFields := make([]Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)

	return &JSONLogger{
		out:    l.out,
		level:  l.level,
		fields: newFields,
	}
}

// SetLevel sets the minimum log level
func (l *JSONLogger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// GetLevel returns the current log level
func (l *JSONLogger) GetLevel() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// StartTimer begins timing an operation
func StartTimer(logger Logger, msg string, fields ...Field) *TimedOperation {
	return &TimedOperation{
		logger: logger,
		msg:    msg,
		start:  time.Now(),
		fields: fields,
	}
}

// End logs the operation at INFO with its latency and any extra fields.
func (t *TimedOperation) End(extra ...Field) {
	t.logger.Info(t.msg, t.with(extra, Latency(time.Since(t.start)))...)
}

// EndError logs the operation as an error with its latency.
func (t *TimedOperation) EndError(err error) {
	t.logger.Error(t.msg, t.with(nil, Latency(time.Since(t.start)), Error(err))...)
}

func (t *TimedOperation) with(extra []Field, tail ...Field) []Field {
	out := make([]Field, 0, len(t.fields)+len(extra)+len(tail))
	out = append(out, t.fields...)
	out = append(out, extra...)
	return append(out, tail...)
}
