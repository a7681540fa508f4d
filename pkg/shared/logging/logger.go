// 指示: miu200521358
// Package logging はボーン操作の共通ロガーを提供する。
// 出力は log/slog のテキスト形式で、テスト用にメッセージバッファへも保持する。
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// LogLevel はログレベルを表す。
type LogLevel int

const (
	LOG_LEVEL_DEBUG LogLevel = iota
	LOG_LEVEL_INFO
	LOG_LEVEL_WARN
	LOG_LEVEL_ERROR
)

// String はレベル名を返す。
func (l LogLevel) String() string {
	switch l {
	case LOG_LEVEL_DEBUG:
		return "DEBUG"
	case LOG_LEVEL_INFO:
		return "INFO"
	case LOG_LEVEL_WARN:
		return "WARN"
	case LOG_LEVEL_ERROR:
		return "ERROR"
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// ParseLevel はレベル名を解析する。
func ParseLevel(name string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return LOG_LEVEL_DEBUG, nil
	case "INFO", "":
		return LOG_LEVEL_INFO, nil
	case "WARN", "WARNING":
		return LOG_LEVEL_WARN, nil
	case "ERROR":
		return LOG_LEVEL_ERROR, nil
	}
	return LOG_LEVEL_INFO, fmt.Errorf("ログレベルが不正です: %s", name)
}

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LOG_LEVEL_DEBUG:
		return slog.LevelDebug
	case LOG_LEVEL_WARN:
		return slog.LevelWarn
	case LOG_LEVEL_ERROR:
		return slog.LevelError
	}
	return slog.LevelInfo
}

// ILogger はロガーの契約を表す。
type ILogger interface {
	Debug(format string, params ...any)
	Info(format string, params ...any)
	Warn(format string, params ...any)
	Error(format string, params ...any)
	Level() LogLevel
	SetLevel(level LogLevel)
	IsEnabled(level LogLevel) bool
	MessageBuffer() *MessageBuffer
}

// Logger は slog へ出力するロガー。並行利用できる。
type Logger struct {
	logger *slog.Logger
	level  *slog.LevelVar
	buffer *MessageBuffer
}

// NewLogger はロガーを生成する。writer が nil の場合はメッセージバッファへだけ保持する。
func NewLogger(writer io.Writer) *Logger {
	if writer == nil {
		writer = io.Discard
	}
	level := &slog.LevelVar{}
	level.Set(slog.LevelInfo)
	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{Level: level})
	return &Logger{
		logger: slog.New(handler),
		level:  level,
		buffer: newMessageBuffer(),
	}
}

// Level は現在のレベルを返す。
func (l *Logger) Level() LogLevel {
	switch l.level.Level() {
	case slog.LevelDebug:
		return LOG_LEVEL_DEBUG
	case slog.LevelWarn:
		return LOG_LEVEL_WARN
	case slog.LevelError:
		return LOG_LEVEL_ERROR
	}
	return LOG_LEVEL_INFO
}

// SetLevel はレベルを設定する。
func (l *Logger) SetLevel(level LogLevel) {
	l.level.Set(level.slogLevel())
}

// IsEnabled は指定レベルが出力対象か返す。
func (l *Logger) IsEnabled(level LogLevel) bool {
	return l.logger.Enabled(context.Background(), level.slogLevel())
}

// MessageBuffer は出力済みメッセージを返す。
func (l *Logger) MessageBuffer() *MessageBuffer {
	return l.buffer
}

// Debug はDEBUGログを出力する。
func (l *Logger) Debug(format string, params ...any) {
	l.log(LOG_LEVEL_DEBUG, format, params...)
}

// Info はINFOログを出力する。
func (l *Logger) Info(format string, params ...any) {
	l.log(LOG_LEVEL_INFO, format, params...)
}

// Warn はWARNログを出力する。
func (l *Logger) Warn(format string, params ...any) {
	l.log(LOG_LEVEL_WARN, format, params...)
}

// Error はERRORログを出力する。
func (l *Logger) Error(format string, params ...any) {
	l.log(LOG_LEVEL_ERROR, format, params...)
}

func (l *Logger) log(level LogLevel, format string, params ...any) {
	if !l.IsEnabled(level) {
		return
	}
	message := format
	if len(params) > 0 {
		message = fmt.Sprintf(format, params...)
	}
	l.buffer.append(message)
	l.logger.Log(context.Background(), level.slogLevel(), message)
}

var (
	defaultMu     sync.RWMutex
	defaultLogger ILogger = NewLogger(nil)
)

// DefaultLogger は既定ロガーを返す。
func DefaultLogger() ILogger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefaultLogger は既定ロガーを差し替える。
func SetDefaultLogger(logger ILogger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}
