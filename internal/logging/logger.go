package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level represents the logging level.
type Level int

const (
	LevelSilent Level = iota
	LevelError
	LevelInfo
	LevelVerbose
	LevelDebug
)

var levelNames = map[string]Level{
	"silent":  LevelSilent,
	"error":   LevelError,
	"info":    LevelInfo,
	"verbose": LevelVerbose,
	"debug":   LevelDebug,
}

// ParseLevel maps a flag value to a Level.
func ParseLevel(name string) (Level, error) {
	level, ok := levelNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return LevelInfo, fmt.Errorf("unknown log level %q (want silent, error, info, verbose or debug)", name)
	}
	return level, nil
}

func (level Level) String() string {
	for name, candidate := range levelNames {
		if candidate == level {
			return name
		}
	}
	return fmt.Sprintf("level(%d)", int(level))
}

// Logger writes leveled messages to stderr and, optionally, a log file.
type Logger struct {
	mu      sync.Mutex
	level   Level
	file    *os.File
	fileLog *log.Logger
	console *log.Logger
}

// New creates a logger. An empty logFile disables file output.
func New(level Level, logFile string) (*Logger, error) {
	logger := &Logger{
		level:   level,
		console: log.New(os.Stderr, "", log.LstdFlags),
	}

	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		logger.file = file
		logger.fileLog = log.New(file, "", log.LstdFlags)
	}

	return logger, nil
}

// NewWriter creates a logger printing to writer only.
func NewWriter(level Level, writer io.Writer) *Logger {
	return &Logger{
		level:   level,
		console: log.New(writer, "", 0),
	}
}

// Discard returns a logger that drops every message.
func Discard() *Logger {
	return NewWriter(LevelSilent, io.Discard)
}

// Close closes the log file, if any.
func (logger *Logger) Close() error {
	logger.mu.Lock()
	defer logger.mu.Unlock()

	if logger.file != nil {
		err := logger.file.Close()
		logger.file = nil
		logger.fileLog = nil
		return err
	}
	return nil
}

// Error logs an error message.
func (logger *Logger) Error(format string, v ...interface{}) {
	logger.write(LevelError, "ERROR: ", format, v...)
}

// Info logs an info message.
func (logger *Logger) Info(format string, v ...interface{}) {
	logger.write(LevelInfo, "INFO: ", format, v...)
}

// Verbose logs a verbose message.
func (logger *Logger) Verbose(format string, v ...interface{}) {
	logger.write(LevelVerbose, "VERBOSE: ", format, v...)
}

// Debug logs a debug message.
func (logger *Logger) Debug(format string, v ...interface{}) {
	logger.write(LevelDebug, "DEBUG: ", format, v...)
}

// SetLevel sets the logging level.
func (logger *Logger) SetLevel(level Level) {
	logger.mu.Lock()
	defer logger.mu.Unlock()
	logger.level = level
}

// Level returns the current logging level.
func (logger *Logger) Level() Level {
	logger.mu.Lock()
	defer logger.mu.Unlock()
	return logger.level
}

// SetConsole redirects console output, e.g. away from a terminal UI.
func (logger *Logger) SetConsole(writer io.Writer) {
	logger.mu.Lock()
	defer logger.mu.Unlock()
	logger.console = log.New(writer, "", log.LstdFlags)
}

func (logger *Logger) write(level Level, prefix, format string, v ...interface{}) {
	if logger == nil {
		return
	}
	logger.mu.Lock()
	defer logger.mu.Unlock()

	if logger.level < level {
		return
	}
	msg := prefix + fmt.Sprintf(format, v...)
	if logger.fileLog != nil {
		logger.fileLog.Println(msg)
	}
	logger.console.Println(msg)
}
