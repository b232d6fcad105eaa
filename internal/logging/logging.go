package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/emptrack/emptrack/internal/config"
)

const DefaultLogFilePath = "emptrack.log"

// InteractiveConsoleLevel is the console threshold while the menu owns the
// terminal. Store failures are logged at warn and reach only the file.
const InteractiveConsoleLevel = zerolog.ErrorLevel

// Options controls where log lines go.
type Options struct {
	// Level is the global level: trace, debug, info or warn.
	Level string
	// ConsoleLevel is the minimum level echoed to the console. The file
	// always receives every enabled level.
	ConsoleLevel zerolog.Level
	// Console is the console destination, os.Stderr when nil.
	Console io.Writer
	// FilePath is the rotating log file; empty uses DefaultLogFilePath.
	FilePath string
	Rotation config.LogRotation
}

// Apply sets the global log level and output writers (console + rotating file)
// and returns the session id stamped on every line of this run.
func Apply(opts Options) string {
	applyLevel(opts.Level)
	session := uuid.NewString()
	log.Logger = zerolog.New(buildWriter(opts)).With().Timestamp().Str("session", session).Logger()
	return session
}

func applyLevel(level string) {
	switch level {
	case "trace":
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func buildWriter(opts Options) zerolog.LevelWriter {
	out := opts.Console
	if out == nil {
		out = os.Stderr
	}
	consoleOutput := &zerolog.FilteredLevelWriter{
		Writer: zerolog.LevelWriterAdapter{Writer: zerolog.ConsoleWriter{Out: out, TimeFormat: "2006-01-02 15:04:05"}},
		Level:  opts.ConsoleLevel,
	}

	path := opts.FilePath
	if path == "" {
		path = DefaultLogFilePath
	}
	if err := ensureLogDir(path); err != nil {
		l := zerolog.New(consoleOutput).With().Timestamp().Logger()
		l.Error().Err(err).Str("path", path).Msg("Failed to prepare log directory; logging to console only")
		return zerolog.MultiLevelWriter(consoleOutput)
	}

	fileWriter := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    opts.Rotation.MaxSizeMB,
		MaxBackups: opts.Rotation.MaxBackups,
		MaxAge:     opts.Rotation.MaxAgeDays,
		Compress:   opts.Rotation.Compress,
	}

	fileConsole := zerolog.ConsoleWriter{
		Out:        fileWriter,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}

	return zerolog.MultiLevelWriter(consoleOutput, fileConsole)
}

// FilePathForDB returns a log file path that lives alongside a SQLite database file.
func FilePathForDB(dbPath string) string {
	if dbPath == "" {
		return DefaultLogFilePath
	}
	absDBPath, err := filepath.Abs(dbPath)
	if err != nil {
		return filepath.Join(filepath.Dir(dbPath), DefaultLogFilePath)
	}
	return filepath.Join(filepath.Dir(absDBPath), DefaultLogFilePath)
}

func ensureLogDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
