package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where diagnostics go and how verbose they are
type Options struct {
	// Level is a zerolog level name ("debug", "info", "warn", ...). Unknown values mean info.
	Level string
	// File, when set, receives a JSON copy of every record, rotated by lumberjack.
	File string
}

// New builds a console logger writing to out.
func New(out io.Writer, opts Options) zerolog.Logger {
	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var w io.Writer = zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.DateTime,
		NoColor:    true,
	}
	if opts.File != "" {
		w = zerolog.MultiLevelWriter(w, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    5,
			MaxAge:     3,
			MaxBackups: 3,
		})
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()
}
