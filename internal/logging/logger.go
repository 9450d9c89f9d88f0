// Package logging builds the zerolog loggers used across the module.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

const (
	FieldComponent = "component"
	FieldTxHash    = "txHash"
	FieldSender    = "sender"
	FieldContract  = "contract"
	FieldMethod    = "method"
	FieldStatus    = "status"
	FieldGasBurnt  = "gasBurnt"
	FieldReceipts  = "receipts"
	FieldDuration  = "duration"
	FieldAddr      = "addr"
)

// SetupGlobalLevel parses level and applies it globally.
func SetupGlobalLevel(level string) error {
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(l)
	return nil
}

// SetLevelFromEnv applies LOG_LEVEL, defaulting to info.
func SetLevelFromEnv() {
	lvl, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// NewLogger returns a console logger tagged with component.
func NewLogger(component string) zerolog.Logger {
	noColor := os.Getenv("NO_COLOR") != ""
	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.DateTime,
		PartsOrder: []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			FieldComponent,
			zerolog.MessageFieldName,
		},
		FieldsExclude: []string{FieldComponent},
		NoColor:       noColor,
	}
	return NewLoggerWithWriter(component, writer)
}

// NewLoggerWithWriter returns a JSON logger tagged with component
// that writes to w.
func NewLoggerWithWriter(component string, w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().
		Str(FieldComponent, component).
		Timestamp().
		Logger()
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
