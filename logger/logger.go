package logger

import (
	"io"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
)

// Log is the process logger. It discards output until Init is called so
// packages and tests can log without setup.
var Log = newDiscard()

// Options selects the level and output format of the process logger.
type Options struct {
	Level  string `env:"LOG_LEVEL"  envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

func newDiscard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Init configures Log from LOG_LEVEL and LOG_FORMAT ("json" or text).
func Init() {
	var opts Options
	if err := env.Parse(&opts); err != nil {
		opts = Options{Level: "info", Format: "text"}
	}
	Log = New(opts, os.Stdout)
}

// New builds a logger writing to out. Unknown levels fall back to info.
func New(opts Options, out io.Writer) *logrus.Logger {
	l := logrus.New()

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if strings.EqualFold(opts.Format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}
	l.SetOutput(out)
	return l
}

// SetDebug lowers the level to debug, as the -debug flag does.
func SetDebug() {
	Log.SetLevel(logrus.DebugLevel)
}
