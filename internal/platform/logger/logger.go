package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ogurasousui/codex-grpc-employee-comp/internal/platform/config"
	"github.com/rs/zerolog"
)

// New は設定に従って zerolog.Logger を構築します。w が nil の場合は標準出力へ書き込みます。
func New(cfg config.LogConfig, w io.Writer) (zerolog.Logger, error) {
	if w == nil {
		w = os.Stdout
	}

	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("logger: parse level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	if cfg.Format == config.LogFormatConsole {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

// OrNop は nil の場合に出力を破棄するロガーを返します。
func OrNop(l *zerolog.Logger) *zerolog.Logger {
	if l == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return l
}
