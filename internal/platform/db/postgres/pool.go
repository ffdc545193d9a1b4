package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/ogurasousui/codex-grpc-employee-comp/internal/platform/config"
	"github.com/rs/zerolog"
)

const applicationName = "employee-comp"

// BuildPoolConfig は database 設定から pgxpool.Config を構築します。
func BuildPoolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("postgres: parse config: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	}

	if cfg.MaxIdleConns > 0 {
		poolCfg.MinConns = int32(cfg.MaxIdleConns)
	}

	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}

	if cfg.ConnMaxIdleTime > 0 {
		poolCfg.MaxConnIdleTime = cfg.ConnMaxIdleTime
	}

	if _, ok := poolCfg.ConnConfig.RuntimeParams["application_name"]; !ok {
		poolCfg.ConnConfig.RuntimeParams["application_name"] = applicationName
	}

	return poolCfg, nil
}

// NewPool は pgxpool.Pool を生成し疎通確認を行います。logger が指定された場合はクエリを debug で記録します。
// クエリ本文と引数は logger が debug 以下のときだけ出力され、それ以外では失敗したクエリのみ記録されます。
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger *zerolog.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := BuildPoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	if logger != nil {
		poolCfg.ConnConfig.Tracer = newQueryTracer(logger)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	return pool, nil
}

func newQueryTracer(logger *zerolog.Logger) *tracelog.TraceLog {
	return &tracelog.TraceLog{
		Logger:   queryLogger{logger: logger},
		LogLevel: traceLevel(logger.GetLevel()),
	}
}

// queryLogger は pgx のトレースログを zerolog へ流します。
type queryLogger struct {
	logger *zerolog.Logger
}

func (l queryLogger) Log(_ context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	var ev *zerolog.Event
	switch level {
	case tracelog.LogLevelTrace, tracelog.LogLevelDebug, tracelog.LogLevelInfo:
		// pgx は成功したクエリを Info で報告するため debug に落とします。
		ev = l.logger.Debug()
	case tracelog.LogLevelWarn:
		ev = l.logger.Warn()
	default:
		ev = l.logger.Error()
	}
	ev.Fields(data).Str("component", "pgx").Msg(msg)
}

// traceLevel は zerolog のレベルを pgx の出力閾値へ変換します。info 以上では成功したクエリを出しません。
func traceLevel(level zerolog.Level) tracelog.LogLevel {
	switch level {
	case zerolog.TraceLevel, zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	case zerolog.InfoLevel, zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	case zerolog.Disabled:
		return tracelog.LogLevelNone
	default:
		return tracelog.LogLevelError
	}
}
