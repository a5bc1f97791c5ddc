// Package logging 提供基于 zerolog 的全局结构化日志。
//
// 用法：
//
//	logging.Init(logging.Config{Level: "debug", Format: "console"})
//	logging.Info().Int("itemsets", n).Msg("mining finished")
//	log := logging.With("mining")
//	log.Debug().Int("k", k).Msg("level mined")
//
// 始终以 .Msg() 或 .Send() 结束日志链，否则日志不会输出。
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config 是日志配置。
type Config struct {
	// Level 最低日志级别：trace, debug, info, warn, error（默认 info）
	Level string `koanf:"level" yaml:"level"`

	// Format 输出格式：json 或 console（默认 json）
	Format string `koanf:"format" yaml:"format"`

	// Output 输出目标（默认 os.Stderr）
	Output io.Writer `koanf:"-" yaml:"-"`
}

// DefaultConfig 返回默认日志配置。
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "json",
		Output: os.Stderr,
	}
}

var (
	log zerolog.Logger
	mu  sync.RWMutex
)

func init() {
	initLogger(DefaultConfig())
}

// Init 用给定配置（重新）初始化全局 logger，可多次调用。
func Init(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	initLogger(cfg)
}

func initLogger(cfg Config) {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	var out io.Writer = cfg.Output
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: time.TimeOnly}
	}

	log = zerolog.New(out).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
}

// ParseLevel 解析日志级别，无法识别时返回 info。
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// Logger 返回全局 logger 的副本。
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// With 返回带 component 字段的子 logger。
func With(component string) zerolog.Logger {
	l := Logger()
	return l.With().Str("component", component).Logger()
}

// Debug 开始一条 debug 日志。
func Debug() *zerolog.Event {
	l := Logger()
	return l.Debug()
}

// Info 开始一条 info 日志。
func Info() *zerolog.Event {
	l := Logger()
	return l.Info()
}

// Warn 开始一条 warn 日志。
func Warn() *zerolog.Event {
	l := Logger()
	return l.Warn()
}

// Error 开始一条 error 日志。
func Error() *zerolog.Event {
	l := Logger()
	return l.Error()
}
