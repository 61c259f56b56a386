package main

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/luhtfiimanal/go-logring"
)

const envPrefix = "LOGRING"

// Config holds the settings shared by every subcommand. Values come from
// flags, LOGRING_* environment variables and an optional config file, in
// that order of precedence.
type Config struct {
	File     string // path of the log file
	Limit    int64  // total size used when the file is created
	Mmap     bool   // serve I/O through a memory mapping
	Sync     bool   // fsync after every cursor update
	NoLock   bool   // skip the exclusive flock
	Fill     bool   // fill unused bytes of a new file with '.'
	LogLevel string // zerolog level name
}

func NewConfig() Config {
	return Config{
		File:     "log.ring",
		Limit:    1 << 20, // 1 MiB
		LogLevel: "info",
	}
}

// bindFlags registers the persistent flags and ties them to v.
func bindFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	def := NewConfig()
	fs.StringP("config", "c", "", "path to config file (yaml, json or toml)")
	fs.StringP("file", "f", def.File, "log file")
	fs.Int64("limit", def.Limit, "file size in bytes when creating a new log")
	fs.Bool("mmap", def.Mmap, "use a shared memory mapping for I/O")
	fs.Bool("sync", def.Sync, "fsync after every push and shift")
	fs.Bool("no-lock", def.NoLock, "do not take an exclusive lock on the file")
	fs.Bool("fill", def.Fill, "fill unused bytes of a new file with '.'")
	fs.String("log-level", def.LogLevel, "log level (debug, info, warn, error)")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v.BindPFlags(fs)
}

// loadConfig reads the optional config file and resolves all settings.
func loadConfig(v *viper.Viper) (Config, error) {
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	return Config{
		File:     v.GetString("file"),
		Limit:    v.GetInt64("limit"),
		Mmap:     v.GetBool("mmap"),
		Sync:     v.GetBool("sync"),
		NoLock:   v.GetBool("no-lock"),
		Fill:     v.GetBool("fill"),
		LogLevel: v.GetString("log-level"),
	}, nil
}

func (c Config) options(logger zerolog.Logger) logring.Options {
	opts := logring.DefaultOptions()
	opts.UseMmap = c.Mmap
	opts.SyncWrites = c.Sync
	opts.NoLock = c.NoLock
	opts.FillUnused = c.Fill
	opts.Logger = logger
	return opts
}
