package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/lazyflow/errors"
)

// FileSystem abstracts the file lookups the loader performs.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
	Home() (string, error)
}

// RealFileSystem implements FileSystem on top of the os package.
type RealFileSystem struct{}

func (RealFileSystem) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

func (RealFileSystem) Home() (string, error) {
	return os.UserHomeDir()
}

// Resolver finds the config and env files for a tool.
type Resolver struct {
	FileSystem FileSystem
}

// ResolvedFiles contains the resolved config and env file paths.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles returns the explicit paths from opts when set and searches
// the standard locations otherwise.
func (r *Resolver) ResolveFiles(tool string, opts LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{
		ConfigFile: opts.ConfigFile,
		EnvFile:    opts.EnvFile,
	}
	if resolved.ConfigFile == "" {
		resolved.ConfigFile = r.first(r.configCandidates(tool))
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = r.first(envCandidates(tool))
	}
	return resolved
}

// configCandidates lists config file locations, most specific first:
// the working directory, the tool's cmd directory, then the user's home.
func (r *Resolver) configCandidates(tool string) []string {
	paths := []string{
		tool + ".yml",
		tool + ".yaml",
		"config.yml",
		filepath.Join("cmd", tool, "config.yml"),
		filepath.Join("..", "cmd", tool, "config.yml"),
	}
	if home, err := r.FileSystem.Home(); err == nil && home != "" {
		paths = append(paths,
			filepath.Join(home, ".config", tool, "config.yml"),
			filepath.Join(home, "."+tool+".yml"),
		)
	}
	return paths
}

func envCandidates(tool string) []string {
	return []string{
		".env." + tool,
		".env",
		filepath.Join("cmd", tool, ".env"),
	}
}

func (r *Resolver) first(paths []string) string {
	for _, p := range paths {
		if r.FileSystem.Exists(p) {
			return p
		}
	}
	return ""
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string // explicit config file path
	EnvFile    string // explicit .env file path
	EnvPrefix  string // defaults to the upper-cased tool name
	Defaults   map[string]any
}

// LoaderOption is a functional option for LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path. A missing explicit
// file is an error, unlike a file that was merely searched for.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithEnvPrefix overrides the environment variable prefix.
func WithEnvPrefix(prefix string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvPrefix = prefix }
}

// WithDefault registers a default value for a dotted key.
func WithDefault(key string, value any) LoaderOption {
	return func(lc *LoaderConfig) {
		if lc.Defaults == nil {
			lc.Defaults = make(map[string]any)
		}
		lc.Defaults[key] = value
	}
}

// LoadConfig loads configuration for a tool into cfg.
//
// Sources, lowest precedence first: registered defaults, the YAML config
// file, the .env file, then process environment variables named
// <PREFIX>_<SECTION>_<KEY> (for example WORDFREQ_LOGGING_LEVEL).
func LoadConfig(tool string, cfg any, opts ...LoaderOption) error {
	lc := LoaderConfig{FileSystem: RealFileSystem{}}
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.EnvPrefix == "" {
		lc.EnvPrefix = envPrefix(tool)
	}

	explicitConfig := lc.ConfigFile != ""
	explicitEnv := lc.EnvFile != ""
	resolver := &Resolver{FileSystem: lc.FileSystem}
	files := resolver.ResolveFiles(tool, lc)

	v := viper.New()
	for key, value := range lc.Defaults {
		v.SetDefault(key, value)
	}

	if files.ConfigFile != "" {
		if !lc.FileSystem.Exists(files.ConfigFile) {
			if explicitConfig {
				return errors.Resource("read config", files.ConfigFile, os.ErrNotExist)
			}
		} else {
			v.SetConfigFile(files.ConfigFile)
			if err := v.ReadInConfig(); err != nil {
				return errors.Resource("read config", files.ConfigFile, err)
			}
		}
	}

	if files.EnvFile != "" {
		switch {
		case lc.FileSystem.Exists(files.EnvFile):
			if err := lc.FileSystem.LoadEnv(files.EnvFile); err != nil {
				return errors.Resource("load env", files.EnvFile, err)
			}
		case explicitEnv:
			return errors.Resource("load env", files.EnvFile, os.ErrNotExist)
		}
	}

	bindEnv(v, lc.EnvPrefix)

	if err := v.Unmarshal(cfg); err != nil {
		return errors.Configuration("unmarshal config for " + tool + ": " + err.Error())
	}
	return nil
}

// bindEnv copies every prefixed environment variable into v under each
// dotted key it could name.
func bindEnv(v *viper.Viper, prefix string) {
	head := prefix + "_"
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, head) {
			continue
		}
		for _, key := range envKeyVariants(strings.TrimPrefix(name, head)) {
			v.Set(key, value)
		}
	}
}

// envKeyVariants maps an environment suffix to candidate dotted keys.
// Underscores are ambiguous: they separate sections and also appear inside
// key names, so every split point is produced.
//
//	LOGGING_LEVEL      -> [logging_level, logging.level]
//	COUNT_MIN_LENGTH   -> [count_min_length, count.min.length, count.min_length]
func envKeyVariants(suffix string) []string {
	lower := strings.ToLower(suffix)
	parts := strings.Split(lower, "_")
	if len(parts) == 1 {
		return []string{lower}
	}

	variants := []string{lower, strings.Join(parts, ".")}
	for i := 1; i < len(parts); i++ {
		variants = append(variants, strings.Join(parts[:i], ".")+"."+strings.Join(parts[i:], "_"))
	}
	return dedupe(variants)
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := items[:0]
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

func envPrefix(tool string) string {
	return strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(tool))
}
