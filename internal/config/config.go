package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const EnvPrefix = "MANGASRC_"

type Config struct {
	Source string `yaml:"source" env:"SOURCE"`

	Output         string `yaml:"output" env:"OUTPUT"`
	ImageWorkers   int    `yaml:"image_workers" env:"IMAGE_WORKERS"`
	ChapterWorkers int    `yaml:"chapter_workers" env:"CHAPTER_WORKERS"`
	KeepFolders    bool   `yaml:"keep_folders" env:"KEEP_FOLDERS"`
	SkipBroken     bool   `yaml:"skip_broken" env:"SKIP_BROKEN"`
	Debug          bool   `yaml:"debug" env:"DEBUG"`

	PrefsBackend string `yaml:"prefs_backend" env:"PREFS_BACKEND"`
	PrefsPath    string `yaml:"prefs_path" env:"PREFS_PATH"`

	Cookie     string  `yaml:"cookie" env:"COOKIE"`
	CookieFile string  `yaml:"cookie_file" env:"COOKIE_FILE"`
	UserAgent  string  `yaml:"user_agent" env:"USER_AGENT"`
	Cloudflare bool    `yaml:"cloudflare" env:"CLOUDFLARE"`
	Retries    int     `yaml:"retries" env:"RETRIES"`
	RateLimit  float64 `yaml:"rate_limit" env:"RATE_LIMIT"`
}

// Options carries CLI flag values; zero values leave the config untouched.
type Options struct {
	IgnoreConfig bool
	Debug        bool
	Source       string
	Output       string
	KeepFolders  bool
	SkipBroken   bool
	Cookie       string
	CookieFile   string
	UserAgent    string
	NoCloudflare bool
}

func DefaultConfig() *Config {
	return &Config{
		Source:         "nettruyen1s",
		Output:         ".",
		ImageWorkers:   5,
		ChapterWorkers: 2,
		PrefsBackend:   "yaml",
		Cloudflare:     true,
		Retries:        3,
		RateLimit:      2,
	}
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}

	return c, nil
}

// LoadMerged layers the active profile (or defaults), MANGASRC_* environment
// variables and CLI options, in that order. The returned string names the
// profile that was used.
func LoadMerged(opts Options) (*Config, string, error) {
	cfg := DefaultConfig()
	used := "(ignored config)"

	if !opts.IgnoreConfig {
		activePath, err := DefaultProfiles().ActivePath()
		switch {
		case errors.Is(err, ErrNoConfig):
			used = "(default config in memory)\nRun `mangasrc config init` to create an actual config\n"
		case err != nil:
			return nil, "", err
		default:
			cfg, err = loadYAML(activePath)
			if err != nil {
				return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
			}
			used = activePath
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, "", err
	}

	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	return cfg, used, nil
}

func applyEnv(c *Config) error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return nil
}

func mergeConfig(c *Config, o Options) {
	if o.Source != "" {
		c.Source = o.Source
	}
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.KeepFolders {
		c.KeepFolders = true
	}
	if o.SkipBroken {
		c.SkipBroken = true
	}
	if o.Debug {
		c.Debug = true
	}
	if o.Cookie != "" {
		c.Cookie = o.Cookie
	}
	if o.CookieFile != "" {
		c.CookieFile = o.CookieFile
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.NoCloudflare {
		c.Cloudflare = false
	}
}

func normalizeDefaults(c *Config) {
	def := DefaultConfig()

	if c.Source == "" {
		c.Source = def.Source
	}
	if c.Output == "" {
		c.Output = def.Output
	}
	if c.ImageWorkers <= 0 {
		c.ImageWorkers = def.ImageWorkers
	}
	if c.ChapterWorkers <= 0 {
		c.ChapterWorkers = def.ChapterWorkers
	}
	if c.PrefsBackend == "" {
		c.PrefsBackend = def.PrefsBackend
	}
	if c.Retries <= 0 {
		c.Retries = 1
	}
	if c.RateLimit < 0 {
		c.RateLimit = 0
	}
}

func (c *Config) Print() {
	fmt.Printf(" -source: %s\n", c.Source)
	fmt.Printf(" -output: %s\n", c.Output)
	fmt.Printf(" -image_workers: %d\n", c.ImageWorkers)
	fmt.Printf(" -chapter_workers: %d\n", c.ChapterWorkers)
	fmt.Printf(" -prefs_backend: %s\n", c.PrefsBackend)
	if c.PrefsPath != "" {
		fmt.Printf(" -prefs_path: %s\n", c.PrefsPath)
	}
	fmt.Printf(" -retries: %d\n", c.Retries)
	fmt.Printf(" -rate_limit: %.2f/s\n", c.RateLimit)
	fmt.Printf(" -cloudflare: %t\n", c.Cloudflare)
	if c.KeepFolders {
		fmt.Printf(" -keep_folders: %t\n", c.KeepFolders)
	}
	if c.SkipBroken {
		fmt.Printf(" -skip_broken: %t\n", c.SkipBroken)
	}
	if c.Debug {
		fmt.Printf(" -debug: %t\n", c.Debug)
	}
	if c.CookieFile != "" {
		fmt.Printf(" -cookie_file: %s\n", c.CookieFile)
	}
	if c.UserAgent != "" {
		fmt.Printf(" -user_agent: %s\n", c.UserAgent)
	}
}
