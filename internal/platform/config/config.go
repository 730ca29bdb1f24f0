// Package config loads the tool's settings from flags, CLASSSIGN_* environment
// variables, an optional .env file and an optional YAML file using Viper.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix        = "CLASSSIGN"
	semesterLayout   = "2006-01-02"
	DefaultAuthURL   = "https://iclass.buaa.edu.cn:8346"
	DefaultSignURL   = "http://iclass.buaa.edu.cn:8081"
	DefaultSemester  = "2024-09-02"
	DefaultWeekCount = 18
)

type Config struct {
	// StudentID is the identifier sent to the login endpoint. Optional; the
	// CLI prompts for it when empty.
	StudentID string `mapstructure:"student_id"`
	// AuthBaseURL serves login and schedule queries.
	AuthBaseURL string `mapstructure:"auth_base_url"`
	// CheckinBaseURL serves the check-in endpoint, which lives on a different port.
	CheckinBaseURL  string        `mapstructure:"checkin_base_url"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	CheckinInterval time.Duration `mapstructure:"checkin_interval"`
	BatchInterval   time.Duration `mapstructure:"batch_interval"`
	// SemesterStart is the Monday of teaching week 1 (YYYY-MM-DD).
	SemesterStart string `mapstructure:"semester_start"`
	SemesterWeeks int    `mapstructure:"semester_weeks"`
	// LedgerPath enables the SQLite check-in ledger when set.
	LedgerPath string `mapstructure:"ledger_path"`
	LogLevel   string `mapstructure:"log_level"`
}

// Options carries the sources Load reads besides the environment.
type Options struct {
	// ConfigFile is an optional YAML file; empty means none.
	ConfigFile string
	// EnvFile is loaded with godotenv when present; missing files are ignored.
	EnvFile string
	// Overrides are applied last, typically from explicitly set CLI flags.
	Overrides map[string]any
}

func New(opts Options) (Config, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load env file: %w", err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("student_id", "")
	v.SetDefault("auth_base_url", DefaultAuthURL)
	v.SetDefault("checkin_base_url", DefaultSignURL)
	v.SetDefault("request_timeout", 10*time.Second)
	v.SetDefault("checkin_interval", time.Second)
	v.SetDefault("batch_interval", 200*time.Millisecond)
	v.SetDefault("semester_start", DefaultSemester)
	v.SetDefault("semester_weeks", DefaultWeekCount)
	v.SetDefault("ledger_path", "")
	v.SetDefault("log_level", "warn")

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}
	for key, value := range opts.Overrides {
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.StudentID = strings.TrimSpace(cfg.StudentID)
	cfg.AuthBaseURL = strings.TrimRight(strings.TrimSpace(cfg.AuthBaseURL), "/")
	cfg.CheckinBaseURL = strings.TrimRight(strings.TrimSpace(cfg.CheckinBaseURL), "/")
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.AuthBaseURL == "" || c.CheckinBaseURL == "" {
		return errors.New("config: auth_base_url and checkin_base_url must be set")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("config: request_timeout must be positive")
	}
	if c.CheckinInterval < 0 || c.BatchInterval < 0 {
		return errors.New("config: check-in intervals must not be negative")
	}
	if c.SemesterWeeks < 1 {
		return errors.New("config: semester_weeks must be at least 1")
	}
	if _, err := time.Parse(semesterLayout, c.SemesterStart); err != nil {
		return fmt.Errorf("config: semester_start must be YYYY-MM-DD: %w", err)
	}
	return nil
}

// SemesterStartDate returns the configured Monday of week 1 at UTC midnight.
func (c Config) SemesterStartDate() time.Time {
	t, err := time.Parse(semesterLayout, c.SemesterStart)
	if err != nil {
		t, _ = time.Parse(semesterLayout, DefaultSemester)
	}
	return t
}
