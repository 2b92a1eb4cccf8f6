// Load envs from .env
// Load YAML config
// Override with env vars
// Provide default values and validate

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

// Profile types accepted by linkedin.profile_type
const (
	ProfileTypePerson  = "person"
	ProfileTypeCompany = "company"
	ProfileTypeAuto    = "auto"
)

var ErrMissingCredentials = errors.New("LINKEDIN_EMAIL, LINKEDIN_PASSWORD and LINKEDIN_PROFILE_NAME must be set")

type Config struct {
	LinkedIn LinkedInConfig `yaml:"linkedin"`
	Scrape   ScrapeConfig   `yaml:"scrape"`
	Browser  BrowserConfig  `yaml:"browser"`
	Telegram TelegramConfig `yaml:"telegram"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type LinkedInConfig struct {
	//credentials come from LINKEDIN_EMAIL / LINKEDIN_PASSWORD only
	Email    string `yaml:"-"`
	Password string `yaml:"-"`

	Profile     string `yaml:"profile"`
	ProfileType string `yaml:"profile_type"`
}

type ScrapeConfig struct {
	MaxPosts          int           `yaml:"max_posts"`
	MinPostLength     int           `yaml:"min_post_length"`
	ScrollAttempts    int           `yaml:"scroll_attempts"`
	ScrollStep        int           `yaml:"scroll_step"`
	ScrollSettle      time.Duration `yaml:"scroll_settle"`
	PageSettle        time.Duration `yaml:"page_settle"`
	LoginWait         time.Duration `yaml:"login_wait"`
	SecurityCheckWait time.Duration `yaml:"security_check_wait"`
	KeystrokeMin      time.Duration `yaml:"keystroke_min"`
	KeystrokeMax      time.Duration `yaml:"keystroke_max"`

	// IncludeFeatured also collects the profile's Featured section
	// (person profiles only).
	IncludeFeatured bool `yaml:"include_featured"`
}

type BrowserConfig struct {
	Headless  *bool    `yaml:"headless"`
	UserAgent string   `yaml:"user_agent"`
	Args      []string `yaml:"args"`
}

type TelegramConfig struct {
	Token  string `yaml:"token"`
	ChatID int64  `yaml:"chat_id"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Load reads .env, then the YAML file at path (a missing file is not an
// error), applies env overrides and defaults, and validates the result.
// An empty path means DefaultPath.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = DefaultPath
	}

	//defaults go in first so that an explicit zero in the file survives
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		//fall through to env + defaults
	default:
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("LINKEDIN_EMAIL"); v != "" {
		c.LinkedIn.Email = v
	}
	if v := os.Getenv("LINKEDIN_PASSWORD"); v != "" {
		c.LinkedIn.Password = v
	}
	if v := os.Getenv("LINKEDIN_PROFILE_NAME"); v != "" {
		c.LinkedIn.Profile = v
	}
	if v := os.Getenv("LINKEDIN_PROFILE_TYPE"); v != "" {
		c.LinkedIn.ProfileType = v
	}

	if v := os.Getenv("LINKEDIN_MAX_POSTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid LINKEDIN_MAX_POSTS: %w", err)
		}
		c.Scrape.MaxPosts = n
	}

	if v := os.Getenv("LINKEDIN_HEADLESS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid LINKEDIN_HEADLESS: %w", err)
		}
		c.Browser.Headless = &b
	}

	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		c.Telegram.Token = token
	}
	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		c.Telegram.ChatID = id
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	return nil
}

func defaultConfig() *Config {
	headless := true
	return &Config{
		LinkedIn: LinkedInConfig{ProfileType: ProfileTypePerson},
		Scrape: ScrapeConfig{
			MaxPosts:          7,
			MinPostLength:     20,
			ScrollAttempts:    3,
			ScrollStep:        800,
			ScrollSettle:      2 * time.Second,
			PageSettle:        5 * time.Second,
			LoginWait:         8 * time.Second,
			SecurityCheckWait: 5 * time.Second,
			KeystrokeMin:      50 * time.Millisecond,
			KeystrokeMax:      150 * time.Millisecond,
		},
		Browser: BrowserConfig{
			Headless: &headless,
			Args:     []string{"--disable-notifications", "--disable-popup-blocking"},
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// normalize fills what a file may have blanked out explicitly.
func (c *Config) normalize() {
	if c.LinkedIn.ProfileType == "" {
		c.LinkedIn.ProfileType = ProfileTypePerson
	}
	c.LinkedIn.ProfileType = strings.ToLower(c.LinkedIn.ProfileType)

	if c.Browser.Headless == nil {
		headless := true
		c.Browser.Headless = &headless
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate checks ranges only. Missing credentials are reported by
// RequireCredentials so that commands which never log in still work.
func (c *Config) Validate() error {
	switch c.LinkedIn.ProfileType {
	case ProfileTypePerson, ProfileTypeCompany, ProfileTypeAuto:
	default:
		return fmt.Errorf("unknown profile_type %q (use person, company or auto)", c.LinkedIn.ProfileType)
	}

	s := c.Scrape
	if s.MaxPosts < 1 {
		return fmt.Errorf("max_posts must be at least 1, got %d", s.MaxPosts)
	}
	if s.MinPostLength < 0 {
		return fmt.Errorf("min_post_length must not be negative, got %d", s.MinPostLength)
	}
	if s.ScrollAttempts < 0 {
		return fmt.Errorf("scroll_attempts must not be negative, got %d", s.ScrollAttempts)
	}
	if s.ScrollStep <= 0 {
		return fmt.Errorf("scroll_step must be positive, got %d", s.ScrollStep)
	}
	if s.KeystrokeMin > s.KeystrokeMax {
		return fmt.Errorf("keystroke_min (%s) is greater than keystroke_max (%s)", s.KeystrokeMin, s.KeystrokeMax)
	}
	return nil
}

// HasCredentials reports whether email, password and profile are all set.
func (c *Config) HasCredentials() bool {
	return c.LinkedIn.Email != "" && c.LinkedIn.Password != "" && c.LinkedIn.Profile != ""
}

// RequireCredentials returns ErrMissingCredentials unless HasCredentials.
func (c *Config) RequireCredentials() error {
	if !c.HasCredentials() {
		return ErrMissingCredentials
	}
	return nil
}

// TelegramEnabled reports whether a bot token and chat are configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.Token != "" && c.Telegram.ChatID != 0
}

// Redacted returns a copy safe to print: password and bot token masked.
func (c *Config) Redacted() Config {
	out := *c
	if out.LinkedIn.Password != "" {
		out.LinkedIn.Password = "********"
	}
	if out.Telegram.Token != "" {
		out.Telegram.Token = mask(out.Telegram.Token)
	}
	return out
}

func mask(s string) string {
	if len(s) <= 6 {
		return "****"
	}
	return s[:4] + "****"
}
