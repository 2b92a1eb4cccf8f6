package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LINKEDIN_EMAIL", "LINKEDIN_PASSWORD", "LINKEDIN_PROFILE_NAME", "LINKEDIN_PROFILE_TYPE",
		"LINKEDIN_MAX_POSTS", "LINKEDIN_HEADLESS", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ProfileTypePerson, cfg.LinkedIn.ProfileType)
	assert.Equal(t, 7, cfg.Scrape.MaxPosts)
	assert.Equal(t, 20, cfg.Scrape.MinPostLength)
	assert.Equal(t, 3, cfg.Scrape.ScrollAttempts)
	assert.Equal(t, 800, cfg.Scrape.ScrollStep)
	assert.Equal(t, 2*time.Second, cfg.Scrape.ScrollSettle)
	assert.Equal(t, 8*time.Second, cfg.Scrape.LoginWait)
	assert.Equal(t, 5*time.Second, cfg.Scrape.SecurityCheckWait)
	require.NotNil(t, cfg.Browser.Headless)
	assert.True(t, *cfg.Browser.Headless)
	assert.Equal(t, []string{"--disable-notifications", "--disable-popup-blocking"}, cfg.Browser.Args)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.HasCredentials())
	assert.ErrorIs(t, cfg.RequireCredentials(), ErrMissingCredentials)
	assert.False(t, cfg.TelegramEnabled())
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
linkedin:
  profile: satyanadella
  profile_type: Company
scrape:
  max_posts: 10
  scroll_attempts: 5
  scroll_settle: 1500ms
browser:
  headless: false
  args: ["--lang=en-US"]
telegram:
  token: "123456:abcdef"
  chat_id: 42
logging:
  level: debug
  pretty: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "satyanadella", cfg.LinkedIn.Profile)
	assert.Equal(t, ProfileTypeCompany, cfg.LinkedIn.ProfileType)
	assert.Equal(t, 10, cfg.Scrape.MaxPosts)
	assert.Equal(t, 5, cfg.Scrape.ScrollAttempts)
	assert.Equal(t, 1500*time.Millisecond, cfg.Scrape.ScrollSettle)
	assert.False(t, *cfg.Browser.Headless)
	assert.Equal(t, []string{"--lang=en-US"}, cfg.Browser.Args)
	assert.True(t, cfg.TelegramEnabled())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Pretty)
}

func TestLoad_ExplicitZeroKept(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "scrape:\n  scroll_attempts: 0\n  min_post_length: 0\n  security_check_wait: 0s\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Scrape.ScrollAttempts)
	assert.Equal(t, 0, cfg.Scrape.MinPostLength)
	assert.Equal(t, time.Duration(0), cfg.Scrape.SecurityCheckWait)
	// keys absent from the file keep their defaults
	assert.Equal(t, 7, cfg.Scrape.MaxPosts)
	assert.Equal(t, 800, cfg.Scrape.ScrollStep)
	assert.False(t, cfg.Scrape.IncludeFeatured)
}

func TestLoad_BlankedFieldsNormalized(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "linkedin:\n  profile_type: \"\"\nbrowser:\n  headless: null\nlogging:\n  level: \"\"\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ProfileTypePerson, cfg.LinkedIn.ProfileType)
	require.NotNil(t, cfg.Browser.Headless)
	assert.True(t, *cfg.Browser.Headless)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "linkedin:\n  profile: from-yaml\nscrape:\n  max_posts: 3\n")

	t.Setenv("LINKEDIN_EMAIL", "me@example.com")
	t.Setenv("LINKEDIN_PASSWORD", "hunter2")
	t.Setenv("LINKEDIN_PROFILE_NAME", "from-env")
	t.Setenv("LINKEDIN_MAX_POSTS", "12")
	t.Setenv("LINKEDIN_HEADLESS", "false")
	t.Setenv("TELEGRAM_CHAT_ID", "-100123")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.LinkedIn.Profile)
	assert.Equal(t, 12, cfg.Scrape.MaxPosts)
	assert.False(t, *cfg.Browser.Headless)
	assert.Equal(t, int64(-100123), cfg.Telegram.ChatID)
	assert.True(t, cfg.HasCredentials())
	assert.NoError(t, cfg.RequireCredentials())
}

func TestLoad_PasswordIgnoredInYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "linkedin:\n  email: a@b.c\n  password: secret\n  profile: x\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.LinkedIn.Email)
	assert.Empty(t, cfg.LinkedIn.Password)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		env  map[string]string
	}{
		{name: "bad yaml", yaml: "linkedin: ["},
		{name: "unknown profile type", yaml: "linkedin:\n  profile_type: group\n"},
		{name: "negative max posts", yaml: "scrape:\n  max_posts: -1\n"},
		{name: "zero max posts", yaml: "scrape:\n  max_posts: 0\n"},
		{name: "zero max posts env", env: map[string]string{"LINKEDIN_MAX_POSTS": "0"}},
		{name: "negative min post length", yaml: "scrape:\n  min_post_length: -5\n"},
		{name: "negative scroll attempts", yaml: "scrape:\n  scroll_attempts: -2\n"},
		{name: "keystroke range", yaml: "scrape:\n  keystroke_min: 500ms\n  keystroke_max: 100ms\n"},
		{name: "bad max posts env", env: map[string]string{"LINKEDIN_MAX_POSTS": "ten"}},
		{name: "bad headless env", env: map[string]string{"LINKEDIN_HEADLESS": "maybe"}},
		{name: "bad chat id env", env: map[string]string{"TELEGRAM_CHAT_ID": "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestRedacted(t *testing.T) {
	cfg := &Config{
		LinkedIn: LinkedInConfig{Email: "me@example.com", Password: "hunter2"},
		Telegram: TelegramConfig{Token: "123456:abcdef", ChatID: 1},
	}

	red := cfg.Redacted()
	assert.Equal(t, "********", red.LinkedIn.Password)
	assert.Equal(t, "1234****", red.Telegram.Token)
	assert.Equal(t, "hunter2", cfg.LinkedIn.Password, "original must be untouched")
}
