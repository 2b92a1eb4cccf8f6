// Expose the LinkedIn scraper as a function-calling tool

package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"go-linkedin-doppelganger/internal/browser"
	"go-linkedin-doppelganger/internal/config"
	"go-linkedin-doppelganger/internal/scraper"
	"go-linkedin-doppelganger/internal/scraper/linkedin"
)

const (
	Name        = "ScrapeLinkedinPosts"
	Description = "Scrape the configured LinkedIn profile and return its most recent posts as a numbered list."

	// NoPosts is returned by Call when the profile yields nothing.
	NoPosts = "There are no LinkedIn posts available to display from the target profile."
)

// Definition is a function schema in the OpenAI tools format.
type Definition struct {
	Type     string   `json:"type"`
	Function Function `json:"function"`
}

type Function struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// LinkedInPosts runs one scrape per call. It keeps nothing between calls.
type LinkedInPosts struct {
	scraper scraper.Scraper
	log     zerolog.Logger
}

func NewLinkedInPosts(s scraper.Scraper, log zerolog.Logger) *LinkedInPosts {
	return &LinkedInPosts{scraper: s, log: log.With().Str("tool", Name).Logger()}
}

// FromConfig wires a LinkedIn scraper driving a real browser.
func FromConfig(cfg *config.Config, log zerolog.Logger) (*LinkedInPosts, error) {
	if err := cfg.RequireCredentials(); err != nil {
		return nil, err
	}

	launcher := browser.NewLauncher(BrowserOptions(cfg), log)
	cred := linkedin.Credential{
		Email:    cfg.LinkedIn.Email,
		Password: cfg.LinkedIn.Password,
		Profile:  cfg.LinkedIn.Profile,
	}
	s := linkedin.NewLinkedInScraper(linkedin.LaunchFunc(func(ctx context.Context) (linkedin.Page, error) {
		session, err := launcher.Launch(ctx)
		if err != nil {
			return nil, err
		}
		return session, nil
	}), cred, ScraperOptions(cfg), log)

	return NewLinkedInPosts(s, log), nil
}

func BrowserOptions(cfg *config.Config) browser.Options {
	headless := true
	if cfg.Browser.Headless != nil {
		headless = *cfg.Browser.Headless
	}
	return browser.Options{
		Headless:     headless,
		UserAgent:    cfg.Browser.UserAgent,
		Args:         cfg.Browser.Args,
		KeystrokeMin: cfg.Scrape.KeystrokeMin,
		KeystrokeMax: cfg.Scrape.KeystrokeMax,
	}
}

func ScraperOptions(cfg *config.Config) linkedin.Options {
	s := cfg.Scrape
	return linkedin.Options{
		ProfileType:       cfg.LinkedIn.ProfileType,
		MaxPosts:          s.MaxPosts,
		MinPostLength:     s.MinPostLength,
		ScrollAttempts:    s.ScrollAttempts,
		ScrollStep:        s.ScrollStep,
		ScrollSettle:      s.ScrollSettle,
		PageSettle:        s.PageSettle,
		LoginWait:         s.LoginWait,
		SecurityCheckWait: s.SecurityCheckWait,
		IncludeFeatured:   s.IncludeFeatured,
	}
}

func (t *LinkedInPosts) Name() string { return Name }

func (t *LinkedInPosts) Description() string { return Description }

// Definition takes no parameters: the profile comes from configuration.
func (t *LinkedInPosts) Definition() Definition {
	return Definition{
		Type: "function",
		Function: Function{
			Name:        Name,
			Description: Description,
			Parameters: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
	}
}

// Posts returns the scraped posts as they came from the scraper.
func (t *LinkedInPosts) Posts(ctx context.Context) ([]string, error) {
	posts, err := t.scraper.Scrape(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t.scraper.Name(), err)
	}
	t.log.Debug().Int("posts", len(posts)).Msg("tool call finished")
	return posts, nil
}

// Call scrapes and formats the result for a language model.
func (t *LinkedInPosts) Call(ctx context.Context) (string, error) {
	posts, err := t.Posts(ctx)
	if err != nil {
		return "", err
	}
	return Format(posts), nil
}

// Format numbers posts from 1, separated by a blank line.
func Format(posts []string) string {
	if len(posts) == 0 {
		return NoPosts
	}
	var b strings.Builder
	for i, p := range posts {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "%d. %s", i+1, p)
	}
	return b.String()
}
