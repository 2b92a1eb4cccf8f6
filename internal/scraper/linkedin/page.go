package linkedin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Page is the slice of a browser page the scraper drives.
// browser.Session implements it.
type Page interface {
	Goto(url string) error
	URL() string
	Content() (string, error)
	WaitVisible(selector string, timeout time.Duration) error
	Type(selector, text string) error
	Press(selector, key string) error
	ScrollBy(dy int) error
	ScrollHeight() (int, error)
	Close() error
}

// Launcher opens a fresh browser session. Each call owns a new browser.
type Launcher interface {
	Launch(ctx context.Context) (Page, error)
}

// LaunchFunc adapts a function to Launcher.
type LaunchFunc func(ctx context.Context) (Page, error)

func (f LaunchFunc) Launch(ctx context.Context) (Page, error) { return f(ctx) }

// Credential is held in memory for one scrape and never written anywhere.
type Credential struct {
	Email    string
	Password string
	// Profile is a public identifier ("satyanadella"), a company slug, or a
	// profile URL.
	Profile string
}

var errMissingCredential = errors.New("email, password and profile are required")

func (c Credential) Validate() error {
	if strings.TrimSpace(c.Email) == "" || c.Password == "" || strings.TrimSpace(c.Profile) == "" {
		return errMissingCredential
	}
	return nil
}

// String hides the password and most of the email.
func (c Credential) String() string {
	return fmt.Sprintf("Credential{Email: %s, Password: [redacted], Profile: %s}", maskEmail(c.Email), c.Profile)
}

func maskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 0 {
		if email == "" {
			return ""
		}
		return "***"
	}
	return email[:1] + "***" + email[at:]
}
