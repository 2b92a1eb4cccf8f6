package linkedin

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// loginErrorWait bounds the look for an inline error after a failed login.
const loginErrorWait = 2 * time.Second

// login submits the credential on the login form and waits for the
// authenticated landing page.
func (s *LinkedInScraper) login(ctx context.Context, page Page, cred Credential) error {
	s.log.Info().Msg("Logging in to LinkedIn...")
	if err := page.Goto(loginURL); err != nil {
		return authErr("failed to load login page: %w", err)
	}

	if err := s.awaitSecurityCheck(ctx, page, "login page"); err != nil {
		return err
	}

	//a missing form means the page layout changed, not bad credentials
	if err := page.WaitVisible(UsernameInput, s.opts.FormTimeout); err != nil {
		return navErr("login form not found (%s): %w", UsernameInput, err)
	}
	if err := page.Type(UsernameInput, cred.Email); err != nil {
		return navErr("could not type into %s: %w", UsernameInput, err)
	}
	if err := page.WaitVisible(PasswordInput, s.opts.FormTimeout); err != nil {
		return navErr("login form not found (%s): %w", PasswordInput, err)
	}
	if err := page.Type(PasswordInput, cred.Password); err != nil {
		return navErr("could not type into %s: %w", PasswordInput, err)
	}
	if err := page.Press(PasswordInput, "Enter"); err != nil {
		return authErr("could not submit login form: %w", err)
	}

	s.log.Info().Msg("Waiting for login to complete...")
	err := page.WaitVisible(GlobalNav, s.opts.LoginWait)
	if err == nil {
		s.log.Info().Msg("Login confirmed")
		return nil
	}

	if isCheckpoint(page) {
		if err := s.awaitSecurityCheck(ctx, page, "after login"); err != nil {
			return err
		}
		if retryErr := page.WaitVisible(GlobalNav, s.opts.FormTimeout); retryErr == nil {
			s.log.Info().Msg("Login confirmed after security check")
			return nil
		}
		return authErr("security check was not passed (url %s)", page.URL())
	}

	for _, selector := range LoginErrors {
		if page.WaitVisible(selector, loginErrorWait) == nil {
			return authErr("LinkedIn rejected the credentials (%s)", selector)
		}
	}
	return authErr("login did not reach the feed (url %s): %w", page.URL(), err)
}

// awaitSecurityCheck gives a human SecurityCheckWait to solve a challenge
// shown on the current page. It returns only context errors.
func (s *LinkedInScraper) awaitSecurityCheck(ctx context.Context, page Page, where string) error {
	if !hasSecurityCheck(page) {
		return nil
	}
	return s.waitForHuman(ctx, where)
}

// awaitCheckpoint is awaitSecurityCheck for authenticated pages, where the
// body is user content and only the URL is trusted.
func (s *LinkedInScraper) awaitCheckpoint(ctx context.Context, page Page, where string) error {
	if !isCheckpoint(page) {
		return nil
	}
	return s.waitForHuman(ctx, where)
}

func (s *LinkedInScraper) waitForHuman(ctx context.Context, where string) error {
	s.log.Warn().
		Str("where", where).
		Dur("wait", s.opts.SecurityCheckWait).
		Msg("Security check detected, solve it in the browser window")
	return s.sleep(ctx, s.opts.SecurityCheckWait)
}

func hasSecurityCheck(page Page) bool {
	if isCheckpoint(page) {
		return true
	}
	html, err := page.Content()
	if err != nil {
		return false
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false
	}
	heading := strings.ToLower(doc.Find("title").Text() + " " + doc.Find("h1").Text())
	for _, marker := range securityCheckMarkers {
		if strings.Contains(heading, marker) {
			return true
		}
	}
	return false
}

func isCheckpoint(page Page) bool {
	return strings.Contains(urlPath(page.URL()), "/checkpoint")
}
