package linkedin

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Profile types
const (
	ProfilePerson  = "person"
	ProfileCompany = "company"
	ProfileAuto    = "auto"
)

// feedTarget is one posts page to try. profile is the main profile page,
// set for people only; it carries the Featured section.
type feedTarget struct {
	kind    string
	url     string
	profile string
}

// feedTargets returns the posts pages for profile in the order they should
// be tried. A profile URL decides the kind on its own.
func feedTargets(profile, kind string) ([]feedTarget, error) {
	slug, urlKind := parseProfile(profile)
	if slug == "" {
		return nil, fmt.Errorf("invalid profile identifier %q", profile)
	}
	if urlKind != "" {
		kind = urlKind
	}

	person := feedTarget{
		kind:    ProfilePerson,
		url:     fmt.Sprintf("%s/in/%s/recent-activity/all/", baseURL, url.PathEscape(slug)),
		profile: fmt.Sprintf("%s/in/%s/", baseURL, url.PathEscape(slug)),
	}
	company := feedTarget{kind: ProfileCompany, url: fmt.Sprintf("%s/company/%s/posts/", baseURL, url.PathEscape(slug))}

	switch kind {
	case "", ProfilePerson:
		return []feedTarget{person}, nil
	case ProfileCompany:
		return []feedTarget{company}, nil
	case ProfileAuto:
		//company pages expose public posts more reliably
		return []feedTarget{company, person}, nil
	default:
		return nil, fmt.Errorf("unknown profile type %q", kind)
	}
}

// parseProfile accepts "name", "in/name", "company/name" or a full
// linkedin.com URL and returns the slug and, when the input says so, its kind.
func parseProfile(profile string) (slug, kind string) {
	p := strings.TrimSpace(profile)
	if p == "" {
		return "", ""
	}

	if strings.Contains(p, "linkedin.com") {
		if !strings.Contains(p, "://") {
			p = "https://" + p
		}
		u, err := url.Parse(p)
		if err != nil {
			return "", ""
		}
		p = u.Path
	}

	parts := strings.FieldsFunc(p, func(r rune) bool { return r == '/' })
	switch {
	case len(parts) >= 2 && parts[0] == "in":
		return parts[1], ProfilePerson
	case len(parts) >= 2 && parts[0] == "company":
		return parts[1], ProfileCompany
	case len(parts) == 1:
		return parts[0], ""
	default:
		return "", ""
	}
}

// navigate opens a posts page and checks that it rendered.
func (s *LinkedInScraper) navigate(ctx context.Context, page Page, target feedTarget) error {
	s.log.Info().Str("kind", target.kind).Str("url", target.url).Msg("Navigating to profile posts")
	if err := page.Goto(target.url); err != nil {
		return navErr("failed to load %s: %w", target.url, err)
	}
	if err := s.sleep(ctx, s.opts.PageSettle); err != nil {
		return err
	}

	if err := s.awaitCheckpoint(ctx, page, "profile page"); err != nil {
		return err
	}

	current := page.URL()
	path := urlPath(current)
	if strings.HasPrefix(path, "/login") || strings.HasPrefix(path, "/authwall") || strings.HasPrefix(path, "/uas/login") {
		return authErr("session lost, redirected to %s", current)
	}
	if strings.HasPrefix(path, "/404") {
		return navErr("profile not found: %s", target.url)
	}

	if err := page.WaitVisible(MainContent, s.opts.FormTimeout); err != nil {
		return navErr("profile page did not render (%s): %w", MainContent, err)
	}

	html, err := page.Content()
	if err != nil {
		return navErr("could not read page: %w", err)
	}
	if isNotFoundPage(html) {
		return navErr("profile not found: %s", target.url)
	}
	return nil
}

// isNotFoundPage looks at the page's own markup, never at post text.
func isNotFoundPage(html string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false
	}
	if doc.Find(notFoundPage).Length() > 0 {
		return true
	}
	title := strings.ToLower(doc.Find("head > title").First().Text())
	return strings.Contains(title, notFoundTitle)
}

// scroll performs up to ScrollAttempts scroll-and-settle cycles and stops
// at the first one after which the document did not grow. It returns the
// number of scrolls done. Browser errors end scrolling without failing the
// run; extraction works on whatever has loaded.
func (s *LinkedInScraper) scroll(ctx context.Context, page Page) (int, error) {
	done := 0
	for attempt := 1; attempt <= s.opts.ScrollAttempts; attempt++ {
		before, err := page.ScrollHeight()
		if err != nil {
			s.log.Warn().Err(err).Msg("could not measure page, stop scrolling")
			return done, nil
		}
		if err := page.ScrollBy(s.opts.ScrollStep); err != nil {
			s.log.Warn().Err(err).Msg("scroll failed, stop scrolling")
			return done, nil
		}
		done++

		if err := s.sleep(ctx, s.opts.ScrollSettle); err != nil {
			return done, err
		}

		after, err := page.ScrollHeight()
		if err != nil {
			s.log.Warn().Err(err).Msg("could not measure page, stop scrolling")
			return done, nil
		}
		s.log.Debug().Int("attempt", attempt).Int("before", before).Int("after", after).Msg("Scroll complete")
		if after <= before {
			s.log.Debug().Int("attempt", attempt).Msg("No new content after scroll, stop scrolling")
			return done, nil
		}
	}
	return done, nil
}

func urlPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Path
}
