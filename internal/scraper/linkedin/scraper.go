package linkedin

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"go-linkedin-doppelganger/internal/browser"
	"go-linkedin-doppelganger/internal/scraper"
)

// Options tunes one scraper. Zero durations mean no wait.
type Options struct {
	ProfileType       string
	MaxPosts          int
	MinPostLength     int
	ScrollAttempts    int
	ScrollStep        int
	ScrollSettle      time.Duration
	PageSettle        time.Duration
	LoginWait         time.Duration
	SecurityCheckWait time.Duration
	// FormTimeout bounds waits for elements that should already be there.
	FormTimeout time.Duration
	// IncludeFeatured collects a person's Featured section before the
	// activity feed. Both count toward MaxPosts.
	IncludeFeatured bool

	// OnState, if set, is called on every state change of a run.
	OnState func(State)
}

type LinkedInScraper struct {
	launcher Launcher
	cred     Credential
	opts     Options
	log      zerolog.Logger
	sleep    func(context.Context, time.Duration) error
}

var _ scraper.Scraper = (*LinkedInScraper)(nil)

func NewLinkedInScraper(launcher Launcher, cred Credential, opts Options, log zerolog.Logger) *LinkedInScraper {
	if opts.MaxPosts < 1 {
		opts.MaxPosts = 7
	}
	if opts.ScrollStep <= 0 {
		opts.ScrollStep = 800
	}
	if opts.FormTimeout <= 0 {
		opts.FormTimeout = 10 * time.Second
	}
	return &LinkedInScraper{
		launcher: launcher,
		cred:     cred,
		opts:     opts,
		log:      log.With().Str("scraper", "linkedin").Logger(),
		sleep:    browser.Sleep,
	}
}

func (s *LinkedInScraper) Name() string {
	return "LinkedIn"
}

// run tracks the state of one Scrape call.
type run struct {
	s     *LinkedInScraper
	state State
}

func (r *run) enter(next State) {
	r.s.log.Debug().Stringer("from", r.state).Stringer("to", next).Msg("state change")
	r.state = next
	if r.s.opts.OnState != nil {
		r.s.opts.OnState(next)
	}
}

// fail moves the run to StateFailed and builds the error for the stage it
// failed in.
func (r *run) fail(err error) error {
	stage := r.state
	r.enter(StateFailed)

	scrapeErr := &ScrapeError{Stage: stage, Err: err}
	var step *stepError
	if errors.As(err, &step) {
		scrapeErr.Kind = step.kind
		scrapeErr.Err = step.err
	}
	r.s.log.Error().Err(scrapeErr).Stringer("stage", stage).Msg("Scrape failed")
	return scrapeErr
}

// Scrape logs in, opens the profile's posts feed, scrolls it and returns at
// most MaxPosts distinct post texts. On error no posts are returned.
func (s *LinkedInScraper) Scrape(ctx context.Context) ([]string, error) {
	r := &run{s: s, state: StateIdle}
	s.log.Info().Str("profile", s.cred.Profile).Msg("Scraping LinkedIn posts")

	r.enter(StateAuthenticating)
	if err := s.cred.Validate(); err != nil {
		return nil, r.fail(&stepError{kind: ErrAuthentication, err: err})
	}
	targets, err := feedTargets(s.cred.Profile, s.opts.ProfileType)
	if err != nil {
		return nil, r.fail(&stepError{kind: ErrNavigation, err: err})
	}
	if err := ctx.Err(); err != nil {
		return nil, r.fail(err)
	}

	page, err := s.launcher.Launch(ctx)
	if err != nil {
		return nil, r.fail(authErr("could not open browser session: %w", err))
	}
	defer func() {
		if cerr := page.Close(); cerr != nil {
			s.log.Warn().Err(cerr).Msg("failed to close browser session")
		}
	}()

	if err := s.login(ctx, page, s.cred); err != nil {
		return nil, r.fail(err)
	}

	var raw []string
	for i, target := range targets {
		last := i == len(targets)-1

		var featured []string
		if s.opts.IncludeFeatured && target.profile != "" {
			featured, err = s.featured(ctx, page, r, target)
			if err != nil {
				return nil, r.fail(err)
			}
		}

		r.enter(StateNavigating)
		if err := s.navigate(ctx, page, target); err != nil {
			if !last && isStep(err, ErrNavigation) {
				s.log.Warn().Err(err).Str("kind", target.kind).Msg("Posts page unavailable, trying next")
				continue
			}
			return nil, r.fail(err)
		}

		r.enter(StateExtracting)
		scrolls, err := s.scroll(ctx, page)
		if err != nil {
			return nil, r.fail(err)
		}

		html, err := page.Content()
		if err != nil {
			return nil, r.fail(navErr("could not read page: %w", err))
		}
		posts, err := ExtractPosts(html, s.opts.MinPostLength)
		if err != nil {
			return nil, r.fail(navErr("%w", err))
		}
		s.log.Info().Int("scrolls", scrolls).Int("posts", len(posts)).Str("kind", target.kind).Msg("Extracted posts")
		raw = append(featured, posts...)

		if len(raw) > 0 || last {
			break
		}
		s.log.Info().Str("kind", target.kind).Msg("No posts found, trying next page")
	}

	posts := scraper.Aggregate(raw, s.opts.MaxPosts)
	r.enter(StateDone)
	s.log.Info().Int("posts", len(posts)).Int("max", s.opts.MaxPosts).Msg("Scrape finished")
	return posts, nil
}

// featured reads the Featured section of a person's profile page. A page
// that cannot be opened only costs the featured items; a lost session or a
// cancelled run is returned.
func (s *LinkedInScraper) featured(ctx context.Context, page Page, r *run, target feedTarget) ([]string, error) {
	r.enter(StateNavigating)
	if err := s.navigate(ctx, page, feedTarget{kind: "featured", url: target.profile}); err != nil {
		if isStep(err, ErrNavigation) {
			s.log.Warn().Err(err).Msg("Profile page unavailable, skipping Featured section")
			return nil, nil
		}
		return nil, err
	}

	r.enter(StateExtracting)
	html, err := page.Content()
	if err != nil {
		s.log.Warn().Err(err).Msg("could not read profile page, skipping Featured section")
		return nil, nil
	}
	items, err := ExtractFeatured(html, s.opts.MinPostLength)
	if err != nil {
		s.log.Warn().Err(err).Msg("could not parse profile page, skipping Featured section")
		return nil, nil
	}
	s.log.Info().Int("items", len(items)).Msg("Extracted Featured section")
	return items, nil
}

func isStep(err error, kind error) bool {
	var step *stepError
	return errors.As(err, &step) && step.kind == kind
}
