package browser

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/rs/zerolog"
)

// Session is one live page in a browser it exclusively owns.
type Session struct {
	manager    *PlaywrightManager
	browserCtx playwright.BrowserContext
	page       playwright.Page
	opts       Options
	log        zerolog.Logger
	closed     bool
}

func (s *Session) Goto(url string) error {
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(ms(s.opts.NavTimeout)),
	})
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", url, err)
	}
	return nil
}

func (s *Session) URL() string {
	return s.page.URL()
}

func (s *Session) Content() (string, error) {
	return s.page.Content()
}

// WaitVisible waits until the first element matching selector is visible.
func (s *Session) WaitVisible(selector string, timeout time.Duration) error {
	return s.page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(ms(timeout)),
	})
}

// Type focuses selector and types text one key at a time with a random
// pause between keystrokes.
func (s *Session) Type(selector, text string) error {
	if err := s.page.Locator(selector).First().Focus(); err != nil {
		return fmt.Errorf("focus %s: %w", selector, err)
	}
	keyboard := s.page.Keyboard()
	for _, r := range text {
		if err := keyboard.Type(string(r)); err != nil {
			return fmt.Errorf("type into %s: %w", selector, err)
		}
		time.Sleep(RandomDuration(s.opts.KeystrokeMin, s.opts.KeystrokeMax))
	}
	return nil
}

func (s *Session) Press(selector, key string) error {
	return s.page.Locator(selector).First().Press(key)
}

// ScrollBy moves the mouse around a little, then scrolls the window.
func (s *Session) ScrollBy(dy int) error {
	if err := MouseJiggle(s.page); err != nil {
		s.log.Debug().Err(err).Msg("mouse jiggle failed")
	}
	_, err := s.page.Evaluate(fmt.Sprintf("window.scrollBy(0, %d)", dy))
	return err
}

// ScrollHeight returns document.body.scrollHeight.
func (s *Session) ScrollHeight() (int, error) {
	v, err := s.page.Evaluate("document.body ? document.body.scrollHeight : 0")
	if err != nil {
		return 0, err
	}
	return toInt(v)
}

// Close closes the page, its context and the browser, and stops the
// driver. Calling it twice is a no-op.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if err := s.browserCtx.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close context: %w", err))
	}
	if err := s.manager.Close(); err != nil {
		errs = append(errs, err)
	}
	s.log.Debug().Msg("browser session closed")
	return errors.Join(errs...)
}

func ms(d time.Duration) float64 {
	return float64(d / time.Millisecond)
}

// toInt converts a number returned by page.Evaluate.
func toInt(v interface{}) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("not a finite number: %v", n)
		}
		return int(n), nil
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("unexpected %T from evaluate", v)
	}
}
