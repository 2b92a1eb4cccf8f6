package browser

import (
	"context"
	"math/rand"
	"time"

	"github.com/playwright-community/playwright-go"
)

// RandomDuration returns a duration in [min, max]. If max <= min it returns min.
func RandomDuration(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)+1))
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// MouseJiggle simulates random mouse movements to prevent idle detection
func MouseJiggle(page playwright.Page) error {
	viewportSize := page.ViewportSize()
	if viewportSize == nil {
		return nil
	}
	width := viewportSize.Width
	height := viewportSize.Height
	if width <= 0 || height <= 0 {
		return nil
	}
	for i := 0; i < 3; i++ {
		x := rand.Intn(width)
		y := rand.Intn(height)
		if err := page.Mouse().Move(float64(x), float64(y)); err != nil {
			return err
		}
		time.Sleep(RandomDuration(100*time.Millisecond, 300*time.Millisecond))
	}
	return nil
}
