// Manual check that the browser starts and LinkedIn's login form still
// matches our selectors. Does not log in.

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go-linkedin-doppelganger/internal/browser"
	"go-linkedin-doppelganger/internal/config"
	"go-linkedin-doppelganger/internal/logger"
	"go-linkedin-doppelganger/internal/scraper/linkedin"
	"go-linkedin-doppelganger/internal/tool"
)

func main() {
	fmt.Println("🌐 Testing browser session...")

	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	zl, err := logger.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	session, err := browser.NewLauncher(tool.BrowserOptions(cfg), zl).Launch(ctx)
	if err != nil {
		log.Fatalf("Failed to launch browser: %v", err)
	}
	defer session.Close()
	fmt.Println("✅ Browser started")

	if err := session.Goto("https://www.linkedin.com/login"); err != nil {
		log.Fatalf("Failed to navigate: %v", err)
	}
	fmt.Printf("✅ Landed on %s\n", session.URL())

	failed := false
	for _, selector := range []string{linkedin.UsernameInput, linkedin.PasswordInput} {
		if err := session.WaitVisible(selector, 10*time.Second); err != nil {
			fmt.Printf("❌ %s not found: %v\n", selector, err)
			failed = true
			continue
		}
		fmt.Printf("✅ %s visible\n", selector)
	}

	if failed {
		session.Close()
		os.Exit(1)
	}
	fmt.Println("✨ Test complete!")
}
