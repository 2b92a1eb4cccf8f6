package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"go-linkedin-doppelganger/internal/config"
	"go-linkedin-doppelganger/internal/logger"
	"go-linkedin-doppelganger/internal/reporter"
	"go-linkedin-doppelganger/internal/tool"
)

var (
	// Run command flags
	profile     string
	profileType string
	maxPosts    int
	headless    bool
	featured    bool
	jsonOutput  bool
	notify      bool
	timeout     time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Scrape the configured profile and print its posts",
	Example: `  # Use linkedin.profile from the config file
  scraper run

  # Another profile, visible browser, JSON output
  scraper run --profile satyanadella --headless=false --json

  # Company page, send the result to Telegram
  scraper run --profile microsoft --profile-type company --notify`,
	Args: cobra.NoArgs,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&profile, "profile", "p", "", "profile identifier or URL (overrides LINKEDIN_PROFILE_NAME)")
	runCmd.Flags().StringVar(&profileType, "profile-type", "", "person, company or auto")
	runCmd.Flags().IntVarP(&maxPosts, "max-posts", "n", 0, "maximum number of posts")
	runCmd.Flags().BoolVar(&headless, "headless", true, "run the browser without a window")
	runCmd.Flags().BoolVar(&featured, "featured", false, "also collect the Featured section of a person profile")
	runCmd.Flags().BoolVar(&jsonOutput, "json", false, "print posts as JSON")
	runCmd.Flags().BoolVar(&notify, "notify", false, "send posts (or the error) to the configured Telegram chat")
	runCmd.Flags().DurationVar(&timeout, "timeout", 10*time.Minute, "abort the run after this long")
}

// applyRunFlags overrides config values with the flags that were set.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("profile") {
		cfg.LinkedIn.Profile = profile
	}
	if flags.Changed("profile-type") {
		cfg.LinkedIn.ProfileType = profileType
	}
	if flags.Changed("max-posts") {
		cfg.Scrape.MaxPosts = maxPosts
	}
	if flags.Changed("headless") {
		h := headless
		cfg.Browser.Headless = &h
	}
	if flags.Changed("featured") {
		cfg.Scrape.IncludeFeatured = featured
	}
	return cfg.Validate()
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyRunFlags(cmd, cfg); err != nil {
		return err
	}

	log, err := logger.New(cfg.Logging)
	if err != nil {
		return err
	}

	var tg *reporter.TelegramReporter
	if notify {
		if !cfg.TelegramEnabled() {
			return fmt.Errorf("--notify needs TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID")
		}
		tg, err = reporter.NewTelegramReporter(cfg.Telegram)
		if err != nil {
			return err
		}
		log.Info().Msg("Telegram reporter initialized")
	}

	t, err := tool.FromConfig(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	posts, err := t.Posts(ctx)
	if err != nil {
		if tg != nil {
			if sendErr := tg.SendError(err); sendErr != nil {
				log.Warn().Err(sendErr).Msg("Failed to send error to Telegram")
			}
		}
		return err
	}

	if err := printPosts(cmd.OutOrStdout(), cfg.LinkedIn.Profile, posts, jsonOutput); err != nil {
		return err
	}

	if tg != nil {
		notifyPosts(ctx, log, tg, cfg.LinkedIn.Profile, posts)
	}
	return nil
}

func notifyPosts(ctx context.Context, log zerolog.Logger, tg *reporter.TelegramReporter, profile string, posts []string) {
	if err := tg.SendPosts(ctx, profile, posts); err != nil {
		log.Warn().Err(err).Msg("Failed to send posts to Telegram")
		return
	}
	log.Info().Int("posts", len(posts)).Msg("Posts sent to Telegram")
}

type result struct {
	Profile string   `json:"profile"`
	Count   int      `json:"count"`
	Posts   []string `json:"posts"`
}

func printPosts(w io.Writer, profile string, posts []string, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result{Profile: profile, Count: len(posts), Posts: posts})
	}
	_, err := fmt.Fprintln(w, tool.Format(posts))
	return err
}
