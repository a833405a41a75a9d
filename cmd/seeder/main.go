package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gokatarajesh/find-the-ai/internal/app"
	"github.com/gokatarajesh/find-the-ai/internal/config"
	"github.com/gokatarajesh/find-the-ai/internal/db/repository"
	"github.com/gokatarajesh/find-the-ai/internal/game"
	"github.com/gokatarajesh/find-the-ai/internal/logging"
	"github.com/gokatarajesh/find-the-ai/internal/quote"
	"github.com/gokatarajesh/find-the-ai/internal/quote/ai"
	"github.com/gokatarajesh/find-the-ai/internal/quote/external"
)

func main() {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load("configs/.env")
	}

	cobra.CheckErr(newCmd().Execute())
}

type options struct {
	day    string
	count  int
	filter external.Filter
}

func newCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "seeder",
		Short:         "Prepares the daily question pairs for Find the AI.",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&opts.day, "day", "", "day to act on, YYYY-MM-DD (default: today in UTC)")
	root.PersistentFlags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	populate := &cobra.Command{
		Use:   "populate",
		Short: "Fetch human quotes, paraphrase them and publish the day's pairs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPopulate(cmd, opts)
		},
	}
	fs := populate.Flags()
	fs.IntVarP(&opts.count, "count", "n", 0, "pairs to prepare (default: QUOTES_PER_DAY)")
	fs.IntVar(&opts.filter.MinLength, "min-length", 0, "minimum quote length (default: QUOTES_MIN_LENGTH)")
	fs.IntVar(&opts.filter.MaxLength, "max-length", 0, "maximum quote length (default: QUOTES_MAX_LENGTH)")
	fs.StringVar(&opts.filter.Tags, "tags", "", "quotable tag filter, e.g. wisdom|famous-quotes (default: QUOTES_TAGS)")
	fs.StringVar(&opts.filter.Authors, "author", "", "quotable author slug filter (default: QUOTES_AUTHORS)")

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the pairs published for a day as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShow(cmd, opts)
		},
	}

	root.AddCommand(populate, show)
	root.CompletionOptions.HiddenDefaultCmd = true
	root.SetHelpCommand(&cobra.Command{Hidden: true})
	return root
}

func resolveDay(raw string) (string, error) {
	if raw == "" {
		return game.DayKey(time.Now()), nil
	}
	if _, err := time.Parse(game.DayLayout, raw); err != nil {
		return "", fmt.Errorf("invalid --day %q: want YYYY-MM-DD", raw)
	}
	return raw, nil
}

func mergeFilter(flags external.Filter, cfg config.Quotes) external.Filter {
	if flags.MinLength == 0 {
		flags.MinLength = cfg.MinLength
	}
	if flags.MaxLength == 0 {
		flags.MaxLength = cfg.MaxLength
	}
	if flags.Tags == "" {
		flags.Tags = cfg.Tags
	}
	if flags.Authors == "" {
		flags.Authors = cfg.Authors
	}
	return flags
}

func runPopulate(cmd *cobra.Command, opts *options) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	day, err := resolveDay(opts.day)
	if err != nil {
		return err
	}
	count := opts.count
	if count <= 0 {
		count = cfg.Game.QuotesPerDay
	}

	logger := logging.New(cfg.Name+"-seeder", cfg.Env, cfg.LogLevel)

	q, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer q.Close()

	redisClient, err := app.OpenRedis(ctx, cfg)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable; publishing to the store only")
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	quotes := external.NewQuotableClient(cfg.Quotes.BaseURL, nil)
	paraphraser := ai.NewParaphraser(ai.Config{
		APIKey:       cfg.AI.APIKey,
		BaseURL:      cfg.AI.BaseURL,
		Model:        cfg.AI.Model,
		SystemPrompt: cfg.AI.SystemPrompt,
		Timeout:      cfg.AI.HTTPTimeout,
		MaxAttempts:  cfg.AI.MaxAttempts,
		MaxBackoff:   cfg.AI.MaxBackoff,
	}, repository.NewParaphraseRepository(q), logger)

	preparer := quote.NewPreparer(
		quotes,
		paraphraser,
		app.NewDailyService(q, redisClient, cfg, logger),
		mergeFilter(opts.filter, cfg.Quotes),
		logger,
	)

	start := time.Now()
	pairs, err := preparer.Populate(ctx, day, count)
	if err != nil {
		return fmt.Errorf("populate %s: %w", day, err)
	}
	logger.Info().Str("day", day).Int("pairs", len(pairs)).Dur("took", time.Since(start)).Msg("seeding complete")
	return nil
}

func runShow(cmd *cobra.Command, opts *options) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	day, err := resolveDay(opts.day)
	if err != nil {
		return err
	}
	logger := logging.New(cfg.Name+"-seeder", cfg.Env, cfg.LogLevel)

	q, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer q.Close()

	pairs, err := repository.NewDailySetRepository(q).Get(ctx, day)
	if err != nil {
		return err
	}
	if pairs == nil {
		return fmt.Errorf("no pairs published for %s", day)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{"day": day, "question_pairs": pairs})
}
