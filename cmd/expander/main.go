package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lisanmuaddib/expander-go/internal/expanderconfig"
	"github.com/lisanmuaddib/expander-go/pkg/expand"
	"github.com/lisanmuaddib/expander-go/pkg/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagCount       int
	flagProvider    string
	flagModel       string
	flagTemperature float64
	flagMaxTokens   int
	flagTimeout     time.Duration
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expander [query]",
		Short: "Expand a search query into intent-preserving paraphrases",
		Long: `expander sends a search query to a hosted language model and prints
several reworded variants that preserve the original intent, one per line.
Without a query argument it reads queries interactively from stdin.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         run,
	}

	cmd.Flags().IntVarP(&flagCount, "count", "n", 3, "number of paraphrases to request")
	cmd.Flags().StringVar(&flagProvider, "provider", "", "completion provider (huggingface or openai, default from EXPANDER_PROVIDER)")
	cmd.Flags().StringVar(&flagModel, "model", "", "override the provider's configured model")
	cmd.Flags().Float64Var(&flagTemperature, "temperature", 0, "sampling temperature (0 uses the provider default)")
	cmd.Flags().IntVar(&flagMaxTokens, "max-tokens", 0, "completion length cap (0 uses the provider default)")
	cmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "overall deadline for one expansion (0 uses the provider default)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			logrus.WithError(err).Warn("Error loading .env file")
		}
	}

	log := newLogger()

	if flagProvider == "" {
		flagProvider = os.Getenv("EXPANDER_PROVIDER")
	}

	llmClient, err := expanderconfig.ConfigureLLM(expanderconfig.ProviderConfig{
		Provider: flagProvider,
		Logger:   log,
	})
	if err != nil {
		return err
	}

	expander, err := expand.New(expand.Config{
		LLM:    llmClient,
		Logger: log,
	})
	if err != nil {
		return err
	}

	// Cancel in-flight expansions on Ctrl-C
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		cancel()
	}()

	if len(args) == 1 {
		return expandOnce(ctx, expander, args[0])
	}
	return runInteractive(ctx, expander, log)
}

func expandOnce(ctx context.Context, expander *expand.Expander, query string) error {
	if flagTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flagTimeout)
		defer cancel()
	}

	result, err := expander.Expand(ctx, expand.Request{
		Query:       query,
		Count:       flagCount,
		Temperature: flagTemperature,
		MaxTokens:   flagMaxTokens,
		Model:       flagModel,
	})
	if err != nil {
		return err
	}

	for _, variant := range result.Variants {
		fmt.Println(variant)
	}
	return nil
}

// runInteractive reads queries from stdin until EOF or a blank line. A
// failed expansion is reported and the loop continues.
func runInteractive(ctx context.Context, expander *expand.Expander, log *logrus.Logger) error {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(os.Stderr, "query> ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			break
		}
		if err := expandOnce(ctx, expander, query); err != nil {
			if ctx.Err() != nil {
				return err
			}
			log.WithError(err).Error("Expansion failed")
		}
	}
	return scanner.Err()
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if os.Getenv("LOG_FORMAT") == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(logging.NewColoredJSONFormatter())
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if level, err := logrus.ParseLevel(logLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.SetLevel(logrus.InfoLevel)
		if logLevel != "" {
			log.WithFields(logrus.Fields{
				"attempted_level": logLevel,
				"default_level":   "INFO",
			}).Warn("Invalid log level specified, defaulting to INFO")
		}
	}
	return log
}
