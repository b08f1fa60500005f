package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/coolbeans/lexdate/pkg/candidate"
	"github.com/coolbeans/lexdate/pkg/config"
	"github.com/coolbeans/lexdate/pkg/extract"
	"github.com/coolbeans/lexdate/pkg/lexer"
	"github.com/coolbeans/lexdate/pkg/locale"
	"github.com/coolbeans/lexdate/pkg/model"
	"github.com/coolbeans/lexdate/pkg/types"
	"github.com/coolbeans/lexdate/pkg/watch"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "lexdate",
		Short: "Find calendar dates in unstructured text",
		Long: `Lexdate locates date expressions in contracts, filings and other
free text and reports each one with its normalized value and exact
source span.

Configuration is read from --config (YAML or TOML), then .env and
LEXDATE_* environment variables, then command-line flags.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (.yaml, .yml or .toml)")
	flags.StringP("lang", "l", "", "language tag, e.g. en, de-AT")
	flags.Bool("strict", false, "require complete day/month/year fragments")
	flags.Float64("threshold", 0, "minimum classifier probability")
	flags.Int("window", 0, "classifier feature window in characters")
	flags.String("base-date", "", "base date for partial dates (YYYY-MM-DD)")
	flags.String("model", "", "classifier model file (.yaml or .json)")
	flags.String("locale-dir", "", "directory of locale table overrides")
	flags.Bool("no-second-opinion", false, "disable the strict second-opinion parser")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("format", "", "output format: text or json")
	flags.Bool("no-color", false, "disable colored output")

	rootCmd.AddCommand(findCmd())
	rootCmd.AddCommand(tokensCmd())
	rootCmd.AddCommand(fragmentsCmd())
	rootCmd.AddCommand(localesCmd())
	rootCmd.AddCommand(watchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig merges the config file, environment and flags, and installs
// the default logger.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("lang") {
		cfg.Language, _ = flags.GetString("lang")
	}
	if flags.Changed("strict") {
		cfg.Strict, _ = flags.GetBool("strict")
	}
	if flags.Changed("threshold") {
		cfg.Threshold, _ = flags.GetFloat64("threshold")
	}
	if flags.Changed("window") {
		cfg.Window, _ = flags.GetInt("window")
	}
	if flags.Changed("base-date") {
		cfg.BaseDate, _ = flags.GetString("base-date")
	}
	if flags.Changed("model") {
		cfg.ModelPath, _ = flags.GetString("model")
	}
	if flags.Changed("locale-dir") {
		cfg.LocaleDir, _ = flags.GetString("locale-dir")
	}
	if flags.Changed("no-second-opinion") {
		disabled, _ := flags.GetBool("no-second-opinion")
		cfg.SecondOpinion = !disabled
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("format") {
		cfg.Format, _ = flags.GetString("format")
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	level, _ := cfg.Level()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if noColor, _ := flags.GetBool("no-color"); noColor {
		color.NoColor = true
	}
	return cfg, nil
}

// buildRegistry returns the built-in locales with overrides from the
// configured directory.
func buildRegistry(cfg config.Config) (*locale.Registry, error) {
	registry := locale.DefaultRegistry()
	if cfg.LocaleDir != "" {
		if err := registry.LoadDirectory(cfg.LocaleDir); err != nil {
			return nil, fmt.Errorf("loading locales: %w", err)
		}
	}
	return registry, nil
}

// buildExtractor wires the pipeline. A model that cannot be loaded
// disables the classifier gate instead of failing.
func buildExtractor(cfg config.Config) (*extract.Extractor, error) {
	registry, err := buildRegistry(cfg)
	if err != nil {
		return nil, err
	}

	var second candidate.SecondOpinion
	if cfg.SecondOpinion {
		second = candidate.StrictLibrary{}
	}

	var classifier model.Classifier
	if cfg.ModelPath != "" {
		loaded, err := model.Load(cfg.ModelPath)
		if err != nil {
			slog.Warn("lexdate: classifier unavailable, using general filter only", "path", cfg.ModelPath, "err", err)
		} else {
			classifier = loaded
		}
	}

	return extract.New(registry, candidate.NewDateparserLibrary(), second, classifier), nil
}

// readInput returns the text of the first argument, a file path, or stdin
// when there is no argument or it is "-".
func readInput(args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), "<stdin>", nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), args[0], nil
}

func findCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find [file...]",
		Short: "Find dates in files or stdin",
		Long: `Find dates in each file (or stdin) and print one record per date.

Example:
  lexdate find contract.txt
  lexdate find --lang de --format json gesetz.txt
  echo "due on March 5th, 2019" | lexdate find`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			extractor, err := buildExtractor(cfg)
			if err != nil {
				return err
			}
			inline, _ := cmd.Flags().GetString("text")

			inputs := args
			if len(inputs) == 0 {
				inputs = []string{"-"}
			}
			if inline != "" {
				inputs = []string{"<text>"}
			}
			report := map[string][]types.DateAnnotation{}
			var order []string
			for _, input := range inputs {
				text, name := inline, input
				if inline == "" {
					var err error
					text, name, err = readInput([]string{input})
					if err != nil {
						return err
					}
				}
				dates, err := extractor.Extract(text, cfg.Options())
				if err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
				report[name] = dates
				order = append(order, name)
			}

			if cfg.Format == "json" {
				return printJSON(report, order)
			}
			for _, name := range order {
				printDates(name, report[name], len(order) > 1)
			}
			return nil
		},
	}
	cmd.Flags().StringP("text", "t", "", "search this text instead of files")
	return cmd
}

func printJSON(report map[string][]types.DateAnnotation, order []string) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if len(order) == 1 {
		return encoder.Encode(report[order[0]])
	}
	return encoder.Encode(report)
}

func printDates(name string, dates []types.DateAnnotation, header bool) {
	sourceColor := color.New(color.FgGreen)
	valueColor := color.New(color.FgCyan)
	dimColor := color.New(color.Faint)

	if header {
		color.New(color.Bold).Printf("%s\n", name)
	}
	if len(dates) == 0 {
		dimColor.Println("  no dates found")
		return
	}
	for _, d := range dates {
		value := d.Value.Format("2006-01-02")
		if d.Value.Hour() != 0 || d.Value.Minute() != 0 || d.Value.Second() != 0 {
			value = d.Value.Format(time.RFC3339)
		}
		fmt.Printf("  %s  ", dimColor.Sprintf("[%d:%d]", d.Start, d.End))
		valueColor.Printf("%-25s", value)
		sourceColor.Printf("  %q", d.Source)
		if d.Probability != nil {
			dimColor.Printf("  p=%.2f", *d.Probability)
		}
		fmt.Println()
	}
}

func tokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file]",
		Short: "Show the token stream of the date lexer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			tokenizer, err := localeTokenizer(cfg)
			if err != nil {
				return err
			}
			text, _, err := readInput(args)
			if err != nil {
				return err
			}

			groupColor := color.New(color.FgYellow)
			for _, token := range tokenizer.Tokenize(text) {
				if token.Group == lexer.GroupGap {
					continue
				}
				fmt.Printf("%5d %5d  ", token.Start, token.End)
				groupColor.Printf("%-16s", token.Group)
				fmt.Printf("%q\n", token.Text)
			}
			return nil
		},
	}
}

func fragmentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fragments [file]",
		Short: "Show merged date fragments and their sanitized candidates",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			registry, err := buildRegistry(cfg)
			if err != nil {
				return err
			}
			loc, err := registry.Resolve(cfg.Language)
			if err != nil {
				return err
			}
			text, _, err := readInput(args)
			if err != nil {
				return err
			}

			rejected := color.New(color.FgRed)
			accepted := color.New(color.FgGreen)
			for _, fragment := range loc.Tokenizer().FindFragments(text) {
				c, ok := candidate.Prepare(fragment, cfg.Strict, loc.StrictPolicy())
				if !ok {
					rejected.Printf("%s  rejected\n", fragment)
					continue
				}
				accepted.Printf("%s  -> %s\n", fragment, c)
			}
			return nil
		},
	}
}

func localesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "List the available locales",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			registry, err := buildRegistry(cfg)
			if err != nil {
				return err
			}

			codeColor := color.New(color.Bold)
			for _, l := range registry.List() {
				policy := l.StrictPolicy()
				codeColor.Printf("%-4s", l.Code())
				fmt.Printf("  search=%-9s languages=%-8s strict=%d/%d months=%d\n",
					l.Search(), strings.Join(l.Languages(), ","),
					policy.DigitGroups, policy.MonthDigitGroups,
					len(l.Table().Vocabulary.Months))
			}
			return nil
		},
	}
}

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Re-extract dates whenever documents in a directory change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			extractor, err := buildExtractor(cfg)
			if err != nil {
				return err
			}
			patterns, _ := cmd.Flags().GetStringSlice("pattern")
			debounce, _ := cmd.Flags().GetDuration("debounce")
			reload, _ := cmd.Flags().GetBool("reload-locales")

			watcher, err := watch.New(watch.Config{
				Dir:      args[0],
				Patterns: patterns,
				Debounce: debounce,
				Options:  cfg.Options(),
			}, extractor)
			if err != nil {
				return err
			}
			watcher.OnResult(func(r watch.Result) {
				if r.Err != nil {
					slog.Error("lexdate: extraction failed", "run", r.RunID, "path", r.Path, "err", r.Err)
					return
				}
				if cfg.Format == "json" {
					_ = json.NewEncoder(os.Stdout).Encode(map[string]any{
						"run_id": r.RunID, "path": r.Path, "dates": r.Dates,
					})
					return
				}
				printDates(r.Path, r.Dates, true)
			})

			if reload && cfg.LocaleDir != "" {
				if err := extractor.Registry().Watch(); err != nil {
					return err
				}
				defer extractor.Registry().StopWatch()
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := watcher.Start(ctx); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Watching %s (Ctrl-C to stop)\n", args[0])
			<-ctx.Done()
			return watcher.Stop()
		},
	}
	cmd.Flags().StringSlice("pattern", nil, "file name patterns (default *.txt, *.md)")
	cmd.Flags().Duration("debounce", watch.DefaultDebounce, "quiet period before processing a change")
	cmd.Flags().Bool("reload-locales", false, "reload locale tables from --locale-dir when they change")
	return cmd
}

// localeTokenizer returns the tokenizer of the configured language.
func localeTokenizer(cfg config.Config) (*lexer.Tokenizer, error) {
	registry, err := buildRegistry(cfg)
	if err != nil {
		return nil, err
	}
	loc, err := registry.Resolve(cfg.Language)
	if err != nil {
		return nil, err
	}
	return loc.Tokenizer(), nil
}
