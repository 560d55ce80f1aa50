package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nerdneilsfield/go-doc-humanizer/internal/config"
	"github.com/nerdneilsfield/go-doc-humanizer/internal/logger"
	"github.com/nerdneilsfield/go-doc-humanizer/internal/pipeline"
	"github.com/nerdneilsfield/go-doc-humanizer/internal/prompt"
	"github.com/nerdneilsfield/go-doc-humanizer/pkg/progress"
	"github.com/nerdneilsfield/go-doc-humanizer/pkg/providers"
	"github.com/nerdneilsfield/go-doc-humanizer/pkg/providers/ollama"
	"github.com/nerdneilsfield/go-doc-humanizer/pkg/providers/openai"
	"github.com/spf13/cobra"
)

var (
	cfgFile      string
	inputPath    string
	batchDir     string
	outputPath   string
	providerName string
	modelName    string
	ollamaURL    string
	promptFile   string
	temperature  float64
	maxTokens    int
	timeoutSecs  int
	threads      int
	debugMode    bool

	noPreserveFormatting bool
	noThreading          bool
	noProgress           bool
)

// NewRootCommand builds the humanizer CLI.
func NewRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "humanizer",
		Short: "humanizer rewrites DOCX documents to read more naturally",
		Long: `humanizer feeds each paragraph of a DOCX document through a locally
hosted language model and splices the rewritten text back in place,
preserving the document's visual formatting. Failed paragraphs keep
their original text; the document structure is never reordered.

Backends:
  - ollama: local Ollama instance (default)
  - openai: any OpenAI-compatible chat endpoint`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&inputPath, "input", "i", "", "input docx file path")
	flags.StringVarP(&batchDir, "batch-dir", "b", "", "directory for batch processing")
	flags.StringVarP(&outputPath, "output", "o", "", "output file path (single file mode only)")
	flags.StringVar(&providerName, "provider", "", "rewriter backend: ollama or openai")
	flags.StringVarP(&modelName, "model", "m", "", "model to use")
	flags.StringVar(&ollamaURL, "url", "", "Ollama API URL (default http://localhost:11434)")
	flags.StringVar(&promptFile, "prompt-file", "", "system prompt file (embedded default if absent)")
	flags.Float64VarP(&temperature, "temperature", "t", 0.7, "temperature for text generation (0.0-1.0)")
	flags.IntVar(&maxTokens, "max-tokens", 2000, "maximum tokens per request")
	flags.IntVar(&timeoutSecs, "timeout", 120, "per-request timeout in seconds")
	flags.IntVar(&threads, "threads", 4, "number of concurrent workers")
	flags.BoolVar(&noPreserveFormatting, "no-preserve-formatting", false, "do not preserve document formatting")
	flags.BoolVar(&noThreading, "no-threading", false, "use sequential processing")
	flags.BoolVar(&noProgress, "no-progress", false, "disable the progress bar")
	flags.BoolVar(&debugMode, "debug", false, "enable debug logging")
	flags.StringVar(&cfgFile, "config", "", "config file path")

	rootCmd.MarkFlagsMutuallyExclusive("input", "batch-dir")
	rootCmd.MarkFlagsOneRequired("input", "batch-dir")

	rootCmd.AddCommand(newListModelsCommand())

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log := logger.NewLogger(cfg.Debug)
	defer func() {
		_ = log.Sync()
	}()

	rewriter, err := buildRewriter(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reporter := progress.Nop
	var console *progress.Console
	if !noProgress && !cfg.Debug {
		console = progress.NewConsole()
		reporter = console.Update
		defer console.Stop()
	}

	pipe := pipeline.New(rewriter, pipeline.Options{
		Workers:            cfg.Threads,
		PreserveFormatting: cfg.PreserveFormatting,
	}, log, reporter)

	var results []*pipeline.Result
	if inputPath != "" {
		result, runErr := pipe.Run(ctx, inputPath, outputPath)
		if result != nil {
			results = append(results, result)
		}
		err = runErr
	} else {
		inputs, discErr := discoverInputs(batchDir)
		if discErr != nil {
			return discErr
		}
		if len(inputs) == 0 {
			return fmt.Errorf("no docx files found in %s", batchDir)
		}
		results, err = pipe.RunBatch(ctx, inputs)
	}

	if console != nil {
		console.Stop()
		console = nil
	}

	if len(results) > 0 {
		renderSummary(results)
	}

	if err != nil {
		if errors.Is(err, pipeline.ErrInterrupted) {
			fmt.Fprintln(os.Stderr, color.YellowString("interrupted, no output written for the current document"))
			return err
		}
		return err
	}
	return nil
}

// loadConfig merges the config file with explicitly set flags, flags
// winning.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("provider") {
		cfg.Provider = providerName
	}
	if flags.Changed("model") {
		cfg.Model = modelName
	}
	if flags.Changed("url") {
		cfg.OllamaURL = ollamaURL
	}
	if flags.Changed("prompt-file") {
		cfg.PromptFile = promptFile
	}
	if flags.Changed("temperature") {
		cfg.Temperature = temperature
	}
	if flags.Changed("max-tokens") {
		cfg.MaxTokens = maxTokens
	}
	if flags.Changed("timeout") {
		cfg.Timeout = timeoutSecs
	}
	if flags.Changed("threads") {
		cfg.Threads = threads
	}
	if noThreading {
		cfg.Threads = 1
	}
	if noPreserveFormatting {
		cfg.PreserveFormatting = false
	}
	if debugMode {
		cfg.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildRewriter constructs the configured backend client.
func buildRewriter(cfg *config.Config) (providers.Rewriter, error) {
	systemPrompt := prompt.Load(cfg.PromptFile)

	switch cfg.Provider {
	case "ollama":
		ollamaCfg := ollama.DefaultConfig()
		ollamaCfg.APIEndpoint = cfg.OllamaURL
		ollamaCfg.Model = cfg.Model
		ollamaCfg.Temperature = cfg.Temperature
		ollamaCfg.MaxTokens = cfg.MaxTokens
		ollamaCfg.Timeout = cfg.RequestTimeout()
		ollamaCfg.SystemPrompt = systemPrompt
		ollamaCfg.UseChatAPI = cfg.UseChatAPI
		return ollama.New(ollamaCfg), nil
	case "openai":
		openaiCfg := openai.DefaultConfig()
		openaiCfg.APIEndpoint = cfg.OpenAIURL
		openaiCfg.APIKey = cfg.OpenAIKey
		openaiCfg.Model = cfg.Model
		openaiCfg.Temperature = cfg.Temperature
		openaiCfg.MaxTokens = cfg.MaxTokens
		openaiCfg.Timeout = cfg.RequestTimeout()
		openaiCfg.SystemPrompt = systemPrompt
		return openai.New(openaiCfg), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// renderSummary prints the end-of-run report.
func renderSummary(results []*pipeline.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"File", "Units", "Applied", "Cells", "Change", "Duration"})

	totalSubmitted := 0
	totalApplied := 0
	for _, r := range results {
		t.AppendRow(table.Row{
			r.Input,
			r.Submitted,
			r.Applied,
			fmt.Sprintf("%d/%d", r.CellsDone, r.Cells),
			fmt.Sprintf("%.0f%%", r.ChangeRatio*100),
			r.Duration.Round(time.Millisecond),
		})
		totalSubmitted += r.Submitted
		totalApplied += r.Applied
	}
	t.Render()

	if totalApplied == totalSubmitted {
		fmt.Println(color.GreenString("✓ processed %d/%d units", totalApplied, totalSubmitted))
	} else {
		fmt.Println(color.YellowString("⚠ processed %d/%d units, failed units kept their original text",
			totalApplied, totalSubmitted))
	}
}
