package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/promptdhq/promptd/config"
	"github.com/promptdhq/promptd/llm"
	"github.com/promptdhq/promptd/logger"
	"github.com/promptdhq/promptd/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse command-line flags
	var (
		configPath = flag.String("config", config.GetConfigPath(), "Path to config file")
		system     = flag.String("system", "", "System prompt")
		buffered   = flag.Bool("buffered", false, "Wait for the full response instead of streaming")
		retry      = flag.Bool("retry", false, "Retry rate-limited and failed requests with backoff")
		logFile    = flag.String("logfile", "", "Path to log file. If not set, logs to stdout/stderr")
		pretty     = flag.Bool("pretty", false, "Use pretty console output (only valid when logfile is not set)")
	)
	flag.Parse()

	if *logFile != "" && *pretty {
		return fmt.Errorf("--logfile and --pretty are mutually exclusive")
	}

	prompt := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if prompt == "" {
		return fmt.Errorf("usage: promptd [flags] <prompt>")
	}

	// Load .env if present; real environment takes precedence
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	if *logFile == "" && cfg.LogFile != "" {
		*logFile = cfg.LogFile
	}
	log, err := logger.InitWithOptions(*logFile, *pretty)
	if err != nil {
		return err
	}

	if err := service.InitializeLLMService(cfg.LLMConfig(), log); err != nil {
		return err
	}
	client, err := service.LLMService()
	if err != nil {
		return err
	}
	client = llm.WrapWithMiddleware(client, llm.NewLoggingMiddleware(log))
	if *retry {
		client = llm.NewRetryClient(client, log)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	req := &llm.Request{
		System:   *system,
		Messages: []llm.Message{llm.NewTextMessage(llm.RoleUser, prompt)},
	}

	if *buffered {
		resp, err := client.Complete(ctx, req)
		if err != nil {
			return err
		}
		fmt.Println(resp.Text)
		log.Info().
			Str("model", resp.Metadata.Model).
			Str("stop_reason", resp.Metadata.StopReason).
			Int64("total_tokens", resp.Usage.TotalTokens).
			Msg("Completion finished")
		return nil
	}

	stream, err := client.Stream(ctx, req)
	if err != nil {
		return err
	}
	defer stream.Close() //nolint:errcheck

	for stream.Next() {
		fmt.Print(stream.Delta())
	}
	fmt.Println()
	return stream.Err()
}
