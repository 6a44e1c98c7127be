// syncctl drives the Bridge catalog sync orchestrator from the command
// line: start jobs, follow their progress, inspect history and health.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/MarketingDevWebexpR/b2b-template-sub010/bridge"
	"github.com/MarketingDevWebexpR/b2b-template-sub010/commerce"
)

func main() {
	var (
		configPath string
		logLevel   string
		timeout    time.Duration
	)

	flag.StringVar(&configPath, "config", "", "Path to commerce.toml (default: search ./ and ./config)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.DurationVar(&timeout, "timeout", 0, "Overall command deadline (default: none; watch runs until terminal)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := newLogger(logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	cfg, err := commerce.LoadConfig(configPath)
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}
	if cfg.Provider != bridge.ProviderName {
		log.Fatal("Sync jobs require the bridge provider", zap.String("provider", cfg.Provider))
	}
	// The CLI exists to drive sync; the config flag is implied.
	cfg.Options.EnableSync = true

	if err := bridge.Register(nil); err != nil {
		log.Fatal("Failed to register provider", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	client, err := commerce.NewClient(ctx, *cfg)
	if err != nil {
		log.Fatal("Failed to build client", zap.Error(err))
	}
	defer func() { _ = client.Close() }()

	bridgeClient, ok := client.(*bridge.Client)
	if !ok {
		log.Fatal("Client is not a bridge client")
	}
	syncSvc, ok := bridgeClient.Sync()
	if !ok {
		log.Fatal("Sync service is disabled on this deployment")
	}

	if err := run(ctx, syncSvc, log, command, args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			printUsage()
		} else {
			log.Error("Command failed", zap.String("command", command), zap.Error(err))
		}
		os.Exit(1)
	}
}

var errUsage = errors.New("syncctl: bad usage")

func run(ctx context.Context, svc *bridge.SyncService, log *zap.Logger, command string, args []string) error {
	switch command {
	case "start":
		return cmdStart(ctx, svc, log, args)
	case "status":
		if len(args) != 1 {
			return fmt.Errorf("%w: status <job-id>", errUsage)
		}
		job, err := svc.GetJob(ctx, args[0])
		if err != nil {
			return err
		}
		printJob(job)
		return nil
	case "watch":
		return cmdWatch(ctx, svc, log, args)
	case "list":
		return cmdList(ctx, svc, args)
	case "cancel":
		if len(args) != 1 {
			return fmt.Errorf("%w: cancel <job-id>", errUsage)
		}
		job, err := svc.Cancel(ctx, args[0])
		if err != nil {
			return err
		}
		log.Info("Job cancelled", zap.String("job_id", job.ID), zap.String("status", string(job.Status)))
		return nil
	case "retry":
		if len(args) != 1 {
			return fmt.Errorf("%w: retry <job-id>", errUsage)
		}
		job, err := svc.Retry(ctx, args[0])
		if err != nil {
			return err
		}
		log.Info("Job re-enqueued", zap.String("job_id", job.ID), zap.String("status", string(job.Status)))
		return nil
	case "logs":
		return cmdLogs(ctx, svc, args)
	case "health":
		health, err := svc.Health(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("status:       %s\n", health.Status)
		fmt.Printf("queue depth:  %d\n", health.QueueDepth)
		fmt.Printf("running jobs: %d\n", health.RunningJobs)
		if health.WorkerStatus != "" {
			fmt.Printf("workers:      %s\n", health.WorkerStatus)
		}
		if health.LastJobAt != nil {
			fmt.Printf("last job at:  %s\n", health.LastJobAt.Format(time.RFC3339))
		}
		return nil
	case "stats":
		stats, err := svc.Stats(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("total jobs:     %d\n", stats.TotalJobs)
		fmt.Printf("completed:      %d\n", stats.CompletedJobs)
		fmt.Printf("failed:         %d\n", stats.FailedJobs)
		fmt.Printf("avg duration:   %dms\n", stats.AvgDuration)
		if stats.LastSuccessAt != nil {
			fmt.Printf("last success:   %s\n", stats.LastSuccessAt.Format(time.RFC3339))
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

func cmdStart(ctx context.Context, svc *bridge.SyncService, log *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("start", flag.ContinueOnError)
	entity := fs.String("entity", "all", "Entity to sync (products, categories, inventory, prices, all)")
	mode := fs.String("mode", "incremental", "Sync mode (full, incremental)")
	filters := fs.String("filters", "", "Comma-separated key=value filters, e.g. category=rings")
	wait := fs.Bool("wait", false, "Block until the job reaches a terminal state")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	input := bridge.StartSyncInput{
		Entity:  bridge.SyncEntity(*entity),
		Mode:    bridge.SyncMode(*mode),
		Filters: parseFilters(*filters),
	}
	job, err := svc.StartSync(ctx, input)
	if err != nil {
		return err
	}
	log.Info("Job started",
		zap.String("job_id", job.ID),
		zap.String("entity", string(job.Entity)),
		zap.String("mode", string(job.Mode)))

	if !*wait {
		fmt.Println(job.ID)
		return nil
	}
	return waitAndReport(ctx, svc, log, job.ID)
}

func cmdWatch(ctx context.Context, svc *bridge.SyncService, log *zap.Logger, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: watch <job-id>", errUsage)
	}
	return waitAndReport(ctx, svc, log, args[0])
}

func waitAndReport(ctx context.Context, svc *bridge.SyncService, log *zap.Logger, jobID string) error {
	job, err := svc.WaitForJob(ctx, jobID, bridge.PollOptions{})
	if job != nil {
		printJob(job)
	}
	if err != nil {
		return err
	}
	log.Info("Job completed",
		zap.String("job_id", job.ID),
		zap.Int("processed", job.Processed),
		zap.Int("failed", job.Failed))
	return nil
}

func cmdList(ctx context.Context, svc *bridge.SyncService, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	page := fs.Int("page", 1, "Page number")
	pageSize := fs.Int("page-size", 20, "Jobs per page")
	entity := fs.String("entity", "", "Filter by entity")
	status := fs.String("status", "", "Filter by status")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	opts := commerce.ListOptions{Page: *page, PageSize: *pageSize, Filters: map[string]string{}}
	if *entity != "" {
		opts.Filters["entity"] = *entity
	}
	if *status != "" {
		opts.Filters["status"] = *status
	}

	result, err := svc.ListJobs(ctx, opts)
	if err != nil {
		return err
	}

	fmt.Printf("%-24s %-12s %-12s %-10s %8s %10s\n", "ID", "ENTITY", "MODE", "STATUS", "PROGRESS", "PROCESSED")
	for _, job := range result.Items {
		fmt.Printf("%-24s %-12s %-12s %-10s %7d%% %10d\n",
			job.ID, job.Entity, job.Mode, job.Status, job.Progress, job.Processed)
	}
	fmt.Printf("page %d of %d jobs\n", result.Page, result.Total)
	return nil
}

func cmdLogs(ctx context.Context, svc *bridge.SyncService, args []string) error {
	fs := flag.NewFlagSet("logs", flag.ContinueOnError)
	page := fs.Int("page", 1, "Page number")
	pageSize := fs.Int("page-size", 50, "Entries per page")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: logs <job-id>", errUsage)
	}

	result, err := svc.Logs(ctx, fs.Arg(0), commerce.ListOptions{Page: *page, PageSize: *pageSize})
	if err != nil {
		return err
	}
	for _, entry := range result.Items {
		line := fmt.Sprintf("%s [%s] %s", entry.Timestamp.Format(time.RFC3339), strings.ToUpper(entry.Level), entry.Message)
		if entry.EntityID != "" {
			line += " (" + entry.EntityID + ")"
		}
		fmt.Println(line)
	}
	return nil
}

func printJob(job *bridge.SyncJob) {
	fmt.Printf("id:        %s\n", job.ID)
	fmt.Printf("entity:    %s\n", job.Entity)
	fmt.Printf("mode:      %s\n", job.Mode)
	fmt.Printf("status:    %s\n", job.Status)
	fmt.Printf("progress:  %d%% (%d/%d, %d failed)\n", job.Progress, job.Processed, job.Total, job.Failed)
	if job.Error != nil && *job.Error != "" {
		fmt.Printf("error:     %s\n", *job.Error)
	}
	if job.StartedAt != nil {
		fmt.Printf("started:   %s\n", job.StartedAt.Format(time.RFC3339))
	}
	if job.FinishedAt != nil {
		fmt.Printf("finished:  %s\n", job.FinishedAt.Format(time.RFC3339))
	}
}

// parseFilters turns "a=1,b=2" into a filter map; malformed pairs are
// dropped.
func parseFilters(s string) map[string]string {
	if s == "" {
		return nil
	}
	filters := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || key == "" {
			continue
		}
		filters[key] = value
	}
	if len(filters) == 0 {
		return nil
	}
	return filters
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg.Build()
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `syncctl - Bridge catalog sync control

Usage:
  syncctl [flags] <command> [args]

Commands:
  start [-entity E] [-mode M] [-filters k=v,...] [-wait]   Enqueue a sync job
  status <job-id>                                          Show one job
  watch <job-id>                                           Follow a job to its terminal state
  list [-page N] [-page-size N] [-entity E] [-status S]    List job history
  cancel <job-id>                                          Cancel a queued or running job
  retry <job-id>                                           Re-enqueue a failed job
  logs [-page N] [-page-size N] <job-id>                   Show a job's execution log
  health                                                   Sync subsystem health
  stats                                                    Aggregate job statistics

Flags:
  -config string      Path to commerce.toml
  -log-level string   Log level (default "info")
  -timeout duration   Overall command deadline
`)
}
