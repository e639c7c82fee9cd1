package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/behark/ai/pkg/audit"
	"github.com/behark/ai/pkg/bridge"
	"github.com/behark/ai/pkg/cli"
	"github.com/behark/ai/pkg/config"
	"github.com/behark/ai/pkg/frontend"
	"github.com/behark/ai/pkg/gateway"
	"github.com/behark/ai/pkg/platform"
	"github.com/behark/ai/pkg/providers"
	"github.com/behark/ai/pkg/sessions"
	"github.com/behark/ai/pkg/telemetry/logging"
	"github.com/behark/ai/pkg/telemetry/metrics"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the platform gateway",
	Long: `Start the platform gateway with the specified configuration.

The gateway listens on the configured address, bridges OpenAI-style chat
requests to the native provider API, and proxies the OpenWebUI frontend
under /ui.

Examples:
  # Start with default config
  behar run

  # Start with custom config
  behar run --config /etc/behar/config.yaml

  # Override listen address
  behar run --listen 0.0.0.0:8001

  # Validate config without starting the gateway
  behar run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address (host:port)")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting the gateway")
}

func runServer(cmd *cobra.Command, args []string) error {
	// A local .env feeds the environment override pass; a missing file is
	// not an error.
	_ = godotenv.Load()

	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		host, portStr, err := net.SplitHostPort(runFlags.listenAddress)
		if err != nil {
			return cli.NewConfigError("server", fmt.Sprintf("invalid listen address %q: %v", runFlags.listenAddress, err))
		}
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return cli.NewConfigError("server.port", fmt.Sprintf("invalid port %q", portStr))
		}
		cfg.Server.Host = host
		cfg.Server.Port = port
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}

	logger, err := logging.NewFromConfig(cfg.Telemetry.Logging)
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}
	slog.SetDefault(logger.Slog())

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	printBanner(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Component registry seeded in the order the platform brings its
	// subsystems up. The provider manager adjusts the ollama entry as
	// probing progresses.
	state := platform.NewState()
	state.SetStatus(platform.StatusRunning)
	state.SetComponent(platform.ComponentAPI, platform.ConditionActive)
	state.SetComponent(platform.ComponentConsciousness, platform.ConditionActive)
	state.SetComponent(platform.ComponentAgents, platform.ConditionActive)
	state.SetComponent(platform.ComponentFrontend, platform.ConditionAvailable)
	state.SetComponent(platform.ComponentOpenWebUI, platform.ConditionProxied)

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)

	manager, err := providers.NewManager(&cfg.Providers, state, collector, logger)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	defer manager.Close()

	// The first probe runs in the background so a slow provider cannot
	// stall startup; chat requests degrade to fallback replies until it
	// settles.
	go manager.Probe(ctx)
	if err := manager.StartReprobe(ctx); err != nil {
		logger.Warn("periodic re-probe not started", "error", err)
	}
	fmt.Printf("✓ Provider manager started (%s)\n", cfg.Providers.Ollama.BaseURL)

	proxy := frontend.NewProxy(cfg.Frontend, collector, logger)
	defer proxy.Close()
	fmt.Printf("✓ Frontend proxy ready (%s)\n", cfg.Frontend.BaseURL)

	var recorder *audit.Recorder
	if cfg.Audit.Enabled {
		store, err := audit.NewStore(&cfg.Audit, logger)
		if err != nil {
			return cli.NewCommandError("run", err)
		}
		defer store.Close()

		recorder = audit.NewRecorder(store, cfg.Audit.Recorder, logger)
		defer recorder.Close()

		if cfg.Audit.Retention.PruneSchedule != "" {
			pruner := audit.NewPruner(store, cfg.Audit.Retention, logger)
			if err := pruner.Start(ctx); err != nil {
				logger.Warn("retention scheduler not started", "error", err)
			} else {
				defer pruner.Stop()
			}
		}

		fmt.Printf("✓ Audit store initialized (%s)\n", cfg.Audit.Backend)
	}

	sessionStore, err := sessions.NewStore(&cfg.Sessions)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	defer sessionStore.Close()
	tracker := sessions.NewTracker(sessionStore, logger)
	fmt.Printf("✓ Session store initialized (%s)\n", cfg.Sessions.Backend)

	// Watch the config file when one exists so reloads pick up runtime
	// tunable settings without a restart.
	if _, statErr := os.Stat(cfgFile); statErr == nil {
		watcher, werr := config.NewWatcher(&config.WatcherConfig{Path: cfgFile}, logger.Slog())
		if werr != nil {
			logger.Warn("config watcher unavailable", "error", werr)
		} else {
			go func() {
				if err := watcher.Watch(ctx, func() error {
					return config.ReloadConfig(cfgFile)
				}); err != nil {
					logger.Warn("config watcher stopped", "error", err)
				}
			}()
			defer watcher.Stop()
		}
	}

	srv := gateway.NewServer(cfg, gateway.Deps{
		Logger:    logger,
		Collector: collector,
		State:     state,
		Providers: manager,
		Frontend:  proxy,
		Bridge:    bridge.New(&cfg.Bridge, manager, logger),
		Recorder:  recorder,
		Tracker:   tracker,
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start(ctx)
	}()

	addr := cfg.Server.ListenAddress()
	if err := waitForServerReady(addr, 5*time.Second); err != nil {
		select {
		case serr := <-errChan:
			if serr != nil {
				return cli.NewCommandError("run", serr)
			}
		default:
		}
		return cli.NewCommandError("run", err)
	}

	fmt.Println()
	fmt.Printf("✓ Server listening on %s\n", addr)
	fmt.Printf("✓ Health endpoint: http://%s/health\n", addr)
	fmt.Printf("✓ Metrics endpoint: http://%s%s\n", addr, cfg.Telemetry.Metrics.Path)
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for a shutdown signal or a server error. The server handles
	// signals itself as well; Stop covers the case where this select wins.
	sigChan := cli.WaitForShutdown()

	select {
	case err := <-errChan:
		if err != nil {
			return cli.NewCommandError("run", err)
		}
		return nil
	case sig := <-sigChan:
		fmt.Printf("\nReceived signal %s, shutting down gracefully...\n", sig)
		srv.Stop()
		if err := <-errChan; err != nil {
			return cli.NewCommandError("run", err)
		}
		fmt.Println("✓ Server stopped")
		return nil
	}
}

// printBanner prints the startup banner with the feature summary and the
// access points the gateway exposes.
func printBanner(cfg *config.Config) {
	addr := cfg.Server.ListenAddress()

	fmt.Printf("🎉 %s v%s - Enhanced with OpenWebUI & LLM Chat\n", platform.ProductName, Version)
	fmt.Printf("Loading configuration from: %s\n", cfgFile)
	fmt.Println("✓ Configuration loaded")
	fmt.Println()
	fmt.Printf("🌐 Starting server on http://%s\n", addr)
	fmt.Printf("📍 Frontend: %s\n", cfg.Frontend.BaseURL)
	fmt.Printf("📍 Provider: %s\n", cfg.Providers.Ollama.BaseURL)
	fmt.Println()
	fmt.Println("✨ Features Available:")
	fmt.Println("  💬 LLM Chat Integration")
	fmt.Println("  🎨 OpenWebUI Frontend")
	fmt.Println("  🧠 Consciousness API")
	fmt.Println("  🤖 Agent Management")
	fmt.Println("  💾 Memory System")
	fmt.Println("  📈 Trading Interface")
	fmt.Println("  📊 Health Monitoring")
	fmt.Println()
	fmt.Println("🚀 Access Points:")
	fmt.Printf("  • Main Dashboard: http://%s/\n", addr)
	fmt.Printf("  • Chat Interface: http://%s/chat\n", addr)
	fmt.Printf("  • OpenWebUI: http://%s/ui\n", addr)
	fmt.Printf("  • Metrics: http://%s%s\n", addr, cfg.Telemetry.Metrics.Path)
	fmt.Printf("  • Health Check: http://%s/health\n", addr)
	fmt.Println()
}

// waitForServerReady polls the health endpoint until the listener answers
// or the timeout expires.
func waitForServerReady(address string, timeout time.Duration) error {
	host, port, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	if host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	url := fmt.Sprintf("http://%s/health", net.JoinHostPort(host, port))

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	return fmt.Errorf("server not ready after %s", timeout)
}
