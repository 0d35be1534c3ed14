package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/agentmesh/agent-endpoint/pkg/cli/config"
	httpctrl "github.com/agentmesh/agent-endpoint/pkg/controller/http"
	"github.com/agentmesh/agent-endpoint/pkg/usecase"
	"github.com/agentmesh/agent-endpoint/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var agentCfg config.Agent
	var storeCfg config.Store
	var backendCfg config.Backend

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8000",
			Sources:     cli.EnvVars("AGENT_ADDR"),
			Destination: &addr,
		},
	}

	// Add shared config flags
	flags = append(flags, agentCfg.Flags()...)
	flags = append(flags, storeCfg.Flags()...)
	flags = append(flags, backendCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the agent HTTP endpoint",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			// Load the agent identity and profile
			profile, err := agentCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load agent profile")
			}

			// Initialize the conversation store based on backend type
			repo, err := storeCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize conversation store")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close conversation store", "error", err.Error())
				}
			}()

			// Initialize the fact backend client
			facts, err := backendCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize fact backend")
			}

			uc := usecase.New(repo, facts, agentCfg.AgentID(), profile)

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server",
					"addr", addr,
					"agent_id", agentCfg.AgentID(),
					"tools", profile.ToolNames(),
				)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
