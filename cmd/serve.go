package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"sbml-builder/backend/api/handler"
	"sbml-builder/backend/api/route"
	"sbml-builder/backend/common"
	"sbml-builder/backend/library/ccapp"
	"sbml-builder/backend/library/simulator"
	"sbml-builder/backend/model"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

// shutdownGrace bounds how long in-flight requests may finish after a signal.
const shutdownGrace = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Initialize the schema and start the HTTP gateway",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&portFlag, "port", "p", 0, "listen port (overrides PORT)")
	rootCmd.Flags().IntVarP(&portFlag, "port", "p", 0, "listen port (overrides PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	common.SetupGinLog()
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	common.SysLog("SBML Builder " + common.Version + " starting")

	if err := model.InitDB(cfg); err != nil {
		return err
	}
	defer func() {
		if err := model.CloseDB(); err != nil {
			common.SysError("failed to close database: " + err.Error())
		}
	}()

	modelEngine := ccapp.NewClient(cfg.CCAppURL)
	sim := simulator.NewClient(cfg.AppURL)
	handler.Setup(modelEngine, sim, cfg.HealthTimeout)
	common.SysLog("model engine: " + modelEngine.BaseURL())
	common.SysLog("simulation engine: " + sim.BaseURL())
	common.SysLog(fmt.Sprintf("health probes: %s (timeout %s)",
		strings.Join(handler.HealthChecker.Names(), ", "), handler.HealthChecker.Timeout()))

	server := gin.New()
	route.SetRouter(server, cfg.FrontendDir)

	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.Port),
		Handler: server,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		common.SysLog("authentication: DISABLED, all endpoints are publicly accessible")
		common.SysLog("server listening on port: " + strconv.Itoa(cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	common.SysLog("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	common.SysLog("server stopped")
	return nil
}
