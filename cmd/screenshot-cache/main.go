package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"go-screenshot-cache/internal/cache"
	"go-screenshot-cache/internal/config"
	"go-screenshot-cache/internal/models"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "screenshot-cache",
	Short: "Capture web page screenshots and cache them in object storage.",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", GetConfigPath(), "config file")

	serveCmd := &cobra.Command{
		Use:          "serve",
		Short:        "Start the HTTP server.",
		Args:         cobra.NoArgs,
		RunE:         func(cmd *cobra.Command, args []string) error { return serve(cmd.Context()) },
		SilenceUsage: true,
	}

	var captureURL string
	captureCmd := &cobra.Command{
		Use:          "capture --url <url>",
		Short:        "Capture one URL through the cache and print the result.",
		Args:         cobra.NoArgs,
		RunE:         func(cmd *cobra.Command, args []string) error { return captureOnce(cmd.Context(), captureURL) },
		SilenceUsage: true,
	}
	captureCmd.Flags().StringVar(&captureURL, "url", "", "page to capture")
	_ = captureCmd.MarkFlagRequired("url")

	var keyURL string
	keyCmd := &cobra.Command{
		Use:          "key --url <url>",
		Short:        "Print the cache key for a URL.",
		Args:         cobra.NoArgs,
		RunE:         func(cmd *cobra.Command, args []string) error { return printKey(cmd, keyURL) },
		SilenceUsage: true,
	}
	keyCmd.Flags().StringVar(&keyURL, "url", "", "page URL")
	_ = keyCmd.MarkFlagRequired("url")

	rootCmd.AddCommand(serveCmd, captureCmd, keyCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func serve(ctx context.Context) error {
	root, err := NewCompositionRoot(ctx, configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	// Ensure cleanup on exit
	defer func() {
		if err := root.Cleanup(); err != nil {
			root.Logger.Error("Failed to cleanup resources", zap.Error(err))
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- root.HTTPServer.Start(root.Config.Server.Listen)
	}()

	// Wait for interrupt signal to gracefully shutdown
	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			root.Logger.Error("HTTP server failed", zap.Error(err))
			return err
		}
	}

	root.Logger.Info("Shutting down server...")

	_, _, shutdownTimeout := root.Config.GetServerTimeouts()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := root.HTTPServer.Stop(shutdownCtx); err != nil {
		root.Logger.Error("HTTP server forced to shutdown", zap.Error(err))
	}

	root.Logger.Info("Server exited")
	return nil
}

func captureOnce(ctx context.Context, url string) error {
	root, err := NewCompositionRoot(ctx, configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer func() {
		if err := root.Cleanup(); err != nil {
			root.Logger.Error("Failed to cleanup resources", zap.Error(err))
		}
	}()

	result, err := root.CaptureService.Handle(ctx, models.CaptureRequest{URL: url})
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func printKey(cmd *cobra.Command, url string) error {
	cfg, err := config.LoadConfig(configPath, zap.NewNop())
	if err != nil {
		return err
	}

	key, err := cache.NewKeyDeriver(cfg.Capture.Format).Derive(url)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), key)
	return err
}
