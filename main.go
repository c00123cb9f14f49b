// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/AccelByte/extend-mission-control/internal/app"
	"github.com/AccelByte/extend-mission-control/internal/bootstrap"
	"github.com/AccelByte/extend-mission-control/internal/config"
	"github.com/AccelByte/extend-mission-control/pkg/common"
	"github.com/AccelByte/extend-mission-control/pkg/coordinator"
	"github.com/AccelByte/extend-mission-control/pkg/section"
	"github.com/AccelByte/extend-mission-control/pkg/store"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var snapshotTimeout time.Duration

var (
	rootCmd = &cobra.Command{
		Use:          "mission-control",
		Short:        "Keeps a learner's mission control dashboard in sync with the hub",
		SilenceUsage: true,
		RunE:         runDaemon,
	}

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Mount the dashboard and serve it until interrupted (default)",
		RunE:  runDaemon,
	}

	snapshotCmd = &cobra.Command{
		Use:   "snapshot",
		Short: "Load every section once and print the dashboard as JSON",
		RunE:  runSnapshot,
	}
)

func init() {
	snapshotCmd.Flags().DurationVar(&snapshotTimeout, "timeout", 30*time.Second, "maximum wait for the initial load")
	rootCmd.AddCommand(runCmd, snapshotCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	common.ConfigureLogging(cfg.LogLevel, cfg.LogJSON)
	return cfg, nil
}

func runDaemon(cmd *cobra.Command, args []string) error {
	logrus.Infof("starting mission control..")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	application, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return application.Run(ctx)
}

type snapshotOutput struct {
	Dashboard *store.State              `json:"dashboard"`
	Sources   map[string]section.Source `json:"sources"`
	Status    coordinator.Status        `json:"status"`
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// stdout carries the snapshot; keep logs on stderr and quiet
	logrus.SetOutput(os.Stderr)
	if cfg.LogLevel == "info" {
		logrus.SetLevel(logrus.WarnLevel)
	}
	// one-shot: no reconnect loop
	cfg.RealtimeURL = ""

	ctx := cmd.Context()
	dashboard, err := bootstrap.InitDashboard(ctx, cfg)
	if err != nil {
		return err
	}
	defer dashboard.Close()

	if err := dashboard.Coordinator.Mount(ctx); err != nil {
		return err
	}
	defer dashboard.Coordinator.Unmount()

	waitCtx, cancel := context.WithTimeout(ctx, snapshotTimeout)
	defer cancel()
	if err := dashboard.Coordinator.WaitLoaded(waitCtx); err != nil {
		return fmt.Errorf("dashboard did not load within %v: %w", snapshotTimeout, err)
	}

	out := snapshotOutput{
		Dashboard: dashboard.Coordinator.Snapshot(),
		Sources:   make(map[string]section.Source),
		Status:    dashboard.Coordinator.Status(),
	}
	for id, result := range dashboard.Coordinator.Results() {
		out.Sources[id] = result.Source
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
