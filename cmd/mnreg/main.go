// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/mnreg/api"
	"github.com/vechain/mnreg/chain"
	"github.com/vechain/mnreg/cmd/mnreg/httpserver"
	"github.com/vechain/mnreg/health"
	"github.com/vechain/mnreg/log"
	"github.com/vechain/mnreg/metrics"
	"github.com/vechain/mnreg/runtime"
	"github.com/vechain/mnreg/state"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "mnreg")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "mnreg",
		Usage:     "Masternode registry node",
		Copyright: "2025 VeChain Foundation <https://vechain.org/>",
		Flags: []cli.Flag{
			dataDirFlag,
			inMemoryFlag,
			configFlag,
			cacheFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiWritesFlag,
			enableAPILogsFlag,
			apiSlowQueriesThresholdFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			enableAdminFlag,
			adminAddrFlag,
			devFundFlag,
			disableNTPFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()

	defer func() { logger.Info("exited") }()

	logLevel := initLogger(ctx)

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	devFund, err := parseDevFund(ctx)
	if err != nil {
		return err
	}

	metricsURL := ""
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
		url, closeFunc, err := httpserver.StartMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return err
		}
		defer func() { logger.Info("stopping metrics server..."); closeFunc() }()
		metricsURL = url
	}

	db, dataDir, err := openMainDB(ctx)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing main database..."); db.Close() }()

	repo, err := chain.NewRepository(db, uint64(time.Now().Unix()))
	if err != nil {
		return err
	}

	rt := runtime.New(repo, state.New(db), cfg)
	defer func() { logger.Info("closing runtime..."); rt.Close() }()

	if err := fundDevAccounts(rt, devFund, cfg); err != nil {
		return err
	}

	apiHandler, apiClose := api.New(rt, api.Options{
		AllowedOrigins:       ctx.String(apiCorsFlag.Name),
		EnableWrites:         ctx.Bool(apiWritesFlag.Name),
		EnableMetrics:        ctx.Bool(enableMetricsFlag.Name),
		EnableReqLogger:      ctx.Bool(enableAPILogsFlag.Name),
		SlowQueriesThreshold: time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond,
	})
	defer func() { logger.Info("closing subscriptions..."); apiClose() }()

	apiURL, srvClose, err := httpserver.StartAPIServer(ctx.String(apiAddrFlag.Name), apiHandler)
	if err != nil {
		return err
	}
	defer func() { logger.Info("stopping API server..."); srvClose() }()

	adminURL := ""
	if ctx.Bool(enableAdminFlag.Name) {
		url, closeFunc, err := httpserver.StartAdminServer(
			ctx.String(adminAddrFlag.Name),
			logLevel,
			health.New(repo, cfg.BlockInterval),
		)
		if err != nil {
			return err
		}
		defer func() { logger.Info("stopping admin server..."); closeFunc() }()
		adminURL = url
	}

	printStartupMessage(repo, dataDir, apiURL, metricsURL, adminURL)

	group, groupCtx := errgroup.WithContext(exitSignal)
	group.Go(func() error {
		return newProducer(rt, cfg.BlockInterval).run(groupCtx)
	})
	if !ctx.Bool(disableNTPFlag.Name) {
		group.Go(func() error {
			watchClockOffset(groupCtx, cfg.BlockInterval)
			return nil
		})
	}
	return group.Wait()
}
