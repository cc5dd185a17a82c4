// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/beevik/ntp"
	"github.com/ethereum/go-ethereum/common"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/mnreg/chain"
	"github.com/vechain/mnreg/kv"
	"github.com/vechain/mnreg/log"
	"github.com/vechain/mnreg/lvldb"
	"github.com/vechain/mnreg/mn"
	"github.com/vechain/mnreg/runtime"
)

const ntpServer = "pool.ntp.org"

func initLogger(ctx *cli.Context) *slog.LevelVar {
	logLevel := new(slog.LevelVar)
	logLevel.Set(log.FromLegacyLevel(ctx.Int(verbosityFlag.Name)))

	if ctx.Bool(jsonLogsFlag.Name) {
		log.SetDefault(log.JSONHandlerWithLevel(os.Stderr, logLevel))
		return logLevel
	}
	fd := os.Stderr.Fd()
	useColor := (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)) && os.Getenv("TERM") != "dumb"
	log.SetDefault(log.NewTerminalHandlerWithLevel(os.Stderr, logLevel, useColor))
	return logLevel
}

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".mnreg")
	}
	return ""
}

func loadConfig(ctx *cli.Context) (*mn.Config, error) {
	path := ctx.String(configFlag.Name)
	if path == "" {
		return mn.DefaultConfig(), nil
	}
	cfg, err := mn.LoadConfig(path)
	if err != nil {
		return nil, errors.WithMessagef(err, "load config [%v]", path)
	}
	return cfg, nil
}

func parseAddresses(s string) ([]mn.Address, error) {
	var addrs []mn.Address
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		addr, err := mn.ParseAddress(item)
		if err != nil {
			return nil, errors.WithMessagef(err, "parse address [%v]", item)
		}
		addrs = append(addrs, *addr)
	}
	return addrs, nil
}

func parseDevFund(ctx *cli.Context) ([]mn.Address, error) {
	addrs, err := parseAddresses(ctx.String(devFundFlag.Name))
	if err != nil {
		return nil, errors.WithMessage(err, devFundFlag.Name)
	}
	return addrs, nil
}

func openMainDB(ctx *cli.Context) (kv.StoreCloser, string, error) {
	if ctx.Bool(inMemoryFlag.Name) {
		db, err := lvldb.NewMem()
		return db, "Memory", err
	}

	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return nil, "", errors.New("unable to infer default data dir, use -" + dataDirFlag.Name + " to specify")
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, "", errors.Wrapf(err, "create data dir [%v]", dataDir)
	}
	dir := filepath.Join(dataDir, "main.db")
	db, err := lvldb.New(dir, lvldb.Options{
		CacheSize:              ctx.Int(cacheFlag.Name),
		OpenFilesCacheCapacity: 500,
	})
	if err != nil {
		return nil, "", errors.Wrapf(err, "open main database [%v]", dir)
	}
	return db, dataDir, nil
}

// fundDevAccounts credits each empty account with enough coins to lock the maximum collateral.
func fundDevAccounts(rt *runtime.Runtime, addrs []mn.Address, cfg *mn.Config) error {
	for _, addr := range addrs {
		balance, err := rt.Balance(addr)
		if err != nil {
			return err
		}
		if balance.Sign() > 0 {
			continue
		}
		if err := rt.Credit(addr, cfg.Max()); err != nil {
			return errors.WithMessagef(err, "fund [%v]", addr)
		}
		logger.Info("funded development account", "addr", addr, "amount", cfg.Max())
	}
	return nil
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

func checkClockOffset(tolerance time.Duration) {
	resp, err := ntp.Query(ntpServer)
	if err != nil {
		logger.Debug("failed to access NTP", "err", err)
		return
	}
	offset := resp.ClockOffset
	if offset < 0 {
		offset = -offset
	}
	if offset > tolerance {
		logger.Warn("clock offset detected, heartbeats may be rejected", "offset", common.PrettyDuration(resp.ClockOffset))
	}
}

// watchClockOffset checks the local clock at start and hourly until ctx is done.
func watchClockOffset(ctx context.Context, blockInterval time.Duration) {
	tolerance := blockInterval / 2
	checkClockOffset(tolerance)

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			checkClockOffset(tolerance)
		}
	}
}

func printStartupMessage(repo *chain.Repository, dataDir, apiURL, metricsURL, adminURL string) {
	best := repo.BestBlock()
	if metricsURL == "" {
		metricsURL = "Disabled"
	}
	if adminURL == "" {
		adminURL = "Disabled"
	}

	fmt.Printf(`Starting mnreg %v
    Best block  [ #%v %v ]
    Data dir    [ %v ]
    API portal  [ %v ]
    Metrics     [ %v ]
    Admin       [ %v ]
`,
		fullVersion(),
		best.Number(), best.ID(),
		dataDir,
		apiURL,
		metricsURL,
		adminURL)
}
