// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:   "data-dir",
		Value:  defaultDataDir(),
		EnvVar: "MNREG_DATA_DIR",
		Usage:  "directory for the registry database",
	}
	inMemoryFlag = cli.BoolFlag{
		Name:   "in-memory",
		EnvVar: "MNREG_IN_MEMORY",
		Usage:  "keep all data in memory, nothing survives a restart",
	}
	configFlag = cli.StringFlag{
		Name:   "config",
		EnvVar: "MNREG_CONFIG",
		Usage:  "path to a yaml file overriding the registry parameters",
	}
	cacheFlag = cli.IntFlag{
		Name:   "cache",
		Value:  64,
		EnvVar: "MNREG_CACHE",
		Usage:  "megabytes of ram allocated to the database cache",
	}
	apiAddrFlag = cli.StringFlag{
		Name:   "api-addr",
		Value:  "localhost:8679",
		EnvVar: "MNREG_API_ADDR",
		Usage:  "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:   "api-cors",
		Value:  "",
		EnvVar: "MNREG_API_CORS",
		Usage:  "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiWritesFlag = cli.BoolFlag{
		Name:   "api-writes",
		EnvVar: "MNREG_API_WRITES",
		Usage:  "enable the write endpoints, the caller is taken from the request body (development only)",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:   "enable-api-logs",
		EnvVar: "MNREG_ENABLE_API_LOGS",
		Usage:  "enables API requests logging",
	}
	apiSlowQueriesThresholdFlag = cli.Uint64Flag{
		Name:   "api-slow-queries-threshold",
		Value:  0,
		EnvVar: "MNREG_API_SLOW_QUERIES_THRESHOLD",
		Usage:  "all queries with duration (in milliseconds) greater than this threshold will be logged",
	}
	verbosityFlag = cli.IntFlag{
		Name:   "verbosity",
		Value:  3,
		EnvVar: "MNREG_VERBOSITY",
		Usage:  "log verbosity (0-5)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:   "json-logs",
		EnvVar: "MNREG_JSON_LOGS",
		Usage:  "output logs in JSON format",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:   "enable-metrics",
		EnvVar: "MNREG_ENABLE_METRICS",
		Usage:  "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:   "metrics-addr",
		Value:  "localhost:2112",
		EnvVar: "MNREG_METRICS_ADDR",
		Usage:  "metrics service listening address",
	}
	enableAdminFlag = cli.BoolFlag{
		Name:   "enable-admin",
		EnvVar: "MNREG_ENABLE_ADMIN",
		Usage:  "enables admin server",
	}
	adminAddrFlag = cli.StringFlag{
		Name:   "admin-addr",
		Value:  "localhost:2113",
		EnvVar: "MNREG_ADMIN_ADDR",
		Usage:  "admin service listening address",
	}
	devFundFlag = cli.StringFlag{
		Name:   "dev-fund",
		EnvVar: "MNREG_DEV_FUND",
		Usage:  "comma separated list of addresses credited with development coins when empty",
	}
	disableNTPFlag = cli.BoolFlag{
		Name:   "disable-ntp",
		EnvVar: "MNREG_DISABLE_NTP",
		Usage:  "skip the clock offset check against NTP",
	}
)
