// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import "github.com/vechain/mnreg/metrics"

var (
	metricOpCount          = metrics.LazyLoadCounterVec("registry_op_count", []string{"op", "status"})
	metricOpDuration       = metrics.LazyLoadHistogramVec("registry_op_duration_ms", []string{"op"}, metrics.BucketOps)
	metricPayouts          = metrics.LazyLoadCounterVec("reward_payouts_count", []string{"target"})
	metricActiveNodes      = metrics.LazyLoadGauge("active_masternodes")
	metricActiveCollateral = metrics.LazyLoadGauge("active_collateral_coins")
)
