// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import "github.com/vechain/mnreg/metrics"

var (
	metricBulkWrites = metrics.LazyLoadCounter("db_bulk_write_count")
	metricBulkOps    = metrics.LazyLoadCounter("db_bulk_op_count")
)
