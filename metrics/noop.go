// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import "net/http"

// noopProvider hands out a shared meter that drops every sample.
type noopProvider struct{}

var nopMeter nop

func (noopProvider) GetOrCreateCountMeter(string) CountMeter                 { return nopMeter }
func (noopProvider) GetOrCreateCountVecMeter(string, []string) CountVecMeter { return nopMeter }
func (noopProvider) GetOrCreateGaugeMeter(string) GaugeMeter                 { return nopMeter }
func (noopProvider) GetOrCreateHandler() http.Handler                        { return nil }

func (noopProvider) GetOrCreateHistogramVecMeter(string, []string, []int64) HistogramVecMeter {
	return nopMeter
}

type nop struct{}

func (nop) Add(int64)                                  {}
func (nop) Set(int64)                                  {}
func (nop) AddWithLabel(int64, map[string]string)      {}
func (nop) ObserveWithLabels(int64, map[string]string) {}
