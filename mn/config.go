// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package mn

import (
	"math/big"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the tunable network parameters of the registry.
// Amounts are in wei.
type Config struct {
	CollateralUnit *math.HexOrDecimal256 `yaml:"collateral-unit"`
	CollateralMin  *math.HexOrDecimal256 `yaml:"collateral-min"`
	CollateralMax  *math.HexOrDecimal256 `yaml:"collateral-max"`

	HeartbeatPastBlocks  uint32        `yaml:"heartbeat-past-blocks"`
	HeartbeatMinInterval time.Duration `yaml:"heartbeat-min-interval"`
	HeartbeatMaxAge      time.Duration `yaml:"heartbeat-max-age"`

	QuorumPercent  uint64 `yaml:"quorum-percent"`
	QuorumMinNodes uint64 `yaml:"quorum-min-nodes"`

	BlockReward     *math.HexOrDecimal256 `yaml:"block-reward"`
	SuperblockCycle uint32                `yaml:"superblock-cycle"`
	BlockInterval   time.Duration         `yaml:"block-interval"`
}

// DefaultConfig returns the mainnet parameters.
func DefaultConfig() *Config {
	return &Config{
		CollateralUnit:       (*math.HexOrDecimal256)(Coins(CollateralUnitCoins)),
		CollateralMin:        (*math.HexOrDecimal256)(Coins(CollateralMinCoins)),
		CollateralMax:        (*math.HexOrDecimal256)(Coins(CollateralMaxCoins)),
		HeartbeatPastBlocks:  HeartbeatPastBlocks,
		HeartbeatMinInterval: HeartbeatMinInterval,
		HeartbeatMaxAge:      HeartbeatMaxAge,
		QuorumPercent:        QuorumPercent,
		QuorumMinNodes:       QuorumMinNodes,
		BlockReward:          (*math.HexOrDecimal256)(new(big.Int).Set(BlockReward)),
		SuperblockCycle:      SuperblockCycle,
		BlockInterval:        BlockInterval,
	}
}

// LoadConfig reads a yaml file and overlays it on the default config.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the config for inconsistent values.
func (c *Config) Validate() error {
	for name, v := range map[string]*math.HexOrDecimal256{
		"collateral-unit": c.CollateralUnit,
		"collateral-min":  c.CollateralMin,
		"collateral-max":  c.CollateralMax,
		"block-reward":    c.BlockReward,
	} {
		if v == nil || (*big.Int)(v).Sign() < 0 {
			return errors.Errorf("config: %s must be set and non-negative", name)
		}
	}
	if c.Unit().Sign() == 0 {
		return errors.New("config: collateral-unit must be positive")
	}
	if c.Min().Cmp(c.Unit()) < 0 {
		return errors.New("config: collateral-min must be at least one unit")
	}
	if c.Max().Cmp(c.Min()) < 0 {
		return errors.New("config: collateral-max below collateral-min")
	}
	if c.HeartbeatMinInterval <= 0 || c.HeartbeatMaxAge <= c.HeartbeatMinInterval {
		return errors.New("config: heartbeat-max-age must exceed heartbeat-min-interval")
	}
	if c.HeartbeatPastBlocks == 0 {
		return errors.New("config: heartbeat-past-blocks must be positive")
	}
	if c.QuorumPercent > 100 {
		return errors.New("config: quorum-percent above 100")
	}
	if c.SuperblockCycle == 0 {
		return errors.New("config: superblock-cycle must be positive")
	}
	if c.BlockInterval < time.Second {
		return errors.New("config: block-interval must be at least 1s")
	}
	return nil
}

// Unit returns the collateral unit in wei.
func (c *Config) Unit() *big.Int { return new(big.Int).Set((*big.Int)(c.CollateralUnit)) }

// Min returns the minimum collateral in wei.
func (c *Config) Min() *big.Int { return new(big.Int).Set((*big.Int)(c.CollateralMin)) }

// Max returns the maximum collateral in wei.
func (c *Config) Max() *big.Int { return new(big.Int).Set((*big.Int)(c.CollateralMax)) }

// Reward returns the base block reward in wei.
func (c *Config) Reward() *big.Int { return new(big.Int).Set((*big.Int)(c.BlockReward)) }
