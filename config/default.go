package config

import (
	"os"
	"path/filepath"
)

// Default is the default config that should be used in case no configuration
// file exists.
var Default = Config{
	Network: "finney",
	Networks: map[string]*Network{
		"finney":  {Endpoint: "wss://entrypoint-finney.opentensor.ai:443"},
		"test":    {Endpoint: "wss://test.finney.opentensor.ai:443"},
		"archive": {Endpoint: "wss://archive.chain.opentensor.ai:443"},
		"local":   {Endpoint: "ws://127.0.0.1:9944"},
	},
	Wallet: Wallet{
		Name:   "default",
		Path:   defaultWalletPath(),
		Hotkey: "default",
	},
	SafeStaking: SafeStaking{
		RateTolerance: 0.005,
		AllowPartial:  false,
	},
}

func defaultWalletPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".bittensor", "wallets")
	}
	return filepath.Join(home, ".bittensor", "wallets")
}
