package common

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"

	"github.com/gztensor/btcli/config"
	"github.com/gztensor/btcli/internal/chain"
	"github.com/gztensor/btcli/internal/keyring"
)

var (
	selectedNetwork      string
	selectedWalletName   string
	selectedWalletPath   string
	selectedWalletHotkey string
)

var (
	// SelectorFlags contains the common selector flags for network/wallet.
	SelectorFlags *flag.FlagSet
	// SelectorNFlags contains the common selector flags for network only.
	SelectorNFlags *flag.FlagSet
)

// Selection contains the network/wallet selection.
type Selection struct {
	NetworkName string
	Endpoint    string

	Wallet keyring.Wallet
}

// GetSelection returns the user-selected network/wallet combination.
func GetSelection(cfg *config.Config) *Selection {
	var s Selection
	s.NetworkName = cfg.Network
	if selectedNetwork != "" {
		s.NetworkName = selectedNetwork
	}

	endpoint, err := cfg.EndpointFor(s.NetworkName)
	cobra.CheckErr(err)
	s.Endpoint = endpoint

	s.Wallet = keyring.Wallet{
		Name:   cfg.Wallet.Name,
		Path:   cfg.Wallet.Path,
		Hotkey: cfg.Wallet.Hotkey,
	}
	if selectedWalletName != "" {
		s.Wallet.Name = selectedWalletName
	}
	if selectedWalletPath != "" {
		s.Wallet.Path = selectedWalletPath
	}
	if selectedWalletHotkey != "" {
		s.Wallet.Hotkey = selectedWalletHotkey
	}

	return &s
}

// PrettyPrintNetwork formats the network name together with its endpoint.
func (s *Selection) PrettyPrintNetwork() string {
	return fmt.Sprintf("%s (%s)", s.NetworkName, s.Endpoint)
}

// Connect establishes a connection to the selected network's RPC endpoint.
// The caller must Close the returned client.
func (s *Selection) Connect(ctx context.Context) (*chain.Subtensor, error) {
	var sub *chain.Subtensor
	err := RunWithSpinner(fmt.Sprintf("Connecting to %s", s.PrettyPrintNetwork()), func() error {
		var err error
		sub, err = chain.Connect(ctx, s.NetworkName, s.Endpoint, Logger())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", s.Endpoint, err)
	}
	return sub, nil
}

func init() {
	SelectorNFlags = flag.NewFlagSet("", flag.ContinueOnError)
	SelectorNFlags.StringVar(&selectedNetwork, "network", "", "explicitly set network to use")

	SelectorFlags = flag.NewFlagSet("", flag.ContinueOnError)
	SelectorFlags.AddFlagSet(SelectorNFlags)
	SelectorFlags.StringVar(&selectedWalletName, "wallet-name", "", "explicitly set wallet to use")
	SelectorFlags.StringVar(&selectedWalletPath, "wallet-path", "", "explicitly set wallet directory to use")
	SelectorFlags.StringVar(&selectedWalletHotkey, "hotkey", "", "explicitly set hotkey to use")
}
