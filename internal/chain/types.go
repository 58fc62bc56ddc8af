package chain

import (
	"github.com/gztensor/btcli/internal/balance"
)

// StakeInfo is a single (hotkey, coldkey, netuid) stake position as reported
// by the StakeInfoRuntimeApi. Positions are read fresh per query and never
// persisted.
type StakeInfo struct {
	Hotkey  string
	Coldkey string
	Netuid  uint16

	Stake    balance.Balance
	Locked   balance.Balance
	Emission balance.Balance

	IsRegistered bool
}

// ChildHotkey is one entry of a hotkey's child list on a subnet. Proportion
// is the raw on-chain u64 weight (the full u64 range maps to 100%).
type ChildHotkey struct {
	Hotkey     string
	Proportion uint64
}

// Identity is the on-chain display identity registered for a hotkey or
// coldkey address.
type Identity struct {
	Name string
	URL  string
}

// Display returns the identity name, or the fallback when no identity is
// registered.
func (i Identity) Display(fallback string) string {
	if i.Name != "" {
		return i.Name
	}
	return fallback
}

// IdentityMap maps ss58 addresses to their registered identities.
type IdentityMap map[string]Identity

// DisplayName formats an address with its identity when one is known.
func (m IdentityMap) DisplayName(addr string) string {
	if id, ok := m[addr]; ok && id.Name != "" {
		return id.Name + " (" + addr + ")"
	}
	return addr
}
