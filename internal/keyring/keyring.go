// Package keyring loads wallet keys from the standard on-disk wallet layout
// (~/.bittensor/wallets/<name>/ with a coldkey, coldkeypub.txt and a hotkeys/
// directory). It only reads keyfiles and derives keypairs; key creation and
// encryption are out of scope.
package keyring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/centrifuge/go-substrate-rpc-client/v4/signature"

	"github.com/gztensor/btcli/internal/chain"
)

// Wallet addresses a named wallet on disk.
type Wallet struct {
	// Name is the wallet directory name.
	Name string
	// Path is the wallets root directory.
	Path string
	// Hotkey is the default hotkey name for this wallet.
	Hotkey string
}

// keyfile is the JSON keyfile layout shared by coldkeys and hotkeys.
type keyfile struct {
	AccountID    string `json:"accountId"`
	PublicKey    string `json:"publicKey"`
	SecretPhrase string `json:"secretPhrase"`
	SecretSeed   string `json:"secretSeed"`
	SS58Address  string `json:"ss58Address"`
}

func (w Wallet) dir() string {
	return filepath.Join(w.Path, w.Name)
}

// ColdkeyPub returns the wallet's coldkey ss58 address without touching any
// secret material.
func (w Wallet) ColdkeyPub() (string, error) {
	kf, err := readKeyfile(filepath.Join(w.dir(), "coldkeypub.txt"))
	if err != nil {
		return "", fmt.Errorf("%w: %v", chain.ErrKeyfile, err)
	}
	if kf.SS58Address == "" {
		return "", fmt.Errorf("%w: coldkeypub has no ss58 address", chain.ErrKeyfile)
	}
	return kf.SS58Address, nil
}

// UnlockColdkey loads the coldkey secret and derives its keypair. Any read,
// parse or derivation failure is reported as ErrKeyfile; callers abort the
// whole command on it.
func (w Wallet) UnlockColdkey() (signature.KeyringPair, error) {
	return w.unlock(filepath.Join(w.dir(), "coldkey"))
}

// HotkeySS58 returns the ss58 address of the named hotkey.
func (w Wallet) HotkeySS58(name string) (string, error) {
	kf, err := readKeyfile(filepath.Join(w.dir(), "hotkeys", name))
	if err != nil {
		return "", fmt.Errorf("%w: %v", chain.ErrKeyfile, err)
	}
	if kf.SS58Address == "" {
		return "", fmt.Errorf("%w: hotkey %q has no ss58 address", chain.ErrKeyfile, name)
	}
	return kf.SS58Address, nil
}

// Hotkeys lists the wallet's hotkey names, sorted.
func (w Wallet) Hotkeys() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(w.dir(), "hotkeys"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list hotkeys: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (w Wallet) unlock(path string) (signature.KeyringPair, error) {
	var zero signature.KeyringPair
	kf, err := readKeyfile(path)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", chain.ErrKeyfile, err)
	}
	secret := kf.SecretPhrase
	if secret == "" {
		secret = kf.SecretSeed
	}
	if secret == "" {
		return zero, fmt.Errorf("%w: keyfile has no secret material", chain.ErrKeyfile)
	}
	kp, err := signature.KeyringPairFromSecret(secret, chain.SS58Prefix)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", chain.ErrKeyfile, err)
	}
	return kp, nil
}

// nacl keyfiles are passphrase-encrypted; decryption is the wallet tool's
// job, not ours.
var encryptedMagic = []byte("$NACL")

func readKeyfile(path string) (*keyfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if bytes.HasPrefix(data, encryptedMagic) {
		return nil, fmt.Errorf("keyfile %s is encrypted; decrypt it with the wallet tool first", path)
	}
	var kf keyfile
	if err := json.Unmarshal(data, &kf); err != nil {
		return nil, fmt.Errorf("keyfile %s is not valid JSON: %w", path, err)
	}
	return &kf, nil
}
