package keyring

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gztensor/btcli/internal/chain"
)

// Well-known development account; never holds real funds.
const aliceURI = "bottom drive obey lake curtain smoke basket hold race lonely fit walk//Alice"

func writeWallet(t *testing.T, root, name string) Wallet {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "hotkeys"), 0o700))

	coldkey := `{"secretPhrase": "` + aliceURI + `", "ss58Address": "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "coldkey"), []byte(coldkey), 0o600))

	coldkeypub := `{"ss58Address": "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "coldkeypub.txt"), []byte(coldkeypub), 0o600))

	hotkey := `{"secretPhrase": "` + aliceURI + `", "ss58Address": "5FHneW46xGXgs5mUiveU4sbTyGBzmstUspZC92UhjJM694ty"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hotkeys", "default"), []byte(hotkey), 0o600))

	return Wallet{Name: name, Path: root, Hotkey: "default"}
}

func TestColdkeyPub(t *testing.T) {
	require := require.New(t)
	w := writeWallet(t, t.TempDir(), "w1")

	addr, err := w.ColdkeyPub()
	require.NoError(err)
	require.Equal("5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY", addr)
}

func TestUnlockColdkey(t *testing.T) {
	require := require.New(t)
	w := writeWallet(t, t.TempDir(), "w1")

	kp, err := w.UnlockColdkey()
	require.NoError(err)
	require.NotEmpty(kp.PublicKey)
	require.NotEmpty(kp.Address)
}

func TestUnlockMissingKeyfile(t *testing.T) {
	require := require.New(t)
	w := Wallet{Name: "absent", Path: t.TempDir(), Hotkey: "default"}

	_, err := w.UnlockColdkey()
	require.ErrorIs(err, chain.ErrKeyfile)
}

func TestUnlockEncryptedKeyfile(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	w := writeWallet(t, dir, "w1")
	require.NoError(os.WriteFile(filepath.Join(dir, "w1", "coldkey"), []byte("$NACL\x01\x02garbage"), 0o600))

	_, err := w.UnlockColdkey()
	require.ErrorIs(err, chain.ErrKeyfile)
	require.Contains(err.Error(), "encrypted")
}

func TestUnlockCorruptKeyfile(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	w := writeWallet(t, dir, "w1")
	require.NoError(os.WriteFile(filepath.Join(dir, "w1", "coldkey"), []byte("{not json"), 0o600))

	_, err := w.UnlockColdkey()
	require.ErrorIs(err, chain.ErrKeyfile)
}

func TestHotkeys(t *testing.T) {
	require := require.New(t)
	w := writeWallet(t, t.TempDir(), "w1")

	names, err := w.Hotkeys()
	require.NoError(err)
	require.Equal([]string{"default"}, names)

	addr, err := w.HotkeySS58("default")
	require.NoError(err)
	require.Equal("5FHneW46xGXgs5mUiveU4sbTyGBzmstUspZC92UhjJM694ty", addr)

	// Wallet without a hotkeys dir lists nothing.
	empty := Wallet{Name: "none", Path: t.TempDir()}
	names, err = empty.Hotkeys()
	require.NoError(err)
	require.Empty(names)
}
