package chain

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	gsrpc "github.com/centrifuge/go-substrate-rpc-client/v4"
	"github.com/centrifuge/go-substrate-rpc-client/v4/registry/retriever"
	regstate "github.com/centrifuge/go-substrate-rpc-client/v4/registry/state"
	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	"github.com/centrifuge/go-substrate-rpc-client/v4/signature"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	"github.com/rs/zerolog"
	"github.com/vedhavyas/go-subkey/v2"

	"github.com/gztensor/btcli/internal/balance"
	"github.com/gztensor/btcli/internal/subnet"
)

// SS58Prefix is the address prefix used by the Bittensor network.
const SS58Prefix = 42

const palletName = "SubtensorModule"

// Subtensor is the Client implementation over a substrate RPC endpoint.
type Subtensor struct {
	api     *gsrpc.SubstrateAPI
	meta    *types.Metadata
	events  retriever.EventRetriever
	network string
	log     zerolog.Logger
}

var _ Client = (*Subtensor)(nil)

// Connect dials the given websocket endpoint and loads chain metadata.
func Connect(_ context.Context, network, endpoint string, log zerolog.Logger) (*Subtensor, error) {
	api, err := gsrpc.NewSubstrateAPI(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", endpoint, err)
	}
	meta, err := api.RPC.State.GetMetadataLatest()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chain metadata: %w", err)
	}
	events, err := retriever.NewDefaultEventRetriever(regstate.NewEventProvider(api.RPC.State), api.RPC.State)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize event decoder: %w", err)
	}
	log.Debug().Str("network", network).Str("endpoint", endpoint).Msg("connected")
	return &Subtensor{api: api, meta: meta, events: events, network: network, log: log}, nil
}

// Network implements Client.
func (s *Subtensor) Network() string { return s.network }

// Close implements Client.
func (s *Subtensor) Close() {
	s.api.Client.Close()
}

// ChainHead implements Client.
func (s *Subtensor) ChainHead(_ context.Context) (types.Hash, error) {
	return s.api.RPC.Chain.GetBlockHashLatest()
}

// BlockNumber implements Client.
func (s *Subtensor) BlockNumber(_ context.Context, at types.Hash) (uint64, error) {
	header, err := s.api.RPC.Chain.GetHeader(at)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch header: %w", err)
	}
	return uint64(header.Number), nil
}

// accountInfo mirrors the chain's System.Account value. Bittensor uses u64
// balances, so the generic gsrpc AccountInfo does not fit.
type accountInfo struct {
	Nonce       types.U32
	Consumers   types.U32
	Providers   types.U32
	Sufficients types.U32
	Data        struct {
		Free     types.U64
		Reserved types.U64
		Frozen   types.U64
		Flags    types.U128
	}
}

// Balance implements Client.
func (s *Subtensor) Balance(_ context.Context, coldkey string, at types.Hash) (balance.Balance, error) {
	var zero balance.Balance
	pub, err := decodeSS58(coldkey)
	if err != nil {
		return zero, err
	}
	key, err := types.CreateStorageKey(s.meta, "System", "Account", pub)
	if err != nil {
		return zero, fmt.Errorf("failed to build storage key: %w", err)
	}
	var acc accountInfo
	ok, err := s.getStorage(key, &acc, at)
	if err != nil {
		return zero, fmt.Errorf("failed to query balance: %w", err)
	}
	if !ok {
		return balance.FromRao(0, 0), nil
	}
	return balance.FromRao(int64(acc.Data.Free), 0), nil
}

// scaleStakeInfo is the runtime API encoding of a stake position.
type scaleStakeInfo struct {
	Hotkey       types.AccountID
	Coldkey      types.AccountID
	Netuid       types.UCompact
	Stake        types.UCompact
	Locked       types.UCompact
	Emission     types.UCompact
	Drain        types.UCompact
	IsRegistered bool
}

// StakeForColdkey implements Client.
func (s *Subtensor) StakeForColdkey(ctx context.Context, coldkey string, at types.Hash) ([]StakeInfo, error) {
	pub, err := decodeSS58(coldkey)
	if err != nil {
		return nil, err
	}
	arg, err := codec.Encode(types.NewBytes(pub))
	if err != nil {
		return nil, fmt.Errorf("failed to encode coldkey: %w", err)
	}
	payload, err := s.runtimeCall(ctx, "StakeInfoRuntimeApi_get_stake_info_for_coldkey", arg, at)
	if err != nil {
		return nil, err
	}
	var raw []scaleStakeInfo
	if err := decodeVecU8Payload(payload, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode stake info: %w", err)
	}

	infos := make([]StakeInfo, 0, len(raw))
	for _, r := range raw {
		netuid := uint16(compactInt64(r.Netuid))
		infos = append(infos, StakeInfo{
			Hotkey:       encodeSS58(r.Hotkey),
			Coldkey:      encodeSS58(r.Coldkey),
			Netuid:       netuid,
			Stake:        balance.FromRao(compactInt64(r.Stake), netuid),
			Locked:       balance.FromRao(compactInt64(r.Locked), netuid),
			Emission:     balance.FromRao(compactInt64(r.Emission), netuid),
			IsRegistered: r.IsRegistered,
		})
	}
	return infos, nil
}

// Stake implements Client.
func (s *Subtensor) Stake(ctx context.Context, hotkey, coldkey string, netuid uint16, at types.Hash) (balance.Balance, error) {
	infos, err := s.StakeForColdkey(ctx, coldkey, at)
	if err != nil {
		return balance.Balance{}, err
	}
	for _, info := range infos {
		if info.Hotkey == hotkey && info.Netuid == netuid {
			return info.Stake, nil
		}
	}
	return balance.FromRao(0, netuid), nil
}

// scaleSubnetIdentity is the optional identity record inside DynamicInfo.
type scaleSubnetIdentity struct {
	SubnetName    types.Bytes
	GithubRepo    types.Bytes
	SubnetContact types.Bytes
}

// scaleDynamicInfo is the runtime API encoding of a subnet pool snapshot.
type scaleDynamicInfo struct {
	OwnerHotkey          types.AccountID
	OwnerColdkey         types.AccountID
	Netuid               types.UCompact
	Tempo                types.UCompact
	LastStep             types.UCompact
	BlocksSinceLastStep  types.UCompact
	Emission             types.UCompact
	AlphaIn              types.UCompact
	AlphaOut             types.UCompact
	TaoIn                types.UCompact
	PendingAlphaEmission types.UCompact
	PendingRootEmission  types.UCompact
	SubnetVolume         types.UCompact
	NetworkRegisteredAt  types.UCompact
	HasIdentity          bool
	Identity             scaleSubnetIdentity
	MovingPrice          types.U128
}

// Decode implements scale.Decodeable: the identity is an Option on the wire.
func (d *scaleDynamicInfo) Decode(decoder scale.Decoder) error {
	if err := decoder.Decode(&d.OwnerHotkey); err != nil {
		return err
	}
	if err := decoder.Decode(&d.OwnerColdkey); err != nil {
		return err
	}
	for _, c := range []*types.UCompact{
		&d.Netuid, &d.Tempo, &d.LastStep, &d.BlocksSinceLastStep,
		&d.Emission, &d.AlphaIn, &d.AlphaOut, &d.TaoIn,
		&d.PendingAlphaEmission, &d.PendingRootEmission,
		&d.SubnetVolume, &d.NetworkRegisteredAt,
	} {
		if err := decoder.Decode(c); err != nil {
			return err
		}
	}
	hasIdentity, err := decoder.ReadOneByte()
	if err != nil {
		return err
	}
	d.HasIdentity = hasIdentity == 1
	if d.HasIdentity {
		if err := decoder.Decode(&d.Identity); err != nil {
			return err
		}
	}
	return decoder.Decode(&d.MovingPrice)
}

// AllSubnets implements Client.
func (s *Subtensor) AllSubnets(ctx context.Context, at types.Hash) ([]*subnet.DynamicInfo, error) {
	payload, err := s.runtimeCall(ctx, "SubnetInfoRuntimeApi_get_all_dynamic_info", nil, at)
	if err != nil {
		return nil, err
	}
	var raw []scaleDynamicInfo
	if err := decodeVecU8Payload(payload, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode subnet info: %w", err)
	}

	infos := make([]*subnet.DynamicInfo, 0, len(raw))
	for i := range raw {
		r := &raw[i]
		netuid := uint16(compactInt64(r.Netuid))
		name := string(r.Identity.SubnetName)
		if netuid == 0 {
			name = "root"
		}
		infos = append(infos, &subnet.DynamicInfo{
			Netuid:              netuid,
			SubnetName:          name,
			Symbol:              balance.UnitSymbol(netuid),
			OwnerHotkey:         encodeSS58(r.OwnerHotkey),
			OwnerColdkey:        encodeSS58(r.OwnerColdkey),
			Tempo:               uint16(compactInt64(r.Tempo)),
			BlocksSinceLastStep: uint64(compactInt64(r.BlocksSinceLastStep)),
			TaoIn:               balance.FromRao(compactInt64(r.TaoIn), 0),
			AlphaIn:             balance.FromRao(compactInt64(r.AlphaIn), netuid),
			AlphaOut:            balance.FromRao(compactInt64(r.AlphaOut), netuid),
			EmissionPerBlock:    balance.FromRao(compactInt64(r.Emission), 0),
			IsDynamic:           netuid != 0,
		})
	}
	return infos, nil
}

// chainIdentity mirrors the on-chain identity record.
type chainIdentity struct {
	Name        types.Bytes
	URL         types.Bytes
	Image       types.Bytes
	Discord     types.Bytes
	Description types.Bytes
	Additional  types.Bytes
}

// DelegateIdentities implements Client. Identities are stored in a map keyed
// by account; we list the keys and read each value.
func (s *Subtensor) DelegateIdentities(_ context.Context, at types.Hash) (IdentityMap, error) {
	prefix, err := types.CreateStorageKey(s.meta, palletName, "IdentitiesV2")
	if err != nil {
		return nil, fmt.Errorf("failed to build storage key: %w", err)
	}
	keys, err := s.api.RPC.State.GetKeys(prefix, at)
	if err != nil {
		return nil, fmt.Errorf("failed to list identities: %w", err)
	}

	ids := make(IdentityMap, len(keys))
	for _, key := range keys {
		raw, err := s.api.RPC.State.GetStorageRaw(key, at)
		if err != nil {
			return nil, fmt.Errorf("failed to read identity: %w", err)
		}
		if raw == nil || len(*raw) == 0 {
			continue
		}
		var id chainIdentity
		if err := codec.Decode(*raw, &id); err != nil {
			// Unknown identity layout; skip rather than fail the command.
			s.log.Debug().Err(err).Msg("skipping undecodable identity")
			continue
		}
		// The account id is the trailing 32 bytes of the hashed map key.
		if len(key) < 32 {
			continue
		}
		var acct types.AccountID
		copy(acct[:], key[len(key)-32:])
		ids[encodeSS58(acct)] = Identity{Name: string(id.Name), URL: string(id.URL)}
	}
	return ids, nil
}

// MinStakeThreshold implements Client.
func (s *Subtensor) MinStakeThreshold(_ context.Context, at types.Hash) (balance.Balance, error) {
	key, err := types.CreateStorageKey(s.meta, palletName, "NominatorMinRequiredStake")
	if err != nil {
		return balance.Balance{}, fmt.Errorf("failed to build storage key: %w", err)
	}
	var raw types.U64
	if _, err := s.getStorage(key, &raw, at); err != nil {
		return balance.Balance{}, fmt.Errorf("failed to query min stake: %w", err)
	}
	return balance.FromRao(int64(raw), 0), nil
}

// childEntry is the on-wire (proportion, account) pair of the ChildKeys
// storage value and the set_children call argument.
type childEntry struct {
	Proportion types.U64
	Account    types.AccountID
}

// Children implements Client. ChildKeys is a double map keyed by hotkey and
// netuid; a missing entry means no children are set.
func (s *Subtensor) Children(_ context.Context, hotkey string, netuid uint16, at types.Hash) ([]ChildHotkey, error) {
	pub, err := decodeSS58(hotkey)
	if err != nil {
		return nil, err
	}
	netuidArg, err := codec.Encode(types.NewU16(netuid))
	if err != nil {
		return nil, fmt.Errorf("failed to encode netuid: %w", err)
	}
	key, err := types.CreateStorageKey(s.meta, palletName, "ChildKeys", pub, netuidArg)
	if err != nil {
		return nil, fmt.Errorf("failed to build storage key: %w", err)
	}
	var raw []childEntry
	ok, err := s.getStorage(key, &raw, at)
	if err != nil {
		return nil, fmt.Errorf("failed to query children: %w", err)
	}
	if !ok {
		return nil, nil
	}
	children := make([]ChildHotkey, 0, len(raw))
	for _, c := range raw {
		children = append(children, ChildHotkey{
			Hotkey:     encodeSS58(c.Account),
			Proportion: uint64(c.Proportion),
		})
	}
	return children, nil
}

// ChildkeyTake implements Client.
func (s *Subtensor) ChildkeyTake(_ context.Context, hotkey string, netuid uint16, at types.Hash) (uint16, error) {
	pub, err := decodeSS58(hotkey)
	if err != nil {
		return 0, err
	}
	netuidArg, err := codec.Encode(types.NewU16(netuid))
	if err != nil {
		return 0, fmt.Errorf("failed to encode netuid: %w", err)
	}
	key, err := types.CreateStorageKey(s.meta, palletName, "ChildkeyTake", pub, netuidArg)
	if err != nil {
		return 0, fmt.Errorf("failed to build storage key: %w", err)
	}
	var take types.U16
	if _, err := s.getStorage(key, &take, at); err != nil {
		return 0, fmt.Errorf("failed to query childkey take: %w", err)
	}
	return uint16(take), nil
}

// SubnetLockCost implements Client.
func (s *Subtensor) SubnetLockCost(ctx context.Context) (balance.Balance, error) {
	payload, err := s.runtimeCall(ctx, "SubnetRegistrationRuntimeApi_get_network_registration_cost", nil, types.Hash{})
	if err != nil {
		return balance.Balance{}, err
	}
	var cost types.U64
	if err := codec.Decode(payload, &cost); err != nil {
		return balance.Balance{}, fmt.Errorf("failed to decode lock cost: %w", err)
	}
	return balance.FromRao(int64(cost), 0), nil
}

// AddStake implements Client.
func (s *Subtensor) AddStake(ctx context.Context, kp signature.KeyringPair, hotkey string, netuid uint16, amount balance.Balance) error {
	hk, err := accountIDOf(hotkey)
	if err != nil {
		return err
	}
	return s.submitWait(ctx, kp, "add_stake", hk, types.NewU16(netuid), types.NewU64(uint64(amount.Rao())))
}

// AddStakeLimit implements Client.
func (s *Subtensor) AddStakeLimit(ctx context.Context, kp signature.KeyringPair, hotkey string, netuid uint16, amount balance.Balance, limitPrice uint64, allowPartial bool) error {
	hk, err := accountIDOf(hotkey)
	if err != nil {
		return err
	}
	return s.submitWait(ctx, kp, "add_stake_limit",
		hk, types.NewU16(netuid), types.NewU64(uint64(amount.Rao())), types.NewU64(limitPrice), types.NewBool(allowPartial))
}

// RemoveStake implements Client.
func (s *Subtensor) RemoveStake(ctx context.Context, kp signature.KeyringPair, hotkey string, netuid uint16, amount balance.Balance) error {
	hk, err := accountIDOf(hotkey)
	if err != nil {
		return err
	}
	return s.submitWait(ctx, kp, "remove_stake", hk, types.NewU16(netuid), types.NewU64(uint64(amount.Rao())))
}

// RemoveStakeLimit implements Client.
func (s *Subtensor) RemoveStakeLimit(ctx context.Context, kp signature.KeyringPair, hotkey string, netuid uint16, amount balance.Balance, limitPrice uint64, allowPartial bool) error {
	hk, err := accountIDOf(hotkey)
	if err != nil {
		return err
	}
	return s.submitWait(ctx, kp, "remove_stake_limit",
		hk, types.NewU16(netuid), types.NewU64(uint64(amount.Rao())), types.NewU64(limitPrice), types.NewBool(allowPartial))
}

// UnstakeAll implements Client.
func (s *Subtensor) UnstakeAll(ctx context.Context, kp signature.KeyringPair, hotkey string, alphaOnly bool) error {
	hk, err := accountIDOf(hotkey)
	if err != nil {
		return err
	}
	fn := "unstake_all"
	if alphaOnly {
		fn = "unstake_all_alpha"
	}
	return s.submitWait(ctx, kp, fn, hk)
}

// SetChildren implements Client.
func (s *Subtensor) SetChildren(ctx context.Context, kp signature.KeyringPair, hotkey string, netuid uint16, children []ChildHotkey) error {
	hk, err := accountIDOf(hotkey)
	if err != nil {
		return err
	}
	entries := make([]childEntry, 0, len(children))
	for _, c := range children {
		acct, err := accountIDOf(c.Hotkey)
		if err != nil {
			return err
		}
		entries = append(entries, childEntry{Proportion: types.NewU64(c.Proportion), Account: acct})
	}
	return s.submitWait(ctx, kp, "set_children", hk, types.NewU16(netuid), entries)
}

// SetChildkeyTake implements Client.
func (s *Subtensor) SetChildkeyTake(ctx context.Context, kp signature.KeyringPair, hotkey string, netuid uint16, take uint16) error {
	hk, err := accountIDOf(hotkey)
	if err != nil {
		return err
	}
	return s.submitWait(ctx, kp, "set_childkey_take", hk, types.NewU16(netuid), types.NewU16(take))
}

// RegisterNetwork implements Client.
func (s *Subtensor) RegisterNetwork(ctx context.Context, kp signature.KeyringPair, hotkey string) error {
	hk, err := accountIDOf(hotkey)
	if err != nil {
		return err
	}
	return s.submitWait(ctx, kp, "register_network", hk)
}

// BurnedRegister implements Client.
func (s *Subtensor) BurnedRegister(ctx context.Context, kp signature.KeyringPair, hotkey string, netuid uint16) error {
	hk, err := accountIDOf(hotkey)
	if err != nil {
		return err
	}
	return s.submitWait(ctx, kp, "burned_register", types.NewU16(netuid), hk)
}

// submitWait composes a SubtensorModule call, signs it with an immortal era
// and submits it, blocking until the extrinsic is included in a block. It
// then inspects the block's events for an ExtrinsicFailed matching our
// extrinsic. No retry is attempted at this layer.
func (s *Subtensor) submitWait(ctx context.Context, kp signature.KeyringPair, fn string, args ...interface{}) error {
	call, err := types.NewCall(s.meta, palletName+"."+fn, args...)
	if err != nil {
		return fmt.Errorf("failed to compose call %s: %w", fn, err)
	}

	genesisHash, err := s.api.RPC.Chain.GetBlockHash(0)
	if err != nil {
		return fmt.Errorf("failed to fetch genesis hash: %w", err)
	}
	rv, err := s.api.RPC.State.GetRuntimeVersionLatest()
	if err != nil {
		return fmt.Errorf("failed to fetch runtime version: %w", err)
	}
	nonce, err := s.accountNonce(kp.PublicKey)
	if err != nil {
		return err
	}

	ext := types.NewExtrinsic(call)
	opts := types.SignatureOptions{
		BlockHash:          genesisHash,
		Era:                types.ExtrinsicEra{IsImmortalEra: true},
		GenesisHash:        genesisHash,
		Nonce:              types.NewUCompactFromUInt(uint64(nonce)),
		SpecVersion:        rv.SpecVersion,
		Tip:                types.NewUCompactFromUInt(0),
		TransactionVersion: rv.TransactionVersion,
	}
	if err := ext.Sign(kp, opts); err != nil {
		return fmt.Errorf("failed to sign extrinsic: %w", err)
	}

	sub, err := s.api.RPC.Author.SubmitAndWatchExtrinsic(ext)
	if err != nil {
		return &SubmissionError{Raw: FormatError(err)}
	}
	defer sub.Unsubscribe()

	s.log.Debug().Str("call", fn).Msg("extrinsic submitted")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-sub.Err():
			return &SubmissionError{Raw: FormatError(err)}
		case status := <-sub.Chan():
			switch {
			case status.IsInBlock:
				return s.checkExtrinsicEvents(ext, status.AsInBlock)
			case status.IsDropped, status.IsInvalid, status.IsUsurped:
				return &SubmissionError{Raw: fmt.Sprintf("extrinsic %s was not included", fn)}
			}
		}
	}
}

// checkExtrinsicEvents scans the events of the block that included ext and
// surfaces any ExtrinsicFailed dispatch error for it.
func (s *Subtensor) checkExtrinsicEvents(ext types.Extrinsic, blockHash types.Hash) error {
	encoded, err := codec.EncodeToHex(ext)
	if err != nil {
		return nil // inclusion succeeded; event check is best effort
	}
	block, err := s.api.RPC.Chain.GetBlock(blockHash)
	if err != nil {
		return nil
	}
	extIdx := -1
	for i, blockExt := range block.Block.Extrinsics {
		enc, err := codec.EncodeToHex(blockExt)
		if err != nil {
			continue
		}
		if enc == encoded {
			extIdx = i
			break
		}
	}
	if extIdx < 0 {
		return nil
	}

	events, err := s.events.GetEvents(blockHash)
	if err != nil {
		s.log.Debug().Err(err).Msg("could not decode block events")
		return nil
	}
	for _, ev := range events {
		if ev.Name != "System.ExtrinsicFailed" {
			continue
		}
		if ev.Phase == nil || !ev.Phase.IsApplyExtrinsic || int(ev.Phase.AsApplyExtrinsic) != extIdx {
			continue
		}
		return &SubmissionError{Raw: fmt.Sprintf("extrinsic failed: %v", ev.Fields)}
	}
	return nil
}

func (s *Subtensor) accountNonce(pub []byte) (uint32, error) {
	key, err := types.CreateStorageKey(s.meta, "System", "Account", pub)
	if err != nil {
		return 0, fmt.Errorf("failed to build storage key: %w", err)
	}
	var acc accountInfo
	if _, err := s.api.RPC.State.GetStorageLatest(key, &acc); err != nil {
		return 0, fmt.Errorf("failed to query account nonce: %w", err)
	}
	return uint32(acc.Nonce), nil
}

// runtimeCall performs a state_call runtime API invocation and returns the
// raw response bytes.
func (s *Subtensor) runtimeCall(_ context.Context, method string, args []byte, at types.Hash) ([]byte, error) {
	data := "0x"
	if len(args) > 0 {
		data = codec.HexEncodeToString(args)
	}

	var res string
	params := []interface{}{method, data}
	if at != (types.Hash{}) {
		params = append(params, at.Hex())
	}
	if err := s.api.Client.Call(&res, "state_call", params...); err != nil {
		return nil, fmt.Errorf("runtime call %s failed: %w", method, err)
	}
	out, err := codec.HexDecodeString(res)
	if err != nil {
		return nil, fmt.Errorf("runtime call %s returned invalid hex: %w", method, err)
	}
	return out, nil
}

func (s *Subtensor) getStorage(key types.StorageKey, target interface{}, at types.Hash) (bool, error) {
	if at == (types.Hash{}) {
		return s.api.RPC.State.GetStorageLatest(key, target)
	}
	return s.api.RPC.State.GetStorage(key, target, at)
}

// decodeVecU8Payload unwraps the Vec<u8> envelope the runtime APIs return
// and decodes the inner SCALE value into target.
func decodeVecU8Payload(payload []byte, target interface{}) error {
	var inner types.Bytes
	if err := codec.Decode(payload, &inner); err != nil {
		return err
	}
	return codec.Decode(inner, target)
}

func compactInt64(c types.UCompact) int64 {
	return (*big.Int)(&c).Int64()
}

func encodeSS58(acct types.AccountID) string {
	return subkey.SS58Encode(acct[:], SS58Prefix)
}

func decodeSS58(addr string) ([]byte, error) {
	_, pub, err := subkey.SS58Decode(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid ss58 address %q: %w", addr, err)
	}
	return pub, nil
}

// IsValidSS58 reports whether the given string parses as an ss58 address.
func IsValidSS58(addr string) bool {
	if !strings.HasPrefix(addr, "5") {
		return false
	}
	_, err := decodeSS58(addr)
	return err == nil
}

func accountIDOf(addr string) (types.AccountID, error) {
	pub, err := decodeSS58(addr)
	if err != nil {
		return types.AccountID{}, err
	}
	acct, err := types.NewAccountID(pub)
	if err != nil {
		return types.AccountID{}, fmt.Errorf("invalid account id: %w", err)
	}
	return *acct, nil
}
