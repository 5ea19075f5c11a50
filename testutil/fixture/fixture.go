// Package fixture builds a small consistent chain and serves it from both
// a fake node and a fake sidecar, so tests only script the differences.
package fixture

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/papermoonio/sidecar-tests-substrate/jsonrpc"
	"github.com/papermoonio/sidecar-tests-substrate/substrate/scale"
	"github.com/papermoonio/sidecar-tests-substrate/testutil/fakenode"
	"github.com/papermoonio/sidecar-tests-substrate/testutil/fakesidecar"
)

const (
	// TransferHex is a signed balances transfer from Alice.
	TransferHex = "0x39028400d43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d010000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000040005030000000000000000000000000000000000000000000000000000000000000000070010a5d4e8"
	// Alice is the signer of TransferHex at prefix 42.
	Alice = "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"

	// Account20TransferHex is a signed extrinsic of an Ethereum compatible
	// chain whose signer is the bare AccountId20 Alith.
	Account20TransferHex = "0x6d0184f24ff3a9cf04c71dbc94d0b566f7a27b94566cac11111111111111111111111111111111111111111111111111111111111111111111111111111111111111111111111111111111111111111111111111111111110000000a03"
	// Alith is the signer of Account20TransferHex, checksummed as the sidecar renders it.
	Alith = "0xf24FF3a9CF04c71Dbc94D0b566f7A27B94566cac"

	GenesisHash   = "0x91b171bb158e2d3848fa23a9f1c25182fb8e20313b2c1eb49219da7a70ce90c3"
	ChainName     = "Development"
	ClientVersion = "1.17.0-1a2b3c4d"
	SpecName      = "polkadot"
	SpecVersion   = 1003000
	TxVersion     = 26

	baseTimestamp = 1700000000000
	blockTime     = 6000
)

// Extrinsic is one extrinsic as both endpoints see it.
type Extrinsic struct {
	Hex    string
	Pallet string
	Method string
	// Signer is the SS58 signer, empty for unsigned extrinsics.
	Signer string
	// Now is the timestamp.set argument.
	Now uint64
	// Hash overrides the sidecar hash when set.
	Hash string
}

// Block is one block as both endpoints see it.
type Block struct {
	Number         uint64
	Hash           string
	ParentHash     string
	StateRoot      string
	ExtrinsicsRoot string
	Extrinsics     []Extrinsic
}

// Chain is the shared chain state. Tests may edit it before the run starts;
// the sidecar overrides below let a test make the two endpoints disagree.
type Chain struct {
	mu sync.Mutex

	Head   uint64
	Best   uint64
	Blocks map[uint64]*Block

	Peers           uint64
	IsSyncing       bool
	ShouldHavePeers bool
	NodeRoles       []string
	SS58Format      *uint16
	TokenDecimals   []int
	TokenSymbol     []string
	Nonces          map[string]uint64
	// IsEthereum marks an AccountId20 chain in system_properties.
	IsEthereum bool

	// SidecarBlockHash replaces the hash the sidecar reports for a block.
	SidecarBlockHash map[uint64]string
	// SidecarNodeRoles replaces the roles the sidecar reports.
	SidecarNodeRoles []any
	// SidecarStateRoot replaces the state root of the sidecar's /blocks/{n}/header.
	SidecarStateRoot map[uint64]string
	// SidecarPeers replaces the peer count the sidecar reports.
	SidecarPeers *uint64
}

// NewChain returns a chain whose finalized head is head, holding the
// count blocks up to head. Every block carries timestamp.set and every
// even block also carries a signed transfer.
func NewChain(head uint64, count int) *Chain {
	ss58 := uint16(42)
	c := &Chain{
		Head:            head,
		Best:            head + 2,
		Blocks:          make(map[uint64]*Block),
		Peers:           8,
		ShouldHavePeers: true,
		NodeRoles:       []string{"Full"},
		SS58Format:      &ss58,
		TokenDecimals:   []int{10},
		TokenSymbol:     []string{"DOT"},
		Nonces:          map[string]uint64{Alice: 3},
	}

	for i := 0; i < count && uint64(i) <= head; i++ {
		number := head - uint64(i)
		now := uint64(baseTimestamp + number*blockTime)

		exts := []Extrinsic{{
			Hex:    TimestampSetHex(now),
			Pallet: "timestamp",
			Method: "set",
			Now:    now,
		}}
		if number%2 == 0 {
			exts = append(exts, Extrinsic{
				Hex:    TransferHex,
				Pallet: "balances",
				Method: "transferKeepAlive",
				Signer: Alice,
			})
		}

		c.Blocks[number] = &Block{
			Number:         number,
			Hash:           fakeHash(0xb0, number),
			ParentHash:     fakeHash(0xb0, number-1),
			StateRoot:      fakeHash(0x5e, number),
			ExtrinsicsRoot: fakeHash(0xe0, number),
			Extrinsics:     exts,
		}
	}

	return c
}

// TimestampSetHex encodes a bare timestamp.set(now) extrinsic.
func TimestampSetHex(now uint64) string {
	body := append([]byte{0x04, 0x03, 0x00}, scale.EncodeCompact(now)...)
	encoded := append(scale.EncodeCompact(uint64(len(body))), body...)
	return "0x" + hex.EncodeToString(encoded)
}

func fakeHash(tag byte, n uint64) string {
	return fmt.Sprintf("0x%02x%062x", tag, n)
}

// Serve registers the chain on node and sidecar. Handlers read the chain
// on every request, so later edits are visible.
func (c *Chain) Serve(node *fakenode.Node, sc *fakesidecar.Sidecar) {
	if node != nil {
		c.serveNode(node)
	}
	if sc != nil {
		c.serveSidecar(sc)
	}
}

/* ---------------------------- Node ---------------------------- */

func (c *Chain) serveNode(node *fakenode.Node) {
	node.HandleResult("system_version", ClientVersion)
	node.HandleResult("system_chain", ChainName)

	node.Handle("system_properties", c.locked(func(json.RawMessage) (any, *jsonrpc.ResponseError) {
		props := map[string]any{
			"tokenDecimals": c.TokenDecimals,
			"tokenSymbol":   c.TokenSymbol,
		}
		if c.SS58Format != nil {
			props["ss58Format"] = *c.SS58Format
		}
		if c.IsEthereum {
			props["isEthereum"] = true
		}
		return props, nil
	}))

	node.Handle("system_health", c.locked(func(json.RawMessage) (any, *jsonrpc.ResponseError) {
		return map[string]any{
			"peers":           c.Peers,
			"isSyncing":       c.IsSyncing,
			"shouldHavePeers": c.ShouldHavePeers,
		}, nil
	}))

	node.Handle("system_nodeRoles", c.locked(func(json.RawMessage) (any, *jsonrpc.ResponseError) {
		return c.NodeRoles, nil
	}))

	node.Handle("system_accountNextIndex", c.locked(func(params json.RawMessage) (any, *jsonrpc.ResponseError) {
		var args []string
		if err := json.Unmarshal(params, &args); err != nil || len(args) != 1 {
			return nil, invalidParams()
		}
		return c.Nonces[args[0]], nil
	}))

	node.Handle("state_getRuntimeVersion", func(json.RawMessage) (any, *jsonrpc.ResponseError) {
		return map[string]any{
			"specName":           SpecName,
			"implName":           "parity-" + SpecName,
			"authoringVersion":   0,
			"specVersion":        SpecVersion,
			"implVersion":        0,
			"transactionVersion": TxVersion,
			"stateVersion":       1,
		}, nil
	})

	node.Handle("chain_getFinalizedHead", c.locked(func(json.RawMessage) (any, *jsonrpc.ResponseError) {
		return c.hashOf(c.Head), nil
	}))

	node.Handle("chain_getBlockHash", c.locked(func(params json.RawMessage) (any, *jsonrpc.ResponseError) {
		var args []uint64
		if err := json.Unmarshal(params, &args); err != nil || len(args) != 1 {
			return nil, invalidParams()
		}
		if args[0] == 0 {
			return GenesisHash, nil
		}
		block, ok := c.Blocks[args[0]]
		if !ok {
			return nil, nil
		}
		return block.Hash, nil
	}))

	node.Handle("chain_getHeader", c.locked(func(params json.RawMessage) (any, *jsonrpc.ResponseError) {
		number, ok := c.numberOf(params)
		if !ok {
			return nil, nil
		}
		return c.header(number), nil
	}))

	node.Handle("chain_getBlock", c.locked(func(params json.RawMessage) (any, *jsonrpc.ResponseError) {
		number, ok := c.numberOf(params)
		if !ok {
			return nil, nil
		}
		block, ok := c.Blocks[number]
		if !ok {
			return nil, nil
		}

		exts := make([]string, len(block.Extrinsics))
		for i, ext := range block.Extrinsics {
			exts[i] = ext.Hex
		}
		return map[string]any{
			"block": map[string]any{
				"header":     c.header(number),
				"extrinsics": exts,
			},
			"justifications": nil,
		}, nil
	}))
}

// numberOf resolves the optional block hash param, defaulting to the best block.
func (c *Chain) numberOf(params json.RawMessage) (uint64, bool) {
	var args []string
	_ = json.Unmarshal(params, &args)
	if len(args) == 0 {
		return c.Best, true
	}
	for number, block := range c.Blocks {
		if block.Hash == args[0] {
			return number, true
		}
	}
	return 0, false
}

func (c *Chain) header(number uint64) map[string]any {
	header := map[string]any{
		"parentHash":     fakeHash(0xb0, number-1),
		"number":         "0x" + strconv.FormatUint(number, 16),
		"stateRoot":      fakeHash(0x5e, number),
		"extrinsicsRoot": fakeHash(0xe0, number),
		"digest":         map[string]any{"logs": []string{}},
	}
	if block, ok := c.Blocks[number]; ok {
		header["parentHash"] = block.ParentHash
		header["stateRoot"] = block.StateRoot
		header["extrinsicsRoot"] = block.ExtrinsicsRoot
	}
	return header
}

func (c *Chain) hashOf(number uint64) string {
	if block, ok := c.Blocks[number]; ok {
		return block.Hash
	}
	return fakeHash(0xb0, number)
}

func (c *Chain) locked(h fakenode.Handler) fakenode.Handler {
	return func(params json.RawMessage) (any, *jsonrpc.ResponseError) {
		c.mu.Lock()
		defer c.mu.Unlock()
		return h(params)
	}
}

func invalidParams() *jsonrpc.ResponseError {
	return &jsonrpc.ResponseError{Code: jsonrpc.ResponseCodeInvalidParams, Message: "invalid params"}
}

/* ---------------------------- Sidecar ---------------------------- */

func (c *Chain) serveSidecar(sc *fakesidecar.Sidecar) {
	at := func() map[string]any {
		return map[string]any{"height": strconv.FormatUint(c.Head, 10), "hash": c.hashOf(c.Head)}
	}

	sc.Handle("/node/version", c.sidecarJSON(func() any {
		return map[string]any{
			"clientVersion":  ClientVersion,
			"clientImplName": "parity-polkadot",
			"chain":          ChainName,
		}
	}))

	sc.Handle("/runtime/spec", c.sidecarJSON(func() any {
		props := map[string]any{
			"tokenDecimals": decimalStrings(c.TokenDecimals),
			"tokenSymbol":   c.TokenSymbol,
		}
		if c.SS58Format != nil {
			props["ss58Format"] = strconv.FormatUint(uint64(*c.SS58Format), 10)
		}
		return map[string]any{
			"at":                 at(),
			"authoringVersion":   "0",
			"transactionVersion": strconv.Itoa(TxVersion),
			"implVersion":        "0",
			"specName":           SpecName,
			"specVersion":        strconv.Itoa(SpecVersion),
			"properties":         props,
		}
	}))

	sc.Handle("/transaction/material", c.sidecarJSON(func() any {
		return map[string]any{
			"at":          at(),
			"genesisHash": GenesisHash,
			"chainName":   ChainName,
			"specName":    SpecName,
			"specVersion": strconv.Itoa(SpecVersion),
			"txVersion":   strconv.Itoa(TxVersion),
		}
	}))

	sc.Handle("/node/network", c.sidecarJSON(func() any {
		roles := c.SidecarNodeRoles
		if roles == nil {
			for _, role := range c.NodeRoles {
				roles = append(roles, map[string]any{strings.ToLower(role): nil})
			}
		}
		peers := c.Peers
		if c.SidecarPeers != nil {
			peers = *c.SidecarPeers
		}
		return map[string]any{
			"nodeRoles":       roles,
			"numPeers":        strconv.FormatUint(peers, 10),
			"isSyncing":       c.IsSyncing,
			"shouldHavePeers": c.ShouldHavePeers,
			"localPeerId":     "12D3KooWExample",
		}
	}))

	sc.Handle("/blocks/head", c.sidecarJSON(func() any {
		return c.sidecarBlock(c.Head)
	}))

	for number := range c.Blocks {
		sc.Handle("/blocks/"+strconv.FormatUint(number, 10), c.sidecarJSON(func() any {
			return c.sidecarBlock(number)
		}))
		sc.Handle("/blocks/"+strconv.FormatUint(number, 10)+"/header", c.sidecarJSON(func() any {
			return c.sidecarHeader(number)
		}))
	}

	for address := range c.Nonces {
		sc.Handle("/accounts/"+address+"/balance-info", c.sidecarJSON(func() any {
			return map[string]any{
				"at":          at(),
				"nonce":       strconv.FormatUint(c.Nonces[address], 10),
				"tokenSymbol": "DOT",
				"free":        "1000000000000",
				"reserved":    "0",
			}
		}))
	}
}

func (c *Chain) sidecarHeader(number uint64) any {
	header := c.header(number)
	header["number"] = strconv.FormatUint(number, 10)
	if override, ok := c.SidecarStateRoot[number]; ok {
		header["stateRoot"] = override
	}
	return header
}

func (c *Chain) sidecarBlock(number uint64) any {
	block, ok := c.Blocks[number]
	if !ok {
		return nil
	}

	hash := block.Hash
	if override, ok := c.SidecarBlockHash[number]; ok {
		hash = override
	}

	exts := make([]map[string]any, len(block.Extrinsics))
	for i, ext := range block.Extrinsics {
		extHash := ext.Hash
		if extHash == "" {
			decoded, err := scale.DecodeExtrinsicHex(ext.Hex, scale.SignerMultiAddress)
			if err != nil {
				panic(fmt.Sprintf("fixture extrinsic %s: %v", ext.Hex, err))
			}
			extHash = decoded.HashHex()
		}

		var signature any
		args := map[string]any{}
		if ext.Signer != "" {
			signature = map[string]any{
				"signature": "0x01" + strings.Repeat("00", 64),
				"signer":    sidecarSignerOf(ext.Signer),
			}
		}
		if ext.Pallet == "timestamp" && ext.Method == "set" {
			args["now"] = strconv.FormatUint(ext.Now, 10)
		}

		exts[i] = map[string]any{
			"method":    map[string]any{"pallet": ext.Pallet, "method": ext.Method},
			"signature": signature,
			"nonce":     nil,
			"args":      args,
			"tip":       nil,
			"hash":      extHash,
			"info":      map[string]any{},
			"events":    []any{},
			"success":   true,
			"paysFee":   ext.Signer != "",
		}
	}

	return map[string]any{
		"number":         strconv.FormatUint(number, 10),
		"hash":           hash,
		"parentHash":     block.ParentHash,
		"stateRoot":      block.StateRoot,
		"extrinsicsRoot": block.ExtrinsicsRoot,
		"authorId":       nil,
		"logs":           []any{},
		"onInitialize":   map[string]any{"events": []any{}},
		"extrinsics":     exts,
		"onFinalize":     map[string]any{"events": []any{}},
		"finalized":      true,
	}
}

// sidecarJSON renders body under the chain lock. A nil body replies 404.
func (c *Chain) sidecarJSON(body func() any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		c.mu.Lock()
		v := body()
		c.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if v == nil {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"code":404,"message":"Block not found"}`))
			return
		}

		b, err := json.Marshal(v)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write(b)
	}
}

func decimalStrings(values []int) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.Itoa(v)
	}
	return out
}

// sidecarSignerOf renders a signer the way the sidecar does: a MultiAddress
// object for SS58 accounts, a bare string for AccountId20.
func sidecarSignerOf(signer string) any {
	if strings.HasPrefix(signer, "0x") {
		return signer
	}
	return map[string]any{"id": signer}
}
