package substrate

import (
	"context"
)

// JSON-RPC methods used by the checks.
const (
	methodSystemVersion          = "system_version"
	methodSystemChain            = "system_chain"
	methodSystemProperties       = "system_properties"
	methodSystemHealth           = "system_health"
	methodSystemNodeRoles        = "system_nodeRoles"
	methodSystemAccountNextIndex = "system_accountNextIndex"
	methodStateGetRuntimeVersion = "state_getRuntimeVersion"
	methodChainGetFinalizedHead  = "chain_getFinalizedHead"
	methodChainGetBlockHash      = "chain_getBlockHash"
	methodChainGetHeader         = "chain_getHeader"
	methodChainGetBlock          = "chain_getBlock"
)

// SystemVersion returns the node implementation version.
func (c *Client) SystemVersion(ctx context.Context) (string, error) {
	var version string
	if err := c.Call(ctx, methodSystemVersion, nil, &version); err != nil {
		return "", err
	}
	return version, nil
}

// SystemChain returns the chain name, e.g. "Polkadot".
func (c *Client) SystemChain(ctx context.Context) (string, error) {
	var chain string
	if err := c.Call(ctx, methodSystemChain, nil, &chain); err != nil {
		return "", err
	}
	return chain, nil
}

// SystemProperties returns the chain's token and address properties.
func (c *Client) SystemProperties(ctx context.Context) (Properties, error) {
	var props Properties
	if err := c.Call(ctx, methodSystemProperties, nil, &props); err != nil {
		return Properties{}, err
	}
	return props, nil
}

// SystemHealth returns the node's sync and peer status.
func (c *Client) SystemHealth(ctx context.Context) (Health, error) {
	var health Health
	if err := c.Call(ctx, methodSystemHealth, nil, &health); err != nil {
		return Health{}, err
	}
	return health, nil
}

// SystemNodeRoles returns the roles the node runs with, e.g. ["Full"].
func (c *Client) SystemNodeRoles(ctx context.Context) ([]string, error) {
	var roles []string
	if err := c.Call(ctx, methodSystemNodeRoles, nil, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// SystemAccountNextIndex returns the next nonce for address, including pool transactions.
func (c *Client) SystemAccountNextIndex(ctx context.Context, address string) (uint64, error) {
	var nonce uint64
	if err := c.Call(ctx, methodSystemAccountNextIndex, []any{address}, &nonce); err != nil {
		return 0, err
	}
	return nonce, nil
}

// RuntimeVersion returns the runtime version at blockHash, or at the best block when blockHash is empty.
func (c *Client) RuntimeVersion(ctx context.Context, blockHash string) (RuntimeVersion, error) {
	var version RuntimeVersion
	if err := c.Call(ctx, methodStateGetRuntimeVersion, optionalHash(blockHash), &version); err != nil {
		return RuntimeVersion{}, err
	}
	return version, nil
}

// FinalizedHead returns the hash of the last finalized block.
func (c *Client) FinalizedHead(ctx context.Context) (string, error) {
	var hash string
	if err := c.Call(ctx, methodChainGetFinalizedHead, nil, &hash); err != nil {
		return "", err
	}
	return hash, nil
}

// BlockHash returns the hash of the canonical block at number.
// An unknown block yields check.ErrFieldMissing.
func (c *Client) BlockHash(ctx context.Context, number uint64) (string, error) {
	var hash string
	if err := c.Call(ctx, methodChainGetBlockHash, []any{number}, &hash); err != nil {
		return "", err
	}
	return hash, nil
}

// Header returns the header of blockHash, or of the best block when blockHash is empty.
func (c *Client) Header(ctx context.Context, blockHash string) (Header, error) {
	var header Header
	if err := c.Call(ctx, methodChainGetHeader, optionalHash(blockHash), &header); err != nil {
		return Header{}, err
	}
	return header, nil
}

// Block returns the block blockHash, or the best block when blockHash is empty.
func (c *Client) Block(ctx context.Context, blockHash string) (SignedBlock, error) {
	var block SignedBlock
	if err := c.Call(ctx, methodChainGetBlock, optionalHash(blockHash), &block); err != nil {
		return SignedBlock{}, err
	}
	return block, nil
}

func optionalHash(blockHash string) []any {
	if blockHash == "" {
		return nil
	}
	return []any{blockHash}
}
