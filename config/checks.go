package config

import (
	"fmt"
	"strings"

	"github.com/papermoonio/sidecar-tests-substrate/substrate/scale"
)

// CheckID identifies a check group in configuration.
type CheckID string

const (
	CheckNodeVersion         CheckID = "node_version"
	CheckRuntimeVersion      CheckID = "runtime_version"
	CheckChainProperties     CheckID = "chain_properties"
	CheckTransactionMaterial CheckID = "transaction_material"
	CheckNodeNetwork         CheckID = "node_network"
	CheckHeadBlock           CheckID = "head_block"
	CheckLastBlocks          CheckID = "last_blocks"
	CheckAccounts            CheckID = "accounts"
	CheckChainHealth         CheckID = "chain_health"
	CheckFinalityLag         CheckID = "finality_lag"
)

// AllChecks lists every check group in execution order.
var AllChecks = []CheckID{
	CheckNodeVersion,
	CheckRuntimeVersion,
	CheckChainProperties,
	CheckTransactionMaterial,
	CheckNodeNetwork,
	CheckHeadBlock,
	CheckLastBlocks,
	CheckAccounts,
	CheckChainHealth,
	CheckFinalityLag,
}

func isKnownCheck(id CheckID) bool {
	for _, known := range AllChecks {
		if id == known {
			return true
		}
	}
	return false
}

/* --------------------------------- Checks Config Defaults -------------------------------- */

const (
	defaultNumBlocks      = 5
	defaultConcurrency    = 1
	defaultPeerTolerance  = 2
	defaultMaxFinalityLag = 10
)

/* --------------------------------- Checks Config Struct -------------------------------- */

// ChecksConfig selects and tunes the check groups.
type ChecksConfig struct {
	// Enabled lists the check groups to run. Empty runs all of them.
	Enabled []CheckID `yaml:"enabled"`

	// NumBlocks is the number of recent blocks compared, counting back from the finalized head.
	NumBlocks int `yaml:"num_blocks"`

	// Concurrency is the number of blocks fetched in parallel. 1 runs sequentially.
	Concurrency int `yaml:"concurrency"`

	// BlockTimeTolerance is the accepted difference between block timestamps, in milliseconds.
	BlockTimeTolerance float64 `yaml:"block_time_tolerance"`

	// PeerTolerance is the accepted difference between peer counts.
	// Peer counts are sampled at different instants and drift.
	PeerTolerance float64 `yaml:"peer_tolerance"`

	// MaxFinalityLag is the largest accepted distance between best and finalized block.
	MaxFinalityLag uint64 `yaml:"max_finality_lag"`

	// SS58Prefix overrides the address format used to render signers.
	// Unset uses the chain's ss58Format property, or 42 when the chain has none.
	SS58Prefix *uint16 `yaml:"ss58_prefix"`

	// Accounts are SS58 or 0x prefixed AccountId20 addresses whose nonce is compared.
	Accounts []string `yaml:"accounts"`

	// SignerFormat is the encoding of extrinsic signers: "multiaddress",
	// "account20", or "auto" to use account20 when the chain reports isEthereum.
	SignerFormat string `yaml:"signer_format"`
}

// SignerFormatAuto infers the signer format from the chain properties.
const SignerFormatAuto = "auto"

/* --------------------------------- Checks Config Private Helpers -------------------------------- */

// defaultChecksConfig presets the fields for which zero is a valid setting,
// so they cannot be hydrated after decoding.
func defaultChecksConfig() ChecksConfig {
	return ChecksConfig{
		PeerTolerance:  defaultPeerTolerance,
		MaxFinalityLag: defaultMaxFinalityLag,
	}
}

func (c *ChecksConfig) hydrateDefaults() {
	if c.NumBlocks == 0 {
		c.NumBlocks = defaultNumBlocks
	}
	if c.Concurrency == 0 {
		c.Concurrency = defaultConcurrency
	}
	if c.SignerFormat == "" {
		c.SignerFormat = SignerFormatAuto
	}
}

func (c ChecksConfig) Validate() error {
	for _, id := range c.Enabled {
		if !isKnownCheck(id) {
			return fmt.Errorf("unknown check %q, valid checks are %v", id, AllChecks)
		}
	}
	if c.NumBlocks < 0 {
		return fmt.Errorf("invalid num_blocks: %d", c.NumBlocks)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("invalid concurrency: %d", c.Concurrency)
	}
	if c.BlockTimeTolerance < 0 {
		return fmt.Errorf("invalid block_time_tolerance: %g", c.BlockTimeTolerance)
	}
	if c.PeerTolerance < 0 {
		return fmt.Errorf("invalid peer_tolerance: %g", c.PeerTolerance)
	}
	if c.SS58Prefix != nil && *c.SS58Prefix > scale.MaxSS58Prefix {
		return fmt.Errorf("invalid ss58_prefix %d: must be at most %d", *c.SS58Prefix, scale.MaxSS58Prefix)
	}
	if c.SignerFormat != "" && c.SignerFormat != SignerFormatAuto {
		if _, err := scale.ParseSignerFormat(c.SignerFormat); err != nil {
			return fmt.Errorf("invalid signer_format: %w", err)
		}
	}
	for _, account := range c.Accounts {
		if isAccount20(account) {
			continue
		}
		if _, _, err := scale.DecodeSS58(account); err != nil {
			return fmt.Errorf("invalid account %q: %w", account, err)
		}
	}
	return nil
}

// IsEnabled reports whether the check group id should run.
func (c ChecksConfig) IsEnabled(id CheckID) bool {
	if len(c.Enabled) == 0 {
		return true
	}
	for _, enabled := range c.Enabled {
		if enabled == id {
			return true
		}
	}
	return false
}

// isAccount20 reports whether account is a 0x prefixed 20 byte address.
func isAccount20(account string) bool {
	if !strings.HasPrefix(account, "0x") {
		return false
	}
	b, err := scale.DecodeHex(account)
	return err == nil && len(b) == 20
}
