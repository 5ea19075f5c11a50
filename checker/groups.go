package checker

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/papermoonio/sidecar-tests-substrate/check"
	"github.com/papermoonio/sidecar-tests-substrate/document"
	"github.com/papermoonio/sidecar-tests-substrate/substrate"
)

func checkNodeVersion(ctx context.Context, s *session, rec *recorder) {
	doc, sidecarErr := call(ctx, s.timeout, s.sidecar.NodeVersion)
	version, versionErr := call(ctx, s.timeout, s.chain.SystemVersion)
	chain, chainErr := call(ctx, s.timeout, s.chain.SystemChain)

	rec.compareFields(doc, sidecarErr, []field{
		{"Client Version", check.Exact(), chainValue(version, versionErr), stringAt("clientVersion")},
		{"Chain", check.Exact(), chainValue(chain, chainErr), stringAt("chain")},
	})
}

// checkRuntimeVersion reads the node's runtime version at the block the
// sidecar answered for, so a runtime upgrade between the calls is not a mismatch.
func checkRuntimeVersion(ctx context.Context, s *session, rec *recorder) {
	doc, sidecarErr := call(ctx, s.timeout, s.sidecar.RuntimeSpec)

	var (
		version    substrate.RuntimeVersion
		versionErr error
	)
	if sidecarErr == nil {
		version, versionErr = runtimeVersionAt(ctx, s, atHash(doc))
	}

	fields := []field{
		{"Spec Name", check.Exact(), chainValue(version.SpecName, versionErr), stringAt("specName")},
		{"Spec Version", check.Exact(), chainValue(version.SpecVersion, versionErr), uintAt("specVersion")},
		{"Transaction Version", check.Exact(), chainValue(version.TransactionVersion, versionErr), uintAt("transactionVersion")},
		{"Impl Version", check.Exact(), chainValue(version.ImplVersion, versionErr), uintAt("implVersion")},
		{"Authoring Version", check.Exact(), chainValue(version.AuthoringVersion, versionErr), uintAt("authoringVersion")},
	}
	rec.compareFields(doc, sidecarErr, fields)
}

func checkChainProperties(ctx context.Context, s *session, rec *recorder) {
	doc, sidecarErr := call(ctx, s.timeout, s.sidecar.RuntimeSpec)
	props, propsErr := call(ctx, s.timeout, s.chain.SystemProperties)

	var ss58Format any
	if props.SS58Format != nil {
		ss58Format = *props.SS58Format
	}

	rec.compareFields(doc, sidecarErr, []field{
		{"SS58 Format", check.Exact(), chainValue(ss58Format, propsErr), optionalUintAt("properties.ss58Format")},
		{"Token Decimals", check.SetEqual(), chainValue([]string(props.TokenDecimals), propsErr), optionalListAt("properties.tokenDecimals")},
		{"Token Symbol", check.SetEqual(), chainValue([]string(props.TokenSymbol), propsErr), optionalListAt("properties.tokenSymbol")},
	})
}

func checkTransactionMaterial(ctx context.Context, s *session, rec *recorder) {
	doc, sidecarErr := call(ctx, s.timeout, s.sidecar.TransactionMaterial)

	genesis, genesisErr := call(ctx, s.timeout, func(ctx context.Context) (string, error) {
		return s.chain.BlockHash(ctx, 0)
	})
	chain, chainErr := call(ctx, s.timeout, s.chain.SystemChain)

	var (
		version    substrate.RuntimeVersion
		versionErr error
	)
	if sidecarErr == nil {
		version, versionErr = runtimeVersionAt(ctx, s, atHash(doc))
	}

	rec.compareFields(doc, sidecarErr, []field{
		{"Genesis Hash", check.Exact(), chainValue(genesis, genesisErr), stringAt("genesisHash")},
		{"Chain Name", check.Exact(), chainValue(chain, chainErr), stringAt("chainName")},
		{"Spec Name", check.Exact(), chainValue(version.SpecName, versionErr), stringAt("specName")},
		{"Spec Version", check.Exact(), chainValue(version.SpecVersion, versionErr), uintAt("specVersion")},
		{"Transaction Version", check.Exact(), chainValue(version.TransactionVersion, versionErr), uintAt("txVersion")},
	})
}

func checkNodeNetwork(ctx context.Context, s *session, rec *recorder) {
	doc, sidecarErr := call(ctx, s.timeout, s.sidecar.NodeNetwork)
	health, healthErr := call(ctx, s.timeout, s.chain.SystemHealth)
	roles, rolesErr := call(ctx, s.timeout, s.chain.SystemNodeRoles)

	rec.compareFields(doc, sidecarErr, []field{
		{"Is Syncing", check.Exact(), chainValue(health.IsSyncing, healthErr), boolAt("isSyncing")},
		{"Should Have Peers", check.Exact(), chainValue(health.ShouldHavePeers, healthErr), boolAt("shouldHavePeers")},
		{"Peers", check.Tolerance(s.cfg.PeerTolerance), chainValue(health.Peers, healthErr), uintAt("numPeers")},
		{"Node Roles", check.CaseFold(), chainValue(joinRoles(roles), rolesErr), sidecarNodeRoles},
	})
}

// checkAccounts compares the nonce of every configured account. The node
// counts transactions waiting in its pool, the sidecar reads the stored
// nonce, so an account with pending transactions fails until they land.
func checkAccounts(ctx context.Context, s *session, rec *recorder) {
	if len(s.cfg.Accounts) == 0 {
		s.logger.Debug().Msg("no accounts configured, skipping account checks")
		return
	}

	for _, address := range s.cfg.Accounts {
		doc, sidecarErr := call(ctx, s.timeout, func(ctx context.Context) (document.Document, error) {
			return s.sidecar.AccountBalanceInfo(ctx, address)
		})
		nonce, nonceErr := call(ctx, s.timeout, func(ctx context.Context) (uint64, error) {
			return s.chain.SystemAccountNextIndex(ctx, address)
		})

		rec.compareFields(doc, sidecarErr, []field{
			{"Nonce " + address, check.Exact(), chainValue(nonce, nonceErr), uintAt("nonce")},
		})
	}
}

// checkChainHealth only queries the node, so it runs even without a sidecar.
func checkChainHealth(ctx context.Context, s *session, rec *recorder) {
	health, err := call(ctx, s.timeout, s.chain.SystemHealth)
	if err != nil {
		rec.fail("Not Syncing", err)
		rec.fail("Has Peers", err)
		return
	}

	rec.assert("Not Syncing", !health.IsSyncing, false, health.IsSyncing, "node is still syncing")

	hasPeers := !health.ShouldHavePeers || health.Peers > 0
	rec.assert("Has Peers", hasPeers, "> 0", health.Peers, "node expects peers but has none")
}

// checkFinalityLag only queries the node, so it runs even without a sidecar.
func checkFinalityLag(ctx context.Context, s *session, rec *recorder) {
	const name = "Finality Lag"

	best, err := call(ctx, s.timeout, func(ctx context.Context) (substrate.Header, error) {
		return s.chain.Header(ctx, "")
	})
	if err != nil {
		rec.fail(name, err)
		return
	}

	finalized, err := finalizedHeader(ctx, s)
	if err != nil {
		rec.fail(name, err)
		return
	}

	var lag uint64
	if best.Number > finalized.Number {
		lag = uint64(best.Number - finalized.Number)
	}

	maxLag := s.cfg.MaxFinalityLag
	rec.assert(name, lag <= maxLag, maxLag, lag,
		fmt.Sprintf("best block #%d is %d blocks ahead of finalized block #%d, more than %d", best.Number, lag, finalized.Number, maxLag))
}

/* ---------------------------- Helpers ---------------------------- */

// atHash returns the block hash a sidecar response was computed at, or ""
// when the response does not say.
func atHash(doc document.Document) string {
	hash, err := doc.String("at.hash")
	if err != nil {
		return ""
	}
	return hash
}

func runtimeVersionAt(ctx context.Context, s *session, blockHash string) (substrate.RuntimeVersion, error) {
	return call(ctx, s.timeout, func(ctx context.Context) (substrate.RuntimeVersion, error) {
		return s.chain.RuntimeVersion(ctx, blockHash)
	})
}

func finalizedHeader(ctx context.Context, s *session) (substrate.Header, error) {
	hash, err := call(ctx, s.timeout, s.chain.FinalizedHead)
	if err != nil {
		return substrate.Header{}, err
	}
	return call(ctx, s.timeout, func(ctx context.Context) (substrate.Header, error) {
		return s.chain.Header(ctx, hash)
	})
}

// sidecarNodeRoles reads nodeRoles, whose entries are either plain role
// names or single key objects such as {"full": null}.
func sidecarNodeRoles(doc document.Document) (any, error) {
	entries, err := doc.Array("nodeRoles")
	if err != nil {
		return nil, err
	}

	roles := make([]string, 0, len(entries))
	for i, entry := range entries {
		switch t := entry.(type) {
		case string:
			roles = append(roles, t)
		case map[string]any:
			if len(t) != 1 {
				return nil, fmt.Errorf("%w: nodeRoles.%d has %d keys", check.ErrParse, i, len(t))
			}
			for role := range t {
				roles = append(roles, role)
			}
		default:
			return nil, fmt.Errorf("%w: nodeRoles.%d is %T", check.ErrParse, i, entry)
		}
	}
	return joinRoles(roles), nil
}

// joinRoles renders roles as a sorted, comma separated list.
func joinRoles(roles []string) string {
	sorted := make([]string, len(roles))
	for i, role := range roles {
		sorted[i] = strings.ToLower(role)
	}
	slices.Sort(sorted)
	return strings.Join(sorted, ",")
}
