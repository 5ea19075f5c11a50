package checker

//go:generate mockgen -source=api.go -destination=api_mock_test.go -package=checker

import (
	"context"
	"fmt"

	"github.com/papermoonio/sidecar-tests-substrate/check"
	"github.com/papermoonio/sidecar-tests-substrate/document"
	"github.com/papermoonio/sidecar-tests-substrate/sidecar"
	"github.com/papermoonio/sidecar-tests-substrate/substrate"
)

// SidecarAPI is the subset of the sidecar REST API the checks read.
type SidecarAPI interface {
	BlockHead(ctx context.Context) (document.Document, error)
	Block(ctx context.Context, id string) (document.Document, error)
	BlockHeader(ctx context.Context, id string) (document.Document, error)
	NodeVersion(ctx context.Context) (document.Document, error)
	NodeNetwork(ctx context.Context) (document.Document, error)
	RuntimeSpec(ctx context.Context) (document.Document, error)
	TransactionMaterial(ctx context.Context) (document.Document, error)
	AccountBalanceInfo(ctx context.Context, address string) (document.Document, error)
}

// ChainAPI is the subset of the node JSON-RPC API the checks read.
type ChainAPI interface {
	SystemVersion(ctx context.Context) (string, error)
	SystemChain(ctx context.Context) (string, error)
	SystemProperties(ctx context.Context) (substrate.Properties, error)
	SystemHealth(ctx context.Context) (substrate.Health, error)
	SystemNodeRoles(ctx context.Context) ([]string, error)
	SystemAccountNextIndex(ctx context.Context, address string) (uint64, error)
	RuntimeVersion(ctx context.Context, blockHash string) (substrate.RuntimeVersion, error)
	FinalizedHead(ctx context.Context) (string, error)
	BlockHash(ctx context.Context, number uint64) (string, error)
	Header(ctx context.Context, blockHash string) (substrate.Header, error)
	Block(ctx context.Context, blockHash string) (substrate.SignedBlock, error)
}

var (
	_ SidecarAPI = (*sidecar.Client)(nil)
	_ ChainAPI   = (*substrate.Client)(nil)
)

// UnavailableChain returns a ChainAPI failing every call with err.
// It stands in for the node when the WebSocket dial failed, so the
// chain dependent checks fail one by one instead of aborting the run.
func UnavailableChain(err error) ChainAPI {
	if check.KindOf(err) == check.KindUnknown {
		err = fmt.Errorf("%w: %w", check.ErrNetwork, err)
	}
	return unavailableChain{err: fmt.Errorf("node unavailable: %w", err)}
}

type unavailableChain struct {
	err error
}

func (u unavailableChain) SystemVersion(context.Context) (string, error) { return "", u.err }
func (u unavailableChain) SystemChain(context.Context) (string, error)   { return "", u.err }
func (u unavailableChain) SystemProperties(context.Context) (substrate.Properties, error) {
	return substrate.Properties{}, u.err
}
func (u unavailableChain) SystemHealth(context.Context) (substrate.Health, error) {
	return substrate.Health{}, u.err
}
func (u unavailableChain) SystemNodeRoles(context.Context) ([]string, error) { return nil, u.err }
func (u unavailableChain) SystemAccountNextIndex(context.Context, string) (uint64, error) {
	return 0, u.err
}
func (u unavailableChain) RuntimeVersion(context.Context, string) (substrate.RuntimeVersion, error) {
	return substrate.RuntimeVersion{}, u.err
}
func (u unavailableChain) FinalizedHead(context.Context) (string, error)     { return "", u.err }
func (u unavailableChain) BlockHash(context.Context, uint64) (string, error) { return "", u.err }
func (u unavailableChain) Header(context.Context, string) (substrate.Header, error) {
	return substrate.Header{}, u.err
}
func (u unavailableChain) Block(context.Context, string) (substrate.SignedBlock, error) {
	return substrate.SignedBlock{}, u.err
}
