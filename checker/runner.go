// Package checker runs the conformance checks that compare the sidecar
// REST API with the node it fronts.
//
// Every check group fetches the same logical values from both endpoints and
// records one result per field. A failing fetch fails the fields that depend
// on it and the run moves on to the next group.
package checker

import (
	"context"
	"sync"
	"time"

	"github.com/pokt-network/poktroll/pkg/polylog"

	"github.com/papermoonio/sidecar-tests-substrate/config"
	"github.com/papermoonio/sidecar-tests-substrate/report"
	"github.com/papermoonio/sidecar-tests-substrate/substrate"
	"github.com/papermoonio/sidecar-tests-substrate/substrate/scale"
)

// Check group names, as printed in the report.
const (
	GroupNodeVersion         = "Node Version"
	GroupRuntimeVersion      = "Runtime Version"
	GroupChainProperties     = "Chain Properties"
	GroupTransactionMaterial = "Transaction Material"
	GroupNodeNetwork         = "Node Network"
	GroupHeadBlock           = "Head Block"
	GroupLastBlocks          = "Last N Blocks"
	GroupAccounts            = "Accounts"
	GroupChainHealth         = "Chain Health"
	GroupFinalityLag         = "Finality Lag"
)

type groupFunc func(ctx context.Context, s *session, rec *recorder)

type group struct {
	name string
	run  groupFunc
}

var groups = map[config.CheckID]group{
	config.CheckNodeVersion:         {GroupNodeVersion, checkNodeVersion},
	config.CheckRuntimeVersion:      {GroupRuntimeVersion, checkRuntimeVersion},
	config.CheckChainProperties:     {GroupChainProperties, checkChainProperties},
	config.CheckTransactionMaterial: {GroupTransactionMaterial, checkTransactionMaterial},
	config.CheckNodeNetwork:         {GroupNodeNetwork, checkNodeNetwork},
	config.CheckHeadBlock:           {GroupHeadBlock, checkHeadBlock},
	config.CheckLastBlocks:          {GroupLastBlocks, checkLastBlocks},
	config.CheckAccounts:            {GroupAccounts, checkAccounts},
	config.CheckChainHealth:         {GroupChainHealth, checkChainHealth},
	config.CheckFinalityLag:         {GroupFinalityLag, checkFinalityLag},
}

// Runner executes the enabled check groups in order.
type Runner struct {
	Logger polylog.Logger

	Sidecar SidecarAPI
	Chain   ChainAPI

	Config config.ChecksConfig

	// RequestTimeout bounds every single request. Zero disables the bound.
	RequestTimeout time.Duration

	// OnBlockChecked, when set, is called once per block compared by the
	// Last N Blocks group. It may be called from several goroutines.
	OnBlockChecked func()
}

// Run executes every enabled group and appends the results to rep.
// A cancelled ctx stops the run before the next group starts.
func (r *Runner) Run(ctx context.Context, rep *report.Report) {
	s := &session{
		logger:  r.Logger,
		sidecar: r.Sidecar,
		chain:   r.Chain,
		cfg:     r.Config,
		timeout: r.RequestTimeout,
		onBlock: r.OnBlockChecked,
	}

	for _, id := range config.AllChecks {
		if !r.Config.IsEnabled(id) {
			continue
		}
		if err := ctx.Err(); err != nil {
			r.Logger.Warn().Err(err).Str("check", string(id)).Msg("run cancelled, skipping remaining checks")
			break
		}

		g := groups[id]
		logger := r.Logger.With("check", string(id))
		logger.Info().Msgf("running %s checks", g.name)

		rec := newRecorder(g.name)
		g.run(ctx, s, rec)
		results := rec.finish()

		rep.Add(results...)
		for _, note := range rec.notes {
			rep.Notef("%s: %s", g.name, note)
		}

		passed := 0
		for _, result := range results {
			if result.Passed {
				passed++
			} else {
				logger.Debug().Str("field", result.Name).Msg(result.Message)
			}
		}
		logger.Info().Int("passed", passed).Int("total", len(results)).Msgf("%s checks finished", g.name)
	}
}

// session holds the state shared by the groups of one run.
type session struct {
	logger  polylog.Logger
	sidecar SidecarAPI
	chain   ChainAPI
	cfg     config.ChecksConfig
	timeout time.Duration
	onBlock func()

	propsOnce sync.Once
	props     substrate.Properties
	propsErr  error

	ss58Once   sync.Once
	ss58Prefix uint16

	signerOnce   sync.Once
	signerFormat scale.SignerFormat
}

// properties fetches the chain properties once per run.
func (s *session) properties(ctx context.Context) (substrate.Properties, error) {
	s.propsOnce.Do(func() {
		s.props, s.propsErr = call(ctx, s.timeout, s.chain.SystemProperties)
	})
	return s.props, s.propsErr
}

// ss58 returns the address format used to render signers: the configured
// prefix, else the chain's ss58Format property, else the generic format.
func (s *session) ss58(ctx context.Context) uint16 {
	s.ss58Once.Do(func() {
		if s.cfg.SS58Prefix != nil {
			s.ss58Prefix = *s.cfg.SS58Prefix
			return
		}

		props, err := s.properties(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msgf("cannot read chain properties, rendering addresses with prefix %d", scale.DefaultSS58Prefix)
			s.ss58Prefix = scale.DefaultSS58Prefix
			return
		}
		s.ss58Prefix = props.SS58Prefix()
	})
	return s.ss58Prefix
}

// signers returns the encoding of extrinsic signers: the configured format,
// else account20 when the chain reports isEthereum, else multiaddress.
func (s *session) signers(ctx context.Context) scale.SignerFormat {
	s.signerOnce.Do(func() {
		if s.cfg.SignerFormat != "" && s.cfg.SignerFormat != config.SignerFormatAuto {
			format, err := scale.ParseSignerFormat(s.cfg.SignerFormat)
			if err == nil {
				s.signerFormat = format
				return
			}
			s.logger.Warn().Err(err).Msg("ignoring configured signer format")
		}

		props, err := s.properties(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msgf("cannot read chain properties, decoding signers as %s", scale.SignerMultiAddress)
			s.signerFormat = scale.SignerMultiAddress
			return
		}
		s.signerFormat = props.SignerFormat()
	})
	return s.signerFormat
}

func (s *session) blockChecked() {
	if s.onBlock != nil {
		s.onBlock()
	}
}

// call runs fn with a context bounded by the per-request timeout.
func call[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return fn(ctx)
}
