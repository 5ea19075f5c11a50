package checker

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/papermoonio/sidecar-tests-substrate/check"
	"github.com/papermoonio/sidecar-tests-substrate/document"
	"github.com/papermoonio/sidecar-tests-substrate/substrate"
	"github.com/papermoonio/sidecar-tests-substrate/substrate/scale"
)

// Extrinsic level field names.
const (
	fieldTimestamp       = "Timestamp"
	fieldExtrinsicHashes = "Extrinsic Hashes"
	fieldSigned          = "Signed Extrinsics"
	fieldSigners         = "Extrinsic Signers"
)

// inherents are the extrinsics block authors insert themselves. They are
// left out of the transaction statistics.
var inherents = map[[2]string]bool{
	{"timestamp", "set"}:                              true,
	{"parachainSystem", "setValidationData"}:          true,
	{"parachainSystem", "sudo"}:                       true,
	{"paraInherent", "enter"}:                         true,
	{"authorInherent", "kickOffAuthorshipValidation"}: true,
}

type blockStats struct {
	counted      bool
	extrinsics   int
	transactions int
}

// checkHeadBlock compares the sidecar's finalized head with the node's block
// at the same height, then makes sure the node has finalized that height.
func checkHeadBlock(ctx context.Context, s *session, rec *recorder) {
	const finalizedField = "Not Ahead Of Finalized"

	doc, sidecarErr := call(ctx, s.timeout, s.sidecar.BlockHead)

	var number uint64
	if sidecarErr == nil {
		number, sidecarErr = doc.Uint("number")
	}

	compareBlock(ctx, s, rec, "", number, doc, sidecarErr)
	compareHeader(ctx, s, rec, number, sidecarErr)

	if sidecarErr != nil {
		rec.fail(finalizedField, sidecarErr)
		return
	}

	finalized, err := finalizedHeader(ctx, s)
	if err != nil {
		rec.fail(finalizedField, err)
		return
	}

	rec.assert(finalizedField, uint64(finalized.Number) >= number, number, uint64(finalized.Number),
		fmt.Sprintf("sidecar head #%d is ahead of the node's finalized head #%d", number, finalized.Number))
}

// checkLastBlocks compares the last NumBlocks blocks, walking back from the
// sidecar's head. Blocks are fetched by a bounded pool of workers and their
// results are recorded in block order.
func checkLastBlocks(ctx context.Context, s *session, rec *recorder) {
	head, err := lastBlocksHead(ctx, s, rec)
	if err != nil {
		rec.fail("Head Number", err)
		return
	}

	var numbers []uint64
	for i := uint64(0); i < uint64(s.cfg.NumBlocks) && i <= head; i++ {
		numbers = append(numbers, head-i)
	}

	recorders := make([]*recorder, len(numbers))
	stats := make([]blockStats, len(numbers))

	var g errgroup.Group
	g.SetLimit(max(s.cfg.Concurrency, 1))
	for i, number := range numbers {
		g.Go(func() error {
			blockRec := newRecorder(rec.group)

			doc, sidecarErr := call(ctx, s.timeout, func(ctx context.Context) (document.Document, error) {
				return s.sidecar.Block(ctx, strconv.FormatUint(number, 10))
			})
			stats[i] = compareBlock(ctx, s, blockRec, fmt.Sprintf("#%d ", number), number, doc, sidecarErr)
			recorders[i] = blockRec

			s.blockChecked()
			return nil
		})
	}
	_ = g.Wait()

	var total blockStats
	for _, blockRec := range recorders {
		rec.results = append(rec.results, blockRec.results...)
	}
	counted := 0
	for _, st := range stats {
		if !st.counted {
			continue
		}
		counted++
		total.extrinsics += st.extrinsics
		total.transactions += st.transactions
	}

	if len(numbers) > 0 {
		rec.notef("blocks #%d to #%d, %d extrinsics, %d transactions excluding inherents (%d of %d blocks counted)",
			numbers[len(numbers)-1], numbers[0], total.extrinsics, total.transactions, counted, len(numbers))
	}
}

// lastBlocksHead returns the sidecar's head number, falling back to the
// node's finalized head when the sidecar cannot tell.
func lastBlocksHead(ctx context.Context, s *session, rec *recorder) (uint64, error) {
	doc, err := call(ctx, s.timeout, s.sidecar.BlockHead)
	if err == nil {
		var head uint64
		if head, err = doc.Uint("number"); err == nil {
			return head, nil
		}
	}

	s.logger.Warn().Err(err).Msg("cannot read the sidecar head, walking back from the node's finalized head")
	rec.notef("sidecar head unavailable (%s), walking back from the node's finalized head", check.KindOf(err))

	finalized, chainErr := finalizedHeader(ctx, s)
	if chainErr != nil {
		return 0, chainErr
	}
	return uint64(finalized.Number), nil
}

// compareBlock records the header, extrinsic and timestamp fields of block
// number. prefix is prepended to every field name. The node is not queried
// when the sidecar document could not be fetched.
func compareBlock(
	ctx context.Context,
	s *session,
	rec *recorder,
	prefix string,
	number uint64,
	doc document.Document,
	sidecarErr error,
) blockStats {
	var (
		hash    string
		block   substrate.SignedBlock
		hashErr error
	)
	if sidecarErr == nil {
		hash, hashErr = call(ctx, s.timeout, func(ctx context.Context) (string, error) {
			return s.chain.BlockHash(ctx, number)
		})
	}

	blockErr := hashErr
	if sidecarErr == nil && hashErr == nil {
		block, blockErr = call(ctx, s.timeout, func(ctx context.Context) (substrate.SignedBlock, error) {
			return s.chain.Block(ctx, hash)
		})
	}

	header := block.Block.Header
	rec.compareFields(doc, sidecarErr, []field{
		{prefix + "Number", check.Exact(), chainValue(uint64(header.Number), blockErr), uintAt("number")},
		{prefix + "Hash", check.Exact(), chainValue(hash, hashErr), stringAt("hash")},
		{prefix + "Parent Hash", check.Exact(), chainValue(header.ParentHash, blockErr), stringAt("parentHash")},
		{prefix + "State Root", check.Exact(), chainValue(header.StateRoot, blockErr), stringAt("stateRoot")},
		{prefix + "Extrinsics Root", check.Exact(), chainValue(header.ExtrinsicsRoot, blockErr), stringAt("extrinsicsRoot")},
		{prefix + "Extrinsic Count", check.Exact(), chainValue(len(block.Block.Extrinsics), blockErr), extrinsicCount},
	})

	err := sidecarErr
	if err == nil {
		err = blockErr
	}

	var sidecarExts []document.Document
	if err == nil {
		sidecarExts, err = doc.Objects("extrinsics")
	}

	var chainExts []scale.Extrinsic
	if err == nil {
		chainExts, err = block.Block.DecodeExtrinsics(s.signers(ctx))
		if err != nil {
			err = fmt.Errorf("%w: %w", check.ErrParse, err)
		}
	}

	if err != nil {
		for _, name := range []string{fieldTimestamp, fieldExtrinsicHashes, fieldSigned, fieldSigners} {
			rec.fail(prefix+name, err)
		}
		return blockStats{}
	}

	compareTimestamp(rec, prefix, s.cfg.BlockTimeTolerance, sidecarExts, chainExts)
	compareExtrinsics(ctx, s, rec, prefix, sidecarExts, chainExts)

	return countTransactions(sidecarExts)
}

// compareHeader compares the sidecar's /blocks/{n}/header with chain_getHeader.
// headErr is the error of the request that resolved n, if any.
func compareHeader(ctx context.Context, s *session, rec *recorder, number uint64, headErr error) {
	var (
		doc        document.Document
		sidecarErr = headErr
		header     substrate.Header
		chainErr   error
	)
	if sidecarErr == nil {
		doc, sidecarErr = call(ctx, s.timeout, func(ctx context.Context) (document.Document, error) {
			return s.sidecar.BlockHeader(ctx, strconv.FormatUint(number, 10))
		})
	}
	if sidecarErr == nil {
		var hash string
		hash, chainErr = call(ctx, s.timeout, func(ctx context.Context) (string, error) {
			return s.chain.BlockHash(ctx, number)
		})
		if chainErr == nil {
			header, chainErr = call(ctx, s.timeout, func(ctx context.Context) (substrate.Header, error) {
				return s.chain.Header(ctx, hash)
			})
		}
	}

	rec.compareFields(doc, sidecarErr, []field{
		{"Header Number", check.Exact(), chainValue(uint64(header.Number), chainErr), uintAt("number")},
		{"Header Parent Hash", check.Exact(), chainValue(header.ParentHash, chainErr), stringAt("parentHash")},
		{"Header State Root", check.Exact(), chainValue(header.StateRoot, chainErr), stringAt("stateRoot")},
		{"Header Extrinsics Root", check.Exact(), chainValue(header.ExtrinsicsRoot, chainErr), stringAt("extrinsicsRoot")},
	})
}

func extrinsicCount(doc document.Document) (any, error) {
	exts, err := doc.Array("extrinsics")
	if err != nil {
		return nil, err
	}
	return len(exts), nil
}

// compareTimestamp compares the argument of timestamp.set. The node's
// extrinsic is located at the index where the sidecar reports the call,
// since call names cannot be decoded without metadata. Blocks without
// timestamp.set, such as genesis, record nothing.
func compareTimestamp(rec *recorder, prefix string, tolerance float64, sidecarExts []document.Document, chainExts []scale.Extrinsic) {
	name := prefix + fieldTimestamp

	index := -1
	for i, ext := range sidecarExts {
		if pallet, method := extrinsicCall(ext); pallet == "timestamp" && method == "set" {
			index = i
			break
		}
	}
	if index < 0 {
		return
	}

	now, err := sidecarExts[index].Uint("args.now")
	if err != nil {
		rec.fail(name, err)
		return
	}

	if index >= len(chainExts) {
		rec.fail(name, fmt.Errorf("%w: the node's block has no extrinsic %d", check.ErrMismatch, index))
		return
	}

	chainNow, err := chainExts[index].DecodeCompactArg()
	if err != nil {
		rec.fail(name, fmt.Errorf("%w: extrinsic %d: %w", check.ErrParse, index, err))
		return
	}

	rec.compare(name, chainNow, now, check.Tolerance(tolerance))
}

// compareExtrinsics compares hash, signed flag and signer of every extrinsic.
func compareExtrinsics(ctx context.Context, s *session, rec *recorder, prefix string, sidecarExts []document.Document, chainExts []scale.Extrinsic) {
	prefixSS58 := s.ss58(ctx)

	chainHashes := make([]string, len(chainExts))
	chainSigned := make([]bool, len(chainExts))
	chainSigners := make([]string, len(chainExts))
	var signerErr error
	for i, ext := range chainExts {
		chainHashes[i] = ext.HashHex()
		chainSigned[i] = ext.Signed
		if ext.SignerErr != nil {
			if signerErr == nil {
				signerErr = fmt.Errorf("%w: extrinsic %d: %w", check.ErrParse, i, ext.SignerErr)
			}
			continue
		}
		if ext.Signer == nil {
			continue
		}
		signer, err := ext.Signer.String(prefixSS58)
		if err != nil && signerErr == nil {
			signerErr = fmt.Errorf("%w: extrinsic %d signer: %w", check.ErrParse, i, err)
		}
		chainSigners[i] = signer
	}

	sidecarHashes := make([]string, len(sidecarExts))
	sidecarSigned := make([]bool, len(sidecarExts))
	sidecarSigners := make([]string, len(sidecarExts))
	var hashErr, sidecarSignerErr error
	for i, ext := range sidecarExts {
		hash, err := ext.String("hash")
		if err != nil && hashErr == nil {
			hashErr = fmt.Errorf("extrinsic %d: %w", i, err)
		}
		sidecarHashes[i] = hash

		sidecarSigned[i] = ext.Has("signature")
		if !sidecarSigned[i] {
			continue
		}
		signer, err := sidecarSigner(ext)
		if err != nil && sidecarSignerErr == nil {
			sidecarSignerErr = fmt.Errorf("extrinsic %d: %w", i, err)
		}
		sidecarSigners[i] = signer
	}

	if hashErr != nil {
		rec.fail(prefix+fieldExtrinsicHashes, hashErr)
	} else {
		compareSeq(rec, prefix+fieldExtrinsicHashes, chainHashes, sidecarHashes)
	}

	compareSeq(rec, prefix+fieldSigned, chainSigned, sidecarSigned)

	switch {
	case signerErr != nil:
		rec.fail(prefix+fieldSigners, signerErr)
	case sidecarSignerErr != nil:
		rec.fail(prefix+fieldSigners, sidecarSignerErr)
	default:
		compareSeq(rec, prefix+fieldSigners, chainSigners, sidecarSigners)
	}
}

// compareSeq compares two ordered lists and names the first difference.
func compareSeq[T comparable](rec *recorder, name string, expected, actual []T) {
	result := check.Compare(name, expected, actual, check.Exact())
	if result.Kind == check.KindMismatch {
		result.Message = seqMismatch(expected, actual)
	}
	rec.add(result)
}

func seqMismatch[T comparable](expected, actual []T) string {
	if len(expected) != len(actual) {
		return fmt.Sprintf("Mismatch - Sidecar: %d extrinsics, RPC: %d extrinsics", len(actual), len(expected))
	}
	for i := range expected {
		if expected[i] != actual[i] {
			return fmt.Sprintf("Mismatch at extrinsic %d - Sidecar: %s, RPC: %s", i, formatValue(actual[i]), formatValue(expected[i]))
		}
	}
	return "Mismatch - Sidecar and RPC differ"
}

func extrinsicCall(ext document.Document) (pallet, method string) {
	pallet, _ = ext.String("method.pallet")
	method, _ = ext.String("method.method")
	return pallet, method
}

func countTransactions(exts []document.Document) blockStats {
	st := blockStats{counted: true, extrinsics: len(exts)}
	for _, ext := range exts {
		pallet, method := extrinsicCall(ext)
		if !inherents[[2]string{pallet, method}] {
			st.transactions++
		}
	}
	return st
}
