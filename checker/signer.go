package checker

import (
	"fmt"
	"strings"

	"github.com/papermoonio/sidecar-tests-substrate/check"
	"github.com/papermoonio/sidecar-tests-substrate/document"
)

// signerKeys are the MultiAddress variants as the sidecar renders them,
// e.g. {"id": "5Grw..."}.
var signerKeys = []string{"id", "address32", "address20", "index", "raw"}

// sidecarSigner returns the signer of a signed sidecar extrinsic in the
// form scale.MultiAddress.String renders it.
func sidecarSigner(ext document.Document) (string, error) {
	const path = "signature.signer"

	v, err := ext.Value(path)
	if err != nil {
		return "", err
	}

	if s, ok := v.(string); ok {
		return normalizeSigner(s), nil
	}

	obj, err := ext.Object(path)
	if err != nil {
		return "", err
	}
	for _, key := range signerKeys {
		if !obj.Has(key) {
			continue
		}
		if key == "index" {
			index, err := obj.Uint(key)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%d", index), nil
		}
		s, err := obj.String(key)
		if err != nil {
			return "", err
		}
		return normalizeSigner(s), nil
	}

	return "", fmt.Errorf("%s: %w: unknown address variant", path, check.ErrParse)
}

// normalizeSigner lowercases hex addresses. SS58 addresses are case sensitive.
func normalizeSigner(s string) string {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return "0x" + strings.ToLower(s[2:])
	}
	return s
}
