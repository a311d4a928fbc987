// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"fmt"
	"math"
	"math/big"
	"os"
	"path"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/ava-labs/avalanchego/utils/perms"

	formatter "github.com/onsi/ginkgo/v2/formatter"
)

func ToID(bytes []byte) ids.ID {
	return ids.ID(hashing.ComputeHash256Array(bytes))
}

func InitSubDirectory(rootPath string, name string) (string, error) {
	p := path.Join(rootPath, name)
	return p, os.MkdirAll(p, perms.ReadWriteExecute)
}

// Outputs to stdout.
//
// e.g.,
//
//	Out("{{green}}{{bold}}hi there %q{{/}}", "aa")
//	Out("{{magenta}}{{bold}}hi therea{{/}} {{cyan}}{{underline}}b{{/}}")
//
// ref.
// https://github.com/onsi/ginkgo/blob/v2.0.0/formatter/formatter.go#L52-L73
func Outf(format string, args ...interface{}) {
	s := formatter.F(format, args...)
	fmt.Fprint(formatter.ColorableStdOut, s)
}

// FormatBalance renders [bal] base units of a token with [decimals].
func FormatBalance(bal uint64, decimals uint8) string {
	if decimals == 0 {
		return fmt.Sprintf("%d", bal)
	}
	r := new(big.Rat).SetFrac(
		new(big.Int).SetUint64(bal),
		new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil),
	)
	return r.FloatString(int(decimals))
}

// ParseBalance converts a decimal string into base units of a token with
// [decimals].
func ParseBalance(bal string, decimals uint8) (uint64, error) {
	r, ok := new(big.Rat).SetString(bal)
	if !ok {
		return 0, fmt.Errorf("invalid balance %q", bal)
	}
	r.Mul(r, new(big.Rat).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)))
	if !r.IsInt() || r.Sign() < 0 {
		return 0, fmt.Errorf("balance %q is not a whole number of base units", bal)
	}
	v := r.Num()
	if !v.IsUint64() {
		return 0, fmt.Errorf("balance %q overflows (max %d)", bal, uint64(math.MaxUint64))
	}
	return v.Uint64(), nil
}
