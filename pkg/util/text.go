// pkg/util/text.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"hash/fnv"
	"io"
	"strconv"
	"strings"
)

// Atof is a utility for parsing floating point values out of tabular
// input fields; it trims surrounding whitespace before handing off to
// strconv so that ragged CSV columns don't trip schema validation.
func Atof(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func IsAllNumbers(s string) bool {
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}

// HashString64 gives a stable, seed-independent fingerprint of a string;
// used to derive a per-scenario PRNG seed from its name when none is
// given explicitly.
func HashString64(s string) uint64 {
	hash := fnv.New64a()
	io.Copy(hash, strings.NewReader(s))
	return hash.Sum64()
}
