// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package stepvm

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/crypto/sha3"

	. "github.com/Fantom-foundation/Gaslighter/go/machine"
)

// codeAnalysis marks the positions of the code holding JUMPDEST instructions,
// excluding bytes that are part of PUSH data.
type codeAnalysis struct {
	jumpDests []bool
}

func analyze(code []byte) *codeAnalysis {
	jumpDests := make([]bool, len(code))
	for i := 0; i < len(code); i++ {
		op := OpCode(code[i])
		if op == JUMPDEST {
			jumpDests[i] = true
		}
		i += op.Width() - 1
	}
	return &codeAnalysis{jumpDests: jumpDests}
}

func (a *codeAnalysis) isJumpDest(pos uint64) bool {
	return pos < uint64(len(a.jumpDests)) && a.jumpDests[pos]
}

// analysisCache retains code analyses indexed by the keccak hash of the code,
// such that vectors sharing the same code are analyzed only once.
type analysisCache struct {
	cache *lru.Cache[[32]byte, *codeAnalysis]
}

func newAnalysisCache(capacity int) (*analysisCache, error) {
	cache, err := lru.New[[32]byte, *codeAnalysis](capacity)
	if err != nil {
		return nil, err
	}
	return &analysisCache{cache: cache}, nil
}

// defaultAnalysisCacheSize is the number of retained analyses.
const defaultAnalysisCacheSize = 4096

var defaultAnalysisCache = func() *analysisCache {
	cache, err := newAnalysisCache(defaultAnalysisCacheSize)
	if err != nil {
		panic(err) // < can only fail for non-positive sizes
	}
	return cache
}()

func (c *analysisCache) get(code []byte) *codeAnalysis {
	hash := keccak256(code)
	if res, found := c.cache.Get(hash); found {
		return res
	}
	res := analyze(code)
	c.cache.Add(hash, res)
	return res
}

func keccak256(data []byte) (hash [32]byte) {
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(data)
	hasher.Sum(hash[:0])
	return hash
}
