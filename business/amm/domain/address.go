package domain

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/fd1az/pairquote/internal/asset"
)

// ComputePairAddress returns the CREATE2 address the factory deploys the
// tokenA/tokenB pair to:
//
//	keccak256(0xff ++ factory ++ keccak256(token0 ++ token1) ++ initCodeHash)[12:]
//
// Argument order does not matter. Use Hex() on the result for the checksummed form.
func ComputePairAddress(factory common.Address, initCodeHash common.Hash, tokenA, tokenB *asset.Token) (common.Address, error) {
	token0, token1, err := asset.SortTokens(tokenA, tokenB)
	if err != nil {
		return common.Address{}, err
	}

	salt := crypto.Keccak256Hash(token0.Address().Bytes(), token1.Address().Bytes())
	return crypto.CreateAddress2(factory, salt, initCodeHash.Bytes()), nil
}
