package domain

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/fd1az/pairquote/internal/asset"
	"github.com/fd1az/pairquote/internal/fraction"
)

// Fee is the fraction of every input that reaches the reserves: a
// 9975/10000 fee keeps 99.75% of the input, i.e. charges 0.25%.
// The zero value behaves as DefaultFee.
type Fee struct {
	numerator   *big.Int
	denominator *big.Int
}

// DefaultFee is the 0.25% swap fee.
var DefaultFee = Fee{numerator: big.NewInt(9975), denominator: big.NewInt(10000)}

// NewFee validates 0 < numerator <= denominator.
func NewFee(numerator, denominator uint64) (Fee, error) {
	if denominator == 0 || numerator == 0 || numerator > denominator {
		return Fee{}, fmt.Errorf("%w: %d/%d", ErrInvalidFee, numerator, denominator)
	}
	return Fee{
		numerator:   new(big.Int).SetUint64(numerator),
		denominator: new(big.Int).SetUint64(denominator),
	}, nil
}

func (f Fee) Numerator() *big.Int {
	if f.numerator == nil {
		return new(big.Int).Set(DefaultFee.numerator)
	}
	return new(big.Int).Set(f.numerator)
}

func (f Fee) Denominator() *big.Int {
	if f.denominator == nil {
		return new(big.Int).Set(DefaultFee.denominator)
	}
	return new(big.Int).Set(f.denominator)
}

// Percent returns the charged share, (denominator - numerator) / denominator.
func (f Fee) Percent() fraction.Percent {
	den := f.Denominator()
	return fraction.NewPercent(new(big.Int).Sub(den, f.Numerator()), den)
}

func (f Fee) String() string {
	return f.Percent().String()
}

// Deployment holds the per-network constants of a factory.
type Deployment struct {
	Name         string
	ChainID      uint64
	Factory      common.Address
	InitCodeHash common.Hash
	Fee          Fee
}

// Validate checks for missing constants.
func (d Deployment) Validate() error {
	if d.ChainID == 0 {
		return fmt.Errorf("%w: %s: chain id is zero", ErrInvalidDeployment, d.Name)
	}
	if d.Factory == (common.Address{}) {
		return fmt.Errorf("%w: %s: factory address is zero", ErrInvalidDeployment, d.Name)
	}
	if d.InitCodeHash == (common.Hash{}) {
		return fmt.Errorf("%w: %s: init code hash is zero", ErrInvalidDeployment, d.Name)
	}
	return nil
}

// PairAddress derives the pair address of two tokens on this deployment.
func (d Deployment) PairAddress(tokenA, tokenB *asset.Token) (common.Address, error) {
	if err := d.checkChain(tokenA, tokenB); err != nil {
		return common.Address{}, err
	}
	return ComputePairAddress(d.Factory, d.InitCodeHash, tokenA, tokenB)
}

func (d Deployment) checkChain(tokens ...*asset.Token) error {
	for _, t := range tokens {
		if t.ChainID() != d.ChainID {
			return fmt.Errorf("%w: %s is on chain %d, deployment %s is on %d",
				ErrChainMismatch, t, t.ChainID(), d.Name, d.ChainID)
		}
	}
	return nil
}

// Built-in deployments.
var (
	MainnetDeployment = Deployment{
		Name:         "mainnet",
		ChainID:      asset.ChainIDMainnet,
		Factory:      common.HexToAddress("0x3e40739d8478c58f9b973266974c58998d4f9e8b"),
		InitCodeHash: common.HexToHash("0x1380cfdf0df827009c1a086d451af646c609434128cafc98e3aa6c812fb35354"),
		Fee:          DefaultFee,
	}
	TestnetDeployment = Deployment{
		Name:         "testnet",
		ChainID:      asset.ChainIDTestnet,
		Factory:      common.HexToAddress("0x2eec20b56aeb2a20ad58fddb5b52c54d8bed3e1c"),
		InitCodeHash: common.HexToHash("0xb2a2004fadfb01ffc2282aebd766945a4af2055a101303b31e2fc932eeb87ca2"),
		Fee:          DefaultFee,
	}
)
