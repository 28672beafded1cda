package domain_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fd1az/pairquote/business/amm/domain"
	"github.com/fd1az/pairquote/internal/asset"
)

func TestPair_GetOutputAmount(t *testing.T) {
	p := newPair(t, amt(musdt, 101), amt(musdc, 100))

	t.Run("token0_in", func(t *testing.T) {
		out, next, err := p.GetOutputAmount(amt(musdc, 10))
		require.NoError(t, err)
		assert.True(t, out.Token().Equals(musdt))
		assert.Equal(t, big.NewInt(9), out.Raw())
		assert.Equal(t, big.NewInt(110), next.Reserve0().Raw())
		assert.Equal(t, big.NewInt(92), next.Reserve1().Raw())
		assert.Equal(t, p.Address(), next.Address())
	})

	t.Run("token1_in", func(t *testing.T) {
		out, next, err := p.GetOutputAmount(amt(musdt, 10))
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(8), out.Raw())
		assert.Equal(t, big.NewInt(92), next.Reserve0().Raw())
		assert.Equal(t, big.NewInt(111), next.Reserve1().Raw())
	})

	t.Run("does_not_mutate_receiver", func(t *testing.T) {
		_, _, err := p.GetOutputAmount(amt(musdc, 10))
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(100), p.Reserve0().Raw())
		assert.Equal(t, big.NewInt(101), p.Reserve1().Raw())
	})

	t.Run("dust_input", func(t *testing.T) {
		_, _, err := p.GetOutputAmount(amt(musdc, 1))
		assert.ErrorIs(t, err, domain.ErrInsufficientInputAmount)
	})

	t.Run("token_not_in_pair", func(t *testing.T) {
		_, _, err := p.GetOutputAmount(amt(asset.WETHTestnet, 10))
		assert.ErrorIs(t, err, domain.ErrTokenNotInPair)
	})

	t.Run("empty_reserve", func(t *testing.T) {
		empty := newPair(t, amt(musdt, 0), amt(musdc, 100))
		_, _, err := empty.GetOutputAmount(amt(musdc, 10))
		assert.ErrorIs(t, err, domain.ErrInsufficientLiquidity)
	})

	t.Run("custom_fee", func(t *testing.T) {
		fee, err := domain.NewFee(9000, 10000)
		require.NoError(t, err)
		d := domain.TestnetDeployment
		d.Fee = fee

		deep, err := domain.NewPair(d, amt(musdt, 1_000_000), amt(musdc, 1_000_000))
		require.NoError(t, err)
		out, _, err := deep.GetOutputAmount(amt(musdc, 1000))
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(899), out.Raw())

		deep = newPair(t, amt(musdt, 1_000_000), amt(musdc, 1_000_000))
		out, _, err = deep.GetOutputAmount(amt(musdc, 1000))
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(996), out.Raw())
	})
}

func TestPair_GetInputAmount(t *testing.T) {
	p := newPair(t, amt(musdt, 101), amt(musdc, 100))

	t.Run("round_trip", func(t *testing.T) {
		out, next, err := p.GetOutputAmount(amt(musdc, 10))
		require.NoError(t, err)

		in, _, err := next.GetInputAmount(out)
		require.NoError(t, err)
		assert.True(t, in.Token().Equals(musdc))
		assert.Equal(t, big.NewInt(12), in.Raw())

		in, back, err := p.GetInputAmount(out)
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(10), in.Raw())
		assert.Equal(t, big.NewInt(110), back.Reserve0().Raw())
		assert.Equal(t, big.NewInt(92), back.Reserve1().Raw())
	})

	t.Run("output_equals_reserve", func(t *testing.T) {
		_, _, err := p.GetInputAmount(amt(musdt, 101))
		assert.ErrorIs(t, err, domain.ErrInsufficientLiquidity)
	})

	t.Run("output_exceeds_reserve", func(t *testing.T) {
		_, _, err := p.GetInputAmount(amt(musdc, 1000))
		assert.ErrorIs(t, err, domain.ErrInsufficientLiquidity)
	})

	t.Run("token_not_in_pair", func(t *testing.T) {
		_, _, err := p.GetInputAmount(amt(asset.WETHTestnet, 1))
		assert.ErrorIs(t, err, domain.ErrTokenNotInPair)
	})
}

func TestPair_LargeReserves(t *testing.T) {
	p := newPair(t,
		bigAmt(t, musdc, "5000000000000000000000"),
		bigAmt(t, musdt, "10000000000000000000000000"),
	)
	oneEther := bigAmt(t, musdc, "1000000000000000000")

	out, next, err := p.GetOutputAmount(oneEther)
	require.NoError(t, err)
	assert.Equal(t, "1994602076885661310568", out.Raw().String())
	assert.Equal(t, "5001000000000000000000", next.Reserve0().Raw().String())
	assert.Equal(t, "9998005397923114338689432", next.Reserve1().Raw().String())

	in, _, err := next.GetInputAmount(out)
	require.NoError(t, err)
	assert.Equal(t, "1000399579716153373", in.Raw().String())

	in, _, err = p.GetInputAmount(out)
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000", in.Raw().String())

	out, _, err = p.GetOutputAmount(bigAmt(t, musdt, "1000000000000000000"))
	require.NoError(t, err)
	assert.Equal(t, "498749950249692", out.Raw().String())

	in, _, err = p.GetInputAmount(bigAmt(t, musdt, "1000000000000000000000"))
	require.NoError(t, err)
	assert.True(t, in.Token().Equals(musdc))
	assert.Equal(t, "501303263158396041", in.Raw().String())
}

// Buying back what a swap paid out must never cost less than the swap took in.
func TestPair_InputCoversOutput(t *testing.T) {
	p := newPair(t, amt(musdt, 7_654_321), amt(musdc, 1_234_567))

	for _, raw := range []int64{10, 999, 12_345, 500_000} {
		in := amt(musdc, raw)
		out, _, err := p.GetOutputAmount(in)
		require.NoError(t, err)

		need, _, err := p.GetInputAmount(out)
		require.NoError(t, err)
		assert.LessOrEqual(t, need.Raw().Cmp(in.Raw()), 0, "input %d", raw)

		got, _, err := p.GetOutputAmount(need)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got.Raw().Cmp(out.Raw()), 0, "input %d", raw)
	}
}
