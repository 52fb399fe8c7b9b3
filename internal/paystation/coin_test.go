package paystation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/paystation/currency"
)

func TestParseCoin(t *testing.T) {
	t.Parallel()

	for _, c := range Coins() {
		parsed, err := ParseCoin(c.Cents())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}
	_, err := ParseCoin(1)
	assert.True(t, IsInvalidCoin(err))
	assert.Equal(t, "coin=1: invalid coin", err.Error())
}

func TestCoin(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []currency.Nominal{5, 10, 25}, coinNominalList())
	assert.Equal(t, "25c", Quarter.String())
	assert.Equal(t, "Coin(0)", CoinInvalid.String())
	assert.Equal(t, currency.Nominal(0), Coin(200).Nominal())
	assert.Equal(t, Dime, coinFromNominal(10))
	assert.Equal(t, CoinInvalid, coinFromNominal(3))
}

func TestParseTallyMode(t *testing.T) {
	t.Parallel()

	m, err := ParseTallyMode("")
	require.NoError(t, err)
	assert.Equal(t, TallyCount, m)
	m, err = ParseTallyMode("Presence")
	require.NoError(t, err)
	assert.Equal(t, TallyPresence, m)
	assert.Equal(t, "presence", m.String())
	_, err = ParseTallyMode("overwrite")
	assert.Error(t, err)
}

func TestRate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, DefaultRate.Validate())
	assert.Equal(t, 0, DefaultRate.MinutesFor(4))
	assert.Equal(t, 2, DefaultRate.MinutesFor(9))
	assert.Equal(t, 40, DefaultRate.MinutesFor(100))
	assert.Error(t, Rate{}.Validate())
}
