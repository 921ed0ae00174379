package interactive

import (
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/failsafe-org/safeguard-cli/internal/domain/config"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTransactionOptions(t *testing.T) {
	color.NoColor = true
	now := time.Unix(1_700_000_000, 0)
	txs := []models.Transaction{
		{TxHash: common.HexToHash("0xabcdef"), Description: "pay rent", Eta: now.Add(-time.Hour), CurrentlyQueued: true},
		{TxHash: common.HexToHash("0x01"), Eta: now.Add(time.Hour), CurrentlyQueued: true},
	}

	options := formatTransactionOptions(txs, now)
	require.Len(t, options, 2)
	assert.Contains(t, options[0], "[ready] pay rent")
	assert.Contains(t, options[0], "…cdef")
	assert.Contains(t, options[1], "[pending] (no description)")
}

func TestCreateFuzzySearchFunc(t *testing.T) {
	search := createFuzzySearchFunc([]string{"pay rent", "grant access"})

	assert.True(t, search("", 0))
	assert.True(t, search("RENT", 0))
	assert.True(t, search("prt", 0))
	assert.False(t, search("xyz", 1))
}

func TestSelectorAdapter_NonInteractive(t *testing.T) {
	s := NewSelectorAdapter(&config.RuntimeConfig{NonInteractive: true})

	_, err := s.SelectTransaction(context.Background(), []models.Transaction{{}, {}}, "pick")
	assert.Error(t, err)

	ok, err := s.Confirm(context.Background(), "sure?")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSelectorAdapter_SingleTransaction(t *testing.T) {
	s := NewSelectorAdapter(&config.RuntimeConfig{})
	txs := []models.Transaction{{TxHash: common.Hash{0x05}}}

	got, err := s.SelectTransaction(context.Background(), txs, "pick")
	require.NoError(t, err)
	assert.Equal(t, common.Hash{0x05}, got.TxHash)
}
