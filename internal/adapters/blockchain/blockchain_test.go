package blockchain

import (
	"context"
	"io"
	"log/slog"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/failsafe-org/safeguard-cli/internal/domain"
	"github.com/failsafe-org/safeguard-cli/internal/domain/bindings"
	"github.com/failsafe-org/safeguard-cli/internal/domain/config"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPrivateKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func newTestClient(t *testing.T, cfg *config.RuntimeConfig) *Client {
	t.Helper()
	client, cleanup := NewClient(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(cleanup)
	return client
}

func TestSupportsSubscriptions(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"ws://localhost:8546", true},
		{"wss://mainnet.example/ws", true},
		{"/tmp/geth.ipc", true},
		{"http://localhost:8545", false},
		{"HTTPS://rpc.example", false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, SupportsSubscriptions(tt.url))
		})
	}
}

func TestClient_Address(t *testing.T) {
	client := newTestClient(t, &config.RuntimeConfig{Signer: config.SignerConfig{PrivateKey: testPrivateKey}})

	addr, err := client.Address()
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), addr)
}

func TestClient_AddressWithoutSigner(t *testing.T) {
	client := newTestClient(t, &config.RuntimeConfig{})

	_, err := client.Address()
	assert.ErrorIs(t, err, domain.ErrNoSigner)

	client = newTestClient(t, &config.RuntimeConfig{Signer: config.SignerConfig{PrivateKey: "0xnothex"}})
	_, err = client.Address()
	assert.ErrorIs(t, err, domain.ErrNoSigner)
}

func TestClient_RequiresNetwork(t *testing.T) {
	client := newTestClient(t, &config.RuntimeConfig{})

	_, err := client.LatestBlockTime(context.Background())
	assert.ErrorIs(t, err, errNoNetwork)
}

func TestClient_SubscriptionsOverHTTP(t *testing.T) {
	client := newTestClient(t, &config.RuntimeConfig{
		Network: &config.Network{Name: "local", RPCURL: "http://127.0.0.1:8545"},
	})
	gw := NewTimelockGateway(client)

	_, err := gw.SubscribeTransactionEvents(context.Background(), common.Address{}, make(chan models.TimelockEvent))
	assert.ErrorIs(t, err, domain.ErrSubscriptionsUnsupported)
}

func TestSafeGuardGateway_DecodeQueued(t *testing.T) {
	gw := NewSafeGuardGateway(newTestClient(t, &config.RuntimeConfig{}))
	contract := bindings.NewSafeGuard()
	target := common.HexToAddress("0x1111111111111111111111111111111111111111")

	ev := contract.ABI().Events[bindings.SafeGuardQueueTransactionWithDescriptionEventName]
	data, err := ev.Inputs.NonIndexed().Pack(big.NewInt(0), "", []byte{0xaa}, big.NewInt(1700000000), "rent")
	require.NoError(t, err)

	tx, err := gw.decodeQueued(&types.Log{
		Topics:      []common.Hash{contract.QueueTransactionWithDescriptionEventID(), {0x07}, common.BytesToHash(target.Bytes())},
		Data:        data,
		BlockNumber: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, common.Hash{0x07}, tx.TxHash)
	assert.Equal(t, target, tx.Target)
	assert.Equal(t, uint64(12), tx.BlockNumber)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), tx.Eta)
	assert.Equal(t, "rent", tx.Description)
}

func TestTimelockGateway_DecodeKinds(t *testing.T) {
	gw := NewTimelockGateway(newTestClient(t, &config.RuntimeConfig{}))
	contract := bindings.NewTimelock()

	for name, kind := range timelockEventKinds {
		ev := contract.ABI().Events[name]
		data, err := ev.Inputs.NonIndexed().Pack(big.NewInt(0), "", []byte{}, big.NewInt(10))
		require.NoError(t, err)

		out, err := gw.decode(&types.Log{
			Topics: []common.Hash{contract.EventID(name), {0x01}, {}},
			Data:   data,
		})
		require.NoError(t, err, name)
		assert.Equal(t, kind, out.Kind)
		assert.Equal(t, common.Hash{0x01}, out.TxHash)
	}
}

func TestFactoryGateway_DecoderSetsKind(t *testing.T) {
	gw := NewFactoryGateway(newTestClient(t, &config.RuntimeConfig{}))
	contract := bindings.NewFactory()
	admin := common.HexToAddress("0x00000000000000000000000000000000000000a1")
	safe := common.HexToAddress("0x00000000000000000000000000000000000000b2")
	timelock := common.HexToAddress("0x00000000000000000000000000000000000000c3")

	ev := contract.ABI().Events[bindings.FactoryRolManagerCreatedEventName]
	data, err := ev.Inputs.NonIndexed().Pack("treasury")
	require.NoError(t, err)

	out, err := gw.decoder(models.SafeKindFailSafe)(&types.Log{
		Topics: []common.Hash{
			contract.EventID(bindings.FactoryRolManagerCreatedEventName),
			common.BytesToHash(admin.Bytes()),
			common.BytesToHash(safe.Bytes()),
			common.BytesToHash(timelock.Bytes()),
		},
		Data:   data,
		TxHash: common.Hash{0x0c},
	})
	require.NoError(t, err)
	assert.Equal(t, models.SafeKindFailSafe, out.Kind)
	assert.Equal(t, "treasury", out.Name)
	assert.Equal(t, safe, out.Address)
	assert.Equal(t, timelock, out.Timelock)
	assert.Equal(t, admin, out.Admin)
	assert.Equal(t, common.Hash{0x0c}, out.CreationTx)
}

func TestDurations(t *testing.T) {
	assert.Equal(t, 2*24*time.Hour, secondsDuration(big.NewInt(172800)))
	assert.Equal(t, time.Duration(0), secondsDuration(nil))
	assert.Equal(t, int64(90), delaySeconds(90*time.Second+500*time.Millisecond).Int64())
	assert.True(t, unixTime(nil).IsZero())
}
