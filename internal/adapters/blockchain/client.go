package blockchain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/failsafe-org/safeguard-cli/internal/domain"
	"github.com/failsafe-org/safeguard-cli/internal/domain/config"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
	"github.com/failsafe-org/safeguard-cli/internal/usecase"
)

var errNoNetwork = errors.New("no network configured (use --network or `safeguard config set network <name>`)")

// backend is the part of ethclient the gateways use
type backend interface {
	ethereum.BlockNumberReader
	ethereum.ChainReader
	ethereum.ChainIDReader
	ethereum.ContractCaller
	ethereum.GasEstimator
	ethereum.GasPricer
	ethereum.GasPricer1559
	ethereum.LogFilterer
	ethereum.PendingStateReader
	ethereum.TransactionReader
	ethereum.TransactionSender
}

// Client is a lazily dialed ethclient shared by the contract gateways.
// Commands that never touch the chain never open a connection.
type Client struct {
	rpcURL       string
	chainID      uint64
	privateKey   string
	pollInterval time.Duration
	log          *slog.Logger

	mu        sync.Mutex
	client    backend
	closeConn func()
	key       *ecdsa.PrivateKey
}

// NewClient creates a client for the selected network
func NewClient(cfg *config.RuntimeConfig, log *slog.Logger) (*Client, func()) {
	c := &Client{
		privateKey:   cfg.Signer.PrivateKey,
		pollInterval: cfg.Actions.PollInterval,
		log:          log.With("component", "blockchain"),
	}
	if cfg.Network != nil {
		c.rpcURL = cfg.Network.RPCURL
		c.chainID = cfg.Network.ChainID
	}
	if c.pollInterval <= 0 {
		c.pollInterval = config.DefaultActionsConfig().PollInterval
	}
	return c, c.Close
}

// Close releases the underlying connection, if any
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closeConn != nil {
		c.closeConn()
		c.closeConn = nil
	}
	c.client = nil
}

// conn dials on first use and verifies the chain ID matches the network
func (c *Client) conn(ctx context.Context) (backend, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, nil
	}
	if c.rpcURL == "" {
		return nil, errNoNetwork
	}

	client, err := ethclient.DialContext(ctx, c.rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	// Verify chain ID matches
	networkChainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	// If chainID was 0, use the network's chain ID
	if c.chainID != 0 && networkChainID.Uint64() != c.chainID {
		client.Close()
		return nil, fmt.Errorf("chain ID mismatch: expected %d, got %d", c.chainID, networkChainID.Uint64())
	}
	c.chainID = networkChainID.Uint64()
	c.client = client
	c.closeConn = client.Close

	c.log.Debug("connected", "chain_id", c.chainID)
	return client, nil
}

// subscriber returns the connection when its transport can stream logs
func (c *Client) subscriber(ctx context.Context) (backend, error) {
	if !SupportsSubscriptions(c.rpcURL) {
		return nil, domain.ErrSubscriptionsUnsupported
	}
	return c.conn(ctx)
}

// SupportsSubscriptions reports whether the RPC URL uses a streaming transport
func SupportsSubscriptions(rpcURL string) bool {
	lower := strings.ToLower(rpcURL)
	return !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://")
}

// Address returns the signer address derived from the configured private key
func (c *Client) Address() (common.Address, error) {
	key, err := c.signingKey()
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(key.PublicKey), nil
}

func (c *Client) signingKey() (*ecdsa.PrivateKey, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.key != nil {
		return c.key, nil
	}
	if c.privateKey == "" {
		return nil, domain.ErrNoSigner
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(c.privateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid private key: %w", domain.ErrNoSigner, err)
	}
	c.key = key
	return key, nil
}

func (c *Client) call(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	client, err := c.conn(ctx)
	if err != nil {
		return nil, err
	}
	return client.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
}

// transact signs and sends a call to `to`, returning the transaction hash.
// Dynamic fee transactions are used when the chain reports a base fee.
func (c *Client) transact(ctx context.Context, to common.Address, data []byte) (common.Hash, error) {
	key, err := c.signingKey()
	if err != nil {
		return common.Hash{}, err
	}
	client, err := c.conn(ctx)
	if err != nil {
		return common.Hash{}, err
	}
	from := crypto.PubkeyToAddress(key.PublicKey)

	nonce, err := client.PendingNonceAt(ctx, from)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to get nonce: %w", err)
	}
	gas, err := client.EstimateGas(ctx, ethereum.CallMsg{From: from, To: &to, Data: data})
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to estimate gas: %w", err)
	}
	head, err := client.HeaderByNumber(ctx, nil)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to get latest header: %w", err)
	}

	chainID := new(big.Int).SetUint64(c.chainID)
	var tx *types.Transaction
	if head.BaseFee != nil {
		tip, err := client.SuggestGasTipCap(ctx)
		if err != nil {
			return common.Hash{}, fmt.Errorf("failed to suggest gas tip: %w", err)
		}
		feeCap := new(big.Int).Add(tip, new(big.Int).Mul(head.BaseFee, big.NewInt(2)))
		tx = types.NewTx(&types.DynamicFeeTx{
			ChainID:   chainID,
			Nonce:     nonce,
			GasTipCap: tip,
			GasFeeCap: feeCap,
			Gas:       gas,
			To:        &to,
			Data:      data,
		})
	} else {
		gasPrice, err := client.SuggestGasPrice(ctx)
		if err != nil {
			return common.Hash{}, fmt.Errorf("failed to suggest gas price: %w", err)
		}
		tx = types.NewTx(&types.LegacyTx{
			Nonce:    nonce,
			GasPrice: gasPrice,
			Gas:      gas,
			To:       &to,
			Data:     data,
		})
	}

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), key)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to sign transaction: %w", err)
	}
	if err := client.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, fmt.Errorf("failed to send transaction: %w", err)
	}

	c.log.Debug("transaction sent", "hash", signed.Hash().Hex(), "to", to.Hex(), "nonce", nonce)
	return signed.Hash(), nil
}

// LatestBlockTime returns the timestamp of the latest block
func (c *Client) LatestBlockTime(ctx context.Context) (time.Time, error) {
	client, err := c.conn(ctx)
	if err != nil {
		return time.Time{}, err
	}
	head, err := client.HeaderByNumber(ctx, nil)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get latest header: %w", err)
	}
	return time.Unix(int64(head.Time), 0).UTC(), nil
}

// WaitForConfirmations polls for the receipt until it has enough confirmations or ctx ends
func (c *Client) WaitForConfirmations(ctx context.Context, txHash common.Hash, confirmations uint64) (*models.Receipt, error) {
	client, err := c.conn(ctx)
	if err != nil {
		return nil, err
	}
	if confirmations == 0 {
		confirmations = 1
	}

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := client.TransactionReceipt(ctx, txHash)
		switch {
		case receiptPending(err):
			// not mined or not indexed yet
		case err != nil:
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("failed to get transaction receipt: %w", err)
		case receipt.Status == types.ReceiptStatusFailed:
			return nil, fmt.Errorf("%w: %s", domain.ErrTransactionReverted, txHash.Hex())
		default:
			head, err := client.BlockNumber(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				return nil, fmt.Errorf("failed to get block number: %w", err)
			}
			mined := receipt.BlockNumber.Uint64()
			if head >= mined && head-mined+1 >= confirmations {
				return &models.Receipt{
					TxHash:        txHash,
					BlockNumber:   mined,
					GasUsed:       receipt.GasUsed,
					Confirmations: head - mined + 1,
				}, nil
			}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// receiptPending reports whether a receipt lookup should simply be retried
func receiptPending(err error) bool {
	return errors.Is(err, ethereum.NotFound) ||
		(err != nil && strings.Contains(err.Error(), "transaction indexing is in progress"))
}

// Ensure the client implements the chain-level ports
var (
	_ usecase.ChainReader = (*Client)(nil)
	_ usecase.Signer      = (*Client)(nil)
)
