package blockchain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/failsafe-org/safeguard-cli/internal/domain/bindings"
	"github.com/failsafe-org/safeguard-cli/internal/usecase"
)

// TokenGateway talks to the governed ERC-20 token
type TokenGateway struct {
	client   *Client
	contract *bindings.ERC20
}

// NewTokenGateway creates a new token gateway
func NewTokenGateway(client *Client) *TokenGateway {
	return &TokenGateway{
		client:   client,
		contract: bindings.NewERC20(),
	}
}

// Symbol returns symbol()
func (g *TokenGateway) Symbol(ctx context.Context, token common.Address) (string, error) {
	data, err := g.contract.PackSymbol()
	if err != nil {
		return "", err
	}
	out, err := g.client.call(ctx, token, data)
	if err != nil {
		return "", fmt.Errorf("failed to call symbol(): %w", err)
	}
	return g.contract.UnpackSymbol(out)
}

// BalanceOf returns balanceOf(account)
func (g *TokenGateway) BalanceOf(ctx context.Context, token common.Address, account common.Address) (*big.Int, error) {
	data, err := g.contract.PackBalanceOf(account)
	if err != nil {
		return nil, err
	}
	out, err := g.client.call(ctx, token, data)
	if err != nil {
		return nil, fmt.Errorf("failed to call balanceOf(): %w", err)
	}
	return g.contract.UnpackBalanceOf(out)
}

// Transfer submits transfer(to, amount) from the signer
func (g *TokenGateway) Transfer(ctx context.Context, token common.Address, to common.Address, amount *big.Int) (common.Hash, error) {
	data, err := g.contract.PackTransfer(to, amount)
	if err != nil {
		return common.Hash{}, err
	}
	return g.client.transact(ctx, token, data)
}

var _ usecase.TokenGateway = (*TokenGateway)(nil)
