package bindings

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
)

// ERC20MetaData contains the ERC-20 methods used by the CLI.
var ERC20MetaData = bind.MetaData{
	ABI: `[
	{"type":"function","name":"transfer","stateMutability":"nonpayable","inputs":[
		{"name":"to","type":"address"},
		{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[
		{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"symbol","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"decimals","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]}
]`,
	ID: "ERC20",
}

// ERC20 is the governed token
type ERC20 struct {
	contract
}

// NewERC20 creates a new instance of ERC20.
func NewERC20() *ERC20 {
	return &ERC20{contract: mustParse(&ERC20MetaData)}
}

// PackTransfer packs transfer(address,uint256). The result is also the
// calldata stored in queued payment transactions.
func (t *ERC20) PackTransfer(to common.Address, amount *big.Int) ([]byte, error) {
	return t.pack("transfer", to, amount)
}

// UnpackTransferInput decodes calldata produced by PackTransfer
func (t *ERC20) UnpackTransferInput(data []byte) (common.Address, *big.Int, error) {
	method, err := t.abi.MethodById(data)
	if err != nil {
		return common.Address{}, nil, err
	}
	if method.Name != "transfer" {
		return common.Address{}, nil, ErrEventMismatch
	}
	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return common.Address{}, nil, err
	}
	to, _ := args[0].(common.Address)
	amount, _ := args[1].(*big.Int)
	return to, amount, nil
}

// PackBalanceOf packs balanceOf(address)
func (t *ERC20) PackBalanceOf(account common.Address) ([]byte, error) {
	return t.pack("balanceOf", account)
}

// UnpackBalanceOf decodes balanceOf(address)
func (t *ERC20) UnpackBalanceOf(output []byte) (*big.Int, error) {
	return unpackOne[*big.Int](t.contract, "balanceOf", output)
}

// PackSymbol packs symbol()
func (t *ERC20) PackSymbol() ([]byte, error) {
	return t.pack("symbol")
}

// UnpackSymbol decodes symbol()
func (t *ERC20) UnpackSymbol(output []byte) (string, error) {
	return unpackOne[string](t.contract, "symbol", output)
}

// PackDecimals packs decimals()
func (t *ERC20) PackDecimals() ([]byte, error) {
	return t.pack("decimals")
}

// UnpackDecimals decodes decimals()
func (t *ERC20) UnpackDecimals(output []byte) (uint8, error) {
	return unpackOne[uint8](t.contract, "decimals", output)
}
