package token

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Ledger 销售代币账本, 账本核心只依赖这四个动作
// Transfer 从托管账户付出, TransferFrom 需事先获得持有人授权
type Ledger interface {
	TransferFrom(ctx context.Context, token, from, to common.Address, amount *big.Int) error
	Transfer(ctx context.Context, token, to common.Address, amount *big.Int) error
	Mint(ctx context.Context, token, to common.Address, amount *big.Int) error
	BalanceOf(ctx context.Context, token, account common.Address) (*big.Int, error)
}

// Vault 原生资产托管
type Vault interface {
	// Deposit 投资人注入原生资产到托管
	Deposit(ctx context.Context, from common.Address, amount *big.Int) error
	// Pay 从托管付出原生资产
	Pay(ctx context.Context, to common.Address, amount *big.Int) error
	// Balance 托管中的原生资产余额
	Balance(ctx context.Context) (*big.Int, error)
}
