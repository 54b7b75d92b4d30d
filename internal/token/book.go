package token

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// Book 进程内资产簿记, 用于本地模式与测试
// 代币余额按 (token, account) 记账, 原生资产按 account 记账
type Book struct {
	mu       sync.Mutex
	custody  common.Address
	balances map[common.Address]map[common.Address]*big.Int // token -> account -> balance
	native   map[common.Address]*big.Int
}

// NewBook 创建簿记, custody 为托管账户地址
func NewBook(custody common.Address) *Book {
	return &Book{
		custody:  custody,
		balances: make(map[common.Address]map[common.Address]*big.Int),
		native:   make(map[common.Address]*big.Int),
	}
}

// Custody 托管账户地址
func (b *Book) Custody() common.Address {
	return b.custody
}

func (b *Book) tokenBalance(token, account common.Address) *big.Int {
	accounts, ok := b.balances[token]
	if !ok {
		accounts = make(map[common.Address]*big.Int)
		b.balances[token] = accounts
	}
	bal, ok := accounts[account]
	if !ok {
		bal = new(big.Int)
		accounts[account] = bal
	}
	return bal
}

func (b *Book) nativeBalance(account common.Address) *big.Int {
	bal, ok := b.native[account]
	if !ok {
		bal = new(big.Int)
		b.native[account] = bal
	}
	return bal
}

// TransferFrom 从持有人划转代币
func (b *Book) TransferFrom(ctx context.Context, token, from, to common.Address, amount *big.Int) error {
	return b.move(token, from, to, amount)
}

// Transfer 从托管账户付出代币
func (b *Book) Transfer(ctx context.Context, token, to common.Address, amount *big.Int) error {
	return b.move(token, b.custody, to, amount)
}

func (b *Book) move(token, from, to common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return fmt.Errorf("invalid transfer amount")
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	src := b.tokenBalance(token, from)
	if src.Cmp(amount) < 0 {
		return fmt.Errorf("insufficient token balance: have %s, need %s", src, amount)
	}
	src.Sub(src, amount)
	dst := b.tokenBalance(token, to)
	dst.Add(dst, amount)
	return nil
}

// Mint 铸造代币给指定账户
func (b *Book) Mint(ctx context.Context, token, to common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return fmt.Errorf("invalid mint amount")
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	bal := b.tokenBalance(token, to)
	bal.Add(bal, amount)
	return nil
}

// BalanceOf 查询代币余额
func (b *Book) BalanceOf(ctx context.Context, token, account common.Address) (*big.Int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return new(big.Int).Set(b.tokenBalance(token, account)), nil
}

// FundNative 给账户注入原生资产(测试与本地模式)
func (b *Book) FundNative(account common.Address, amount *big.Int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	bal := b.nativeBalance(account)
	bal.Add(bal, amount)
}

// NativeBalanceOf 查询账户原生资产余额
func (b *Book) NativeBalanceOf(account common.Address) *big.Int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return new(big.Int).Set(b.nativeBalance(account))
}

// Deposit 投资人注入原生资产到托管
func (b *Book) Deposit(ctx context.Context, from common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return fmt.Errorf("invalid deposit amount")
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	src := b.nativeBalance(from)
	if src.Cmp(amount) < 0 {
		return fmt.Errorf("insufficient native balance: have %s, need %s", src, amount)
	}
	src.Sub(src, amount)
	dst := b.nativeBalance(b.custody)
	dst.Add(dst, amount)
	return nil
}

// Pay 从托管付出原生资产
func (b *Book) Pay(ctx context.Context, to common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return fmt.Errorf("invalid pay amount")
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	src := b.nativeBalance(b.custody)
	if src.Cmp(amount) < 0 {
		return fmt.Errorf("insufficient custody balance: have %s, need %s", src, amount)
	}
	src.Sub(src, amount)
	dst := b.nativeBalance(to)
	dst.Add(dst, amount)
	return nil
}

// Balance 托管中的原生资产余额
func (b *Book) Balance(ctx context.Context) (*big.Int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return new(big.Int).Set(b.nativeBalance(b.custody)), nil
}
