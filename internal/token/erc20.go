package token

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// erc20ABI 链上销售代币的最小接口(含 mintable 扩展)
const erc20ABI = `[
	{"constant":false,"inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"type":"function"},
	{"constant":false,"inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"name":"transferFrom","outputs":[{"name":"","type":"bool"}],"type":"function"},
	{"constant":false,"inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"name":"mint","outputs":[],"type":"function"},
	{"constant":true,"inputs":[{"name":"account","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"type":"function"}
]`

// Chain 链上托管: 代币动作走 ERC20 合约, 原生资产走普通转账
// 托管账户即服务私钥对应的账户
type Chain struct {
	client     *ethclient.Client
	privateKey *ecdsa.PrivateKey
	chainID    *big.Int
	erc20      abi.ABI
	custody    common.Address
}

// NewChain 连接 RPC 节点并创建链上托管
func NewChain(rpcURL, privateKeyHex string, chainID int64) (*Chain, error) {
	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rpc node: %w", err)
	}

	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	parsedABI, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse erc20 abi: %w", err)
	}

	return &Chain{
		client:     client,
		privateKey: privateKey,
		chainID:    big.NewInt(chainID),
		erc20:      parsedABI,
		custody:    crypto.PubkeyToAddress(privateKey.PublicKey),
	}, nil
}

// Custody 托管账户地址
func (c *Chain) Custody() common.Address {
	return c.custody
}

func (c *Chain) auth(ctx context.Context) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(c.privateKey, c.chainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	return opts, nil
}

func (c *Chain) bound(token common.Address) *bind.BoundContract {
	return bind.NewBoundContract(token, c.erc20, c.client, c.client, c.client)
}

// transact 发送合约交易并等待上链, 回执失败视为整体失败
func (c *Chain) transact(ctx context.Context, token common.Address, method string, args ...interface{}) error {
	opts, err := c.auth(ctx)
	if err != nil {
		return err
	}
	tx, err := c.bound(token).Transact(opts, method, args...)
	if err != nil {
		return fmt.Errorf("%s failed: %w", method, err)
	}
	receipt, err := bind.WaitMined(ctx, c.client, tx)
	if err != nil {
		return fmt.Errorf("%s not mined: %w", method, err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("%s reverted (tx %s)", method, tx.Hash().Hex())
	}
	return nil
}

// TransferFrom 从持有人划转代币(需事先 approve 托管账户)
func (c *Chain) TransferFrom(ctx context.Context, token, from, to common.Address, amount *big.Int) error {
	return c.transact(ctx, token, "transferFrom", from, to, amount)
}

// Transfer 从托管账户付出代币
func (c *Chain) Transfer(ctx context.Context, token, to common.Address, amount *big.Int) error {
	return c.transact(ctx, token, "transfer", to, amount)
}

// Mint 铸造代币给指定账户
func (c *Chain) Mint(ctx context.Context, token, to common.Address, amount *big.Int) error {
	return c.transact(ctx, token, "mint", to, amount)
}

// BalanceOf 查询代币余额
func (c *Chain) BalanceOf(ctx context.Context, token, account common.Address) (*big.Int, error) {
	var out []interface{}
	if err := c.bound(token).Call(&bind.CallOpts{Context: ctx}, &out, "balanceOf", account); err != nil {
		return nil, fmt.Errorf("balanceOf failed: %w", err)
	}
	bal, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected balanceOf result %T", out[0])
	}
	return bal, nil
}

// Deposit 链上模式下投资额随投资人自己的交易到账, 服务端无需动作
func (c *Chain) Deposit(ctx context.Context, from common.Address, amount *big.Int) error {
	return nil
}

// Pay 从托管账户发送原生资产
func (c *Chain) Pay(ctx context.Context, to common.Address, amount *big.Int) error {
	nonce, err := c.client.PendingNonceAt(ctx, c.custody)
	if err != nil {
		return fmt.Errorf("failed to fetch nonce: %w", err)
	}
	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch gas price: %w", err)
	}

	tx := types.NewTransaction(nonce, to, amount, 21000, gasPrice, nil)
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainID), c.privateKey)
	if err != nil {
		return fmt.Errorf("failed to sign transaction: %w", err)
	}
	if err := c.client.SendTransaction(ctx, signed); err != nil {
		return fmt.Errorf("failed to send transaction: %w", err)
	}

	receipt, err := bind.WaitMined(ctx, c.client, signed)
	if err != nil {
		return fmt.Errorf("transfer not mined: %w", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("transfer reverted (tx %s)", signed.Hash().Hex())
	}
	return nil
}

// Balance 托管账户的原生资产余额
func (c *Chain) Balance(ctx context.Context) (*big.Int, error) {
	return c.client.BalanceAt(ctx, c.custody, nil)
}
