package token

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	custodyAddr = common.HexToAddress("0xCC")
	tokenAddr   = common.HexToAddress("0xE0")
	alice       = common.HexToAddress("0x01")
	bob         = common.HexToAddress("0x02")
)

func TestBookTokenTransfers(t *testing.T) {
	ctx := context.Background()
	book := NewBook(custodyAddr)

	require.NoError(t, book.Mint(ctx, tokenAddr, alice, big.NewInt(100)))
	require.NoError(t, book.TransferFrom(ctx, tokenAddr, alice, custodyAddr, big.NewInt(60)))

	balance, err := book.BalanceOf(ctx, tokenAddr, custodyAddr)
	require.NoError(t, err)
	assert.Equal(t, int64(60), balance.Int64())

	require.NoError(t, book.Transfer(ctx, tokenAddr, bob, big.NewInt(25)))
	balance, err = book.BalanceOf(ctx, tokenAddr, bob)
	require.NoError(t, err)
	assert.Equal(t, int64(25), balance.Int64())

	// 余额不足整体失败, 不产生半截转账
	err = book.TransferFrom(ctx, tokenAddr, alice, custodyAddr, big.NewInt(1000))
	require.Error(t, err)
	balance, err = book.BalanceOf(ctx, tokenAddr, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(40), balance.Int64())
}

func TestBookNativeCustody(t *testing.T) {
	ctx := context.Background()
	book := NewBook(custodyAddr)

	book.FundNative(alice, big.NewInt(50))
	require.NoError(t, book.Deposit(ctx, alice, big.NewInt(30)))

	custodyBalance, err := book.Balance(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(30), custodyBalance.Int64())
	assert.Equal(t, int64(20), book.NativeBalanceOf(alice).Int64())

	require.Error(t, book.Deposit(ctx, alice, big.NewInt(100)))

	require.NoError(t, book.Pay(ctx, bob, big.NewInt(10)))
	assert.Equal(t, int64(10), book.NativeBalanceOf(bob).Int64())
	require.Error(t, book.Pay(ctx, bob, big.NewInt(100)))
}
