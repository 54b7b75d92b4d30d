package logic

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/YatharthAndharia/Launchpad/internal/database"
	"github.com/YatharthAndharia/Launchpad/internal/model"
	"github.com/YatharthAndharia/Launchpad/internal/token"
	"github.com/ethereum/go-ethereum/common"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	adminAddr   = common.HexToAddress("0x00000000000000000000000000000000000000Ad").Hex()
	ownerAddr   = common.HexToAddress("0x000000000000000000000000000000000000000F").Hex()
	investorOne = common.HexToAddress("0x0000000000000000000000000000000000000001").Hex()
	investorTwo = common.HexToAddress("0x0000000000000000000000000000000000000002").Hex()
	outsider    = common.HexToAddress("0x0000000000000000000000000000000000000099").Hex()
	saleToken   = common.HexToAddress("0x00000000000000000000000000000000000000E0").Hex()
)

// testClock 可拨动的测试时钟
type testClock struct {
	now int64
}

func (c *testClock) advance(seconds int64) {
	c.now += seconds
}

func newTestEnv(t *testing.T) (*Env, *token.Book, *testClock) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	custody := common.HexToAddress("0x00000000000000000000000000000000000000CC")
	book := token.NewBook(custody)
	clock := &testClock{now: 1_700_000_000}

	env := &Env{
		DB:      db,
		Tokens:  book,
		Vault:   book,
		Custody: custody,
		Now:     func() time.Time { return time.Unix(clock.now, 0) },
	}
	require.NoError(t, NewAdminLogic(env).EnsureState(adminAddr))
	return env, book, clock
}

// 默认项目: min=2, max=10, softCap=8, hardCap=20, maxCap=40
// 兑换率为每单位投资 2 个销售代币
func defaultParams(clock *testClock) *ListProjectParams {
	return &ListProjectParams{
		Owner:                 ownerAddr,
		SaleToken:             saleToken,
		MinInvestment:         big.NewInt(2),
		MaxInvestment:         big.NewInt(10),
		SoftCap:               big.NewInt(8),
		HardCap:               big.NewInt(20),
		MaxCap:                big.NewInt(40),
		LiquidityPercentToken: 5000,
		LiquidityPercentEth:   3000,
		StartTime:             clock.now,
		EndTime:               clock.now + 3600,
		Whitelist:             []string{investorOne, investorTwo},
	}
}

// listDefault 铸造销售代币并上架默认项目
func listDefault(t *testing.T, env *Env, book *token.Book, clock *testClock) int64 {
	t.Helper()
	ctx := context.Background()
	params := defaultParams(clock)
	require.NoError(t, book.Mint(ctx, common.HexToAddress(saleToken),
		common.HexToAddress(ownerAddr), params.MaxCap))

	id, err := NewProjectLogic(env).ListProject(ctx, params)
	require.NoError(t, err)
	return id
}

// fundAndInvest 注资后投资, 两步都必须成功
func fundAndInvest(t *testing.T, env *Env, book *token.Book, projectId int64, investor string, amount int64) {
	t.Helper()
	book.FundNative(common.HexToAddress(investor), big.NewInt(amount))
	require.NoError(t, NewInvestLogic(env).Invest(context.Background(), projectId, investor, big.NewInt(amount)))
}

// memorySink 同步收集事件
type memorySink struct {
	types []string
}

func (s *memorySink) Record(event *model.EventModel) {
	s.types = append(s.types, event.EventType)
}

func TestOperationsRecordEvents(t *testing.T) {
	env, book, clock := newTestEnv(t)
	sink := &memorySink{}
	env.Events = sink

	id := listDefault(t, env, book, clock)
	fundAndInvest(t, env, book, id, investorOne, 10)
	clock.advance(4000)
	_, err := NewSettlementLogic(env).ClaimTokens(context.Background(), id, investorOne)
	require.NoError(t, err)

	require.Equal(t, []string{
		model.EventProjectListed,
		model.EventInvestmentMade,
		model.EventTokensClaimed,
	}, sink.types)
}
