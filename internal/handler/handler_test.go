package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/YatharthAndharia/Launchpad/internal/database"
	"github.com/YatharthAndharia/Launchpad/internal/logic"
	"github.com/YatharthAndharia/Launchpad/internal/router"
	"github.com/YatharthAndharia/Launchpad/internal/token"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	adminAddr = common.HexToAddress("0xAd").Hex()
	ownerAddr = common.HexToAddress("0x0F").Hex()
	investor  = common.HexToAddress("0x01").Hex()
	saleToken = common.HexToAddress("0xE0").Hex()
)

func newTestServer(t *testing.T) (*gin.Engine, *token.Book) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	custody := common.HexToAddress("0xCC")
	book := token.NewBook(custody)
	env := &logic.Env{
		DB:      db,
		Tokens:  book,
		Vault:   book,
		Custody: custody,
		Now:     time.Now,
	}
	require.NoError(t, logic.NewAdminLogic(env).EnsureState(adminAddr))
	return router.Setup(env), book
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProjectLifecycleOverHTTP(t *testing.T) {
	r, book := newTestServer(t)
	ctx := context.Background()

	require.NoError(t, book.Mint(ctx, common.HexToAddress(saleToken),
		common.HexToAddress(ownerAddr), big.NewInt(40)))

	now := time.Now().Unix()
	w := doJSON(t, r, http.MethodPost, "/api/v1/projects", gin.H{
		"owner":                   ownerAddr,
		"sale_token":              saleToken,
		"min_investment":          "2",
		"max_investment":          "10",
		"soft_cap":                "8",
		"hard_cap":                "20",
		"max_cap":                 "40",
		"liquidity_percent_token": 5000,
		"liquidity_percent_eth":   3000,
		"start_time":              now,
		"end_time":                now + 3600,
		"whitelist":               []string{investor},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data struct {
			ProjectId int64 `json:"project_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created.Data.ProjectId
	require.Equal(t, int64(1), id)

	book.FundNative(common.HexToAddress(investor), big.NewInt(10))
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/projects/%d/invest", id), gin.H{
		"caller": investor,
		"amount": "10",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/projects/%d/total-raised", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_raised":"10"`)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/projects/%d/investments/%s", id, investor), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"investment":"10"`)
}

func TestHTTPErrorMapping(t *testing.T) {
	r, _ := newTestServer(t)

	// 不存在的项目
	w := doJSON(t, r, http.MethodPost, "/api/v1/projects/99/invest", gin.H{
		"caller": investor,
		"amount": "5",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 非管理员暂停
	w = doJSON(t, r, http.MethodPost, "/api/v1/admin/pause", gin.H{"caller": investor})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 畸形项目编号
	w = doJSON(t, r, http.MethodGet, "/api/v1/projects/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHardcapHeadroomInResponse(t *testing.T) {
	r, book := newTestServer(t)
	ctx := context.Background()

	require.NoError(t, book.Mint(ctx, common.HexToAddress(saleToken),
		common.HexToAddress(ownerAddr), big.NewInt(40)))
	now := time.Now().Unix()
	second := common.HexToAddress("0x02").Hex()
	w := doJSON(t, r, http.MethodPost, "/api/v1/projects", gin.H{
		"owner":          ownerAddr,
		"sale_token":     saleToken,
		"min_investment": "2",
		"max_investment": "20",
		"soft_cap":       "8",
		"hard_cap":       "20",
		"max_cap":        "40",
		"start_time":     now,
		"end_time":       now + 3600,
		"whitelist":      []string{investor, second},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	book.FundNative(common.HexToAddress(investor), big.NewInt(40))
	w = doJSON(t, r, http.MethodPost, "/api/v1/projects/1/invest", gin.H{
		"caller": investor,
		"amount": "18",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// 超出硬顶: 422 且返回剩余额度
	book.FundNative(common.HexToAddress(second), big.NewInt(10))
	w = doJSON(t, r, http.MethodPost, "/api/v1/projects/1/invest", gin.H{
		"caller": second,
		"amount": "3",
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"remaining":"2"`)
}
