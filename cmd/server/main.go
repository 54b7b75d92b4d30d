package main

import (
	"time"

	"github.com/YatharthAndharia/Launchpad/internal/config"
	"github.com/YatharthAndharia/Launchpad/internal/database"
	"github.com/YatharthAndharia/Launchpad/internal/event"
	"github.com/YatharthAndharia/Launchpad/internal/logger"
	"github.com/YatharthAndharia/Launchpad/internal/logic"
	"github.com/YatharthAndharia/Launchpad/internal/router"
	"github.com/YatharthAndharia/Launchpad/internal/scheduler"
	"github.com/YatharthAndharia/Launchpad/internal/token"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	if err := logger.Setup(cfg.Log); err != nil {
		logger.Fatal("Failed to setup logger: %v", err)
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化托管后端
	var tokens token.Ledger
	var vault token.Vault
	var custody common.Address
	switch cfg.Ledger.Backend {
	case "chain":
		chain, err := token.NewChain(cfg.Chain.RpcUrl, cfg.Chain.PrivateKey, cfg.Chain.ChainId)
		if err != nil {
			logger.Fatal("Failed to initialize chain custody: %v", err)
		}
		tokens, vault, custody = chain, chain, chain.Custody()
	default:
		book := token.NewBook(common.HexToAddress(cfg.Ledger.Custody))
		tokens, vault, custody = book, book, book.Custody()
	}
	logger.Info("Custody backend %q ready, account %s", cfg.Ledger.Backend, custody.Hex())

	// 初始化事件记录器
	recorder, err := event.NewRecorder(db, 4)
	if err != nil {
		logger.Fatal("Failed to initialize event recorder: %v", err)
	}
	defer recorder.Close()

	env := &logic.Env{
		DB:      db,
		Tokens:  tokens,
		Vault:   vault,
		Custody: custody,
		Events:  recorder,
		Now:     time.Now,
	}

	// 初始化管理员与暂停开关
	if err := logic.NewAdminLogic(env).EnsureState(cfg.Ledger.Admin); err != nil {
		logger.Fatal("Failed to initialize ledger state: %v", err)
	}

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(env)

	// 启动定时任务
	manager, err := scheduler.Start(db, cfg)
	if err != nil {
		logger.Fatal("Failed to start scheduler: %v", err)
	}
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
