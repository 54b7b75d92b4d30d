package handler

import (
	"fmt"
	"math/big"
)

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// ListProjectRequest 上架项目请求, 金额为十进制字符串
type ListProjectRequest struct {
	Owner                 string   `json:"owner" binding:"required"`
	SaleToken             string   `json:"sale_token" binding:"required"`
	MinInvestment         string   `json:"min_investment" binding:"required"`
	MaxInvestment         string   `json:"max_investment" binding:"required"`
	SoftCap               string   `json:"soft_cap" binding:"required"`
	HardCap               string   `json:"hard_cap" binding:"required"`
	MaxCap                string   `json:"max_cap" binding:"required"`
	LiquidityPercentToken int64    `json:"liquidity_percent_token"`
	LiquidityPercentEth   int64    `json:"liquidity_percent_eth"`
	StartTime             int64    `json:"start_time"`
	EndTime               int64    `json:"end_time"`
	Whitelist             []string `json:"whitelist"`
}

// InvestRequest 投资请求
type InvestRequest struct {
	Caller string `json:"caller" binding:"required"`
	Amount string `json:"amount" binding:"required"`
}

// CallerRequest 只带调用方地址的请求
type CallerRequest struct {
	Caller string `json:"caller" binding:"required"`
}

// SweepRequest 回收未售代币请求
type SweepRequest struct {
	Caller string `json:"caller" binding:"required"`
	To     string `json:"to" binding:"required"`
}

// WhitelistAddRequest 追加白名单请求
type WhitelistAddRequest struct {
	Caller  string `json:"caller" binding:"required"`
	Address string `json:"address" binding:"required"`
}

// ChangeAdminRequest 轮换管理员请求
type ChangeAdminRequest struct {
	Caller   string `json:"caller" binding:"required"`
	NewAdmin string `json:"new_admin" binding:"required"`
}

// parseAmount 解析十进制金额字符串, 拒绝负数
func parseAmount(raw string) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount: %q", raw)
	}
	if amount.Sign() < 0 {
		return nil, fmt.Errorf("amount must not be negative: %q", raw)
	}
	return amount, nil
}
