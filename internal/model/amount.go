package model

import (
	"database/sql/driver"
	"fmt"
	"math/big"
	"strings"
)

// Amount 资产数额, 以大整数保存, 入库为 numeric(78,0)
// 原生资产与销售代币均以最小单位计价, 不做小数换算
type Amount struct {
	v big.Int
}

// NewAmount 从大整数创建数额(拷贝)
func NewAmount(v *big.Int) Amount {
	var a Amount
	if v != nil {
		a.v.Set(v)
	}
	return a
}

// AmountFromInt64 从 int64 创建数额
func AmountFromInt64(v int64) Amount {
	var a Amount
	a.v.SetInt64(v)
	return a
}

// BigInt 返回数额的大整数拷贝
func (a Amount) BigInt() *big.Int {
	return new(big.Int).Set(&a.v)
}

// Cmp 比较两个数额
func (a Amount) Cmp(b Amount) int {
	return a.v.Cmp(&b.v)
}

// Sign 返回数额符号
func (a Amount) Sign() int {
	return a.v.Sign()
}

// String 十进制字符串
func (a Amount) String() string {
	return a.v.String()
}

// Value 实现 driver.Valuer
func (a Amount) Value() (driver.Value, error) {
	return a.v.String(), nil
}

// Scan 实现 sql.Scanner
func (a *Amount) Scan(value interface{}) error {
	if value == nil {
		a.v.SetInt64(0)
		return nil
	}

	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case int64:
		a.v.SetInt64(v)
		return nil
	case float64:
		// sqlite 可能把 numeric 读成 float, 仅限小数额
		a.v.SetInt64(int64(v))
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Amount", value)
	}

	s = strings.TrimSpace(s)
	if s == "" {
		a.v.SetInt64(0)
		return nil
	}
	if _, ok := a.v.SetString(s, 10); !ok {
		return fmt.Errorf("invalid amount %q", s)
	}
	return nil
}

// GormDataType 数据库列类型
func (Amount) GormDataType() string {
	return "numeric(78,0)"
}

// MarshalJSON 输出十进制字符串, 避免前端大数精度丢失
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.v.String() + `"`), nil
}

// UnmarshalJSON 接受字符串或数字
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		a.v.SetInt64(0)
		return nil
	}
	if _, ok := a.v.SetString(s, 10); !ok {
		return fmt.Errorf("invalid amount %q", s)
	}
	return nil
}
