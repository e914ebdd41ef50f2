package codec

import (
	"encoding/base64"
	"errors"
	"strings"

	"AlliancePlanner/internal/planner/domain"
)

// Record 是格式无关的一条建筑记录。X/Y 为 nil 表示数据里缺失。
type Record struct {
	Type   domain.BuildingType
	Raw    string // 原始类型字段，解析失败时用于告警
	X, Y   *int
	Name   string
	Width  int
	Height int
}

// Format 是一种分享格式。Decode 对非数组负载必须返回错误，空数组是合法的空布局。
type Format interface {
	Name() string
	Encode(records []Record) (string, error)
	Decode(payload string) ([]Record, error)
}

// 负载来自不可信的客户端，解压前后和记录数都有上限
const (
	MaxPayloadLen  = 1 << 20
	MaxDecodedSize = 1 << 20
	// 网格最大 100x100，最小建筑 1x1
	MaxRecords = domain.MaxGridSize * domain.MaxGridSize
)

var (
	errNotArray        = errors.New("payload is not a JSON array")
	errPayloadTooLarge = errors.New("payload too large")
	errTooManyRecords  = errors.New("too many records")
)

// decodeBase64 容忍空白、缺失的 padding 和 URL-safe 字母表。
func decodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		case '-':
			return '+'
		case '_':
			return '/'
		}
		return r
	}, s)
	if m := len(s) % 4; m != 0 {
		s += strings.Repeat("=", 4-m)
	}
	return base64.StdEncoding.DecodeString(s)
}

func intPtr(v int) *int { return &v }
