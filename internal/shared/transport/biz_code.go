package transport

// BizCode 表示业务码的强类型封装，用于在日志上下文中减少误传风险。
type BizCode int

// 对外业务码：0 成功，1..499 业务拒绝（WARN），>=500 系统错误（ERROR）。
const (
	OK           = 0
	InvalidParam = 1
	RouteMissing = 2
	SecretFailed = 3

	PlacementRejected = 100 // 重叠、越界、不可调整等放置类拒绝
	LimitReached      = 101
	BuildingMissing   = 102
	GridRejected      = 103
	LayoutCorrupted   = 110
	LayoutMissing     = 111
	EditForbidden     = 112

	SystemError = 500
	Unavailable = 503
	Timeout     = 504
)
