package app

type Reason struct {
	Code    string
	Message string
}

func (r Reason) ReasonCode() string {
	return r.Code
}

func NewReason(c, m string) Reason {
	return Reason{Code: c, Message: m}
}

var (
	// 业务拒绝 reason
	ReasonTokenMissing  = NewReason("EDIT_TOKEN_MISSING", "缺少编辑令牌")
	ReasonTokenInvalid  = NewReason("EDIT_TOKEN_INVALID", "编辑令牌无效")
	ReasonTokenMismatch = NewReason("EDIT_TOKEN_MISMATCH", "令牌与布局不匹配")
	ReasonPayloadEmpty  = NewReason("PAYLOAD_EMPTY", "布局数据为空")
)

var (
	// 技术错误 reason，用于日志与排障
	ReasonLayoutRepoUnavailable = NewReason("LAYOUT_REPO_UNAVAILABLE", "布局存储不可用")
	ReasonTokenIssue            = NewReason("TOKEN_ISSUE", "令牌签发失败")
	ReasonIDIssue               = NewReason("ID_ISSUE", "id 生成失败")
	ReasonPrefsWriteFail        = NewReason("PREFS_WRITE_FAIL", "偏好设置写入失败")
)
