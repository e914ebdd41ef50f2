package ws

import (
	"errors"

	"github.com/go-viper/mapstructure/v2"
	"github.com/goccy/go-json"
)

var errNilBody = errors.New("ws request body is nil")

// BindJSON 将 WsMsgReq.Body.Msg 反序列化到目标结构体。
func BindJSON(req *WsMsgReq, dst any) error {
	if req == nil || req.Body == nil {
		return errNilBody
	}
	raw, err := json.Marshal(req.Body.Msg)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

// BindMap 用 mapstructure 宽松解码，数字字段允许字符串形式。
// dst 需要带 mapstructure tag。
func BindMap(req *WsMsgReq, dst any) error {
	if req == nil || req.Body == nil {
		return errNilBody
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dst,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(req.Body.Msg)
}
