package codec

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"AlliancePlanner/internal/planner/domain"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/zlib"
)

const FormatShort = "short-v2"

type shortRecord struct {
	T string `json:"t"`
	X *int   `json:"x"`
	Y *int   `json:"y"`
	N string `json:"n,omitempty"`
	W int    `json:"w,omitempty"`
	H int    `json:"h,omitempty"`
}

// ShortFormat：短键 JSON -> zlib -> 标准 base64。
type ShortFormat struct{}

func (ShortFormat) Name() string { return FormatShort }

func (ShortFormat) Encode(records []Record) (string, error) {
	out := make([]shortRecord, 0, len(records))
	for _, r := range records {
		out = append(out, shortRecord{
			T: r.Type.Code(),
			X: r.X,
			Y: r.Y,
			N: strings.TrimSpace(r.Name),
			W: r.Width,
			H: r.Height,
		})
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return "", err
	}
	if err := zw.Close(); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func (ShortFormat) Decode(payload string) ([]Record, error) {
	compressed, err := decodeBase64(payload)
	if err != nil {
		return nil, fmt.Errorf("base64: %w", err)
	}
	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("zlib: %w", err)
	}
	defer zr.Close()
	raw, err := io.ReadAll(io.LimitReader(zr, MaxDecodedSize+1))
	if err != nil {
		return nil, fmt.Errorf("zlib: %w", err)
	}
	if len(raw) > MaxDecodedSize {
		return nil, errPayloadTooLarge
	}
	if !isJSONArray(raw) {
		return nil, errNotArray
	}
	var in []shortRecord
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("json: %w", err)
	}
	out := make([]Record, 0, len(in))
	for _, s := range in {
		t, ok := domain.BuildingTypeFromCode(s.T)
		if !ok {
			// 兼容直接写全名的记录
			t, _ = domain.ParseBuildingType(s.T)
		}
		out = append(out, Record{Type: t, Raw: s.T, X: s.X, Y: s.Y, Name: s.N, Width: s.W, Height: s.H})
	}
	return out, nil
}

func isJSONArray(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}
