package codec

import (
	"encoding/base64"
	"fmt"
	"net/url"

	"AlliancePlanner/internal/planner/domain"

	"github.com/goccy/go-json"
)

const FormatLegacy = "legacy-v1"

type legacyRecord struct {
	Type       string `json:"type"`
	X          *int   `json:"x"`
	Y          *int   `json:"y"`
	PlayerName string `json:"playerName"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
}

// LegacyFormat：全键 JSON -> 百分号编码 -> base64，不压缩。
type LegacyFormat struct{}

func (LegacyFormat) Name() string { return FormatLegacy }

func (LegacyFormat) Encode(records []Record) (string, error) {
	out := make([]legacyRecord, 0, len(records))
	for _, r := range records {
		out = append(out, legacyRecord{
			Type:       r.Type.String(),
			X:          r.X,
			Y:          r.Y,
			PlayerName: r.Name,
			Width:      r.Width,
			Height:     r.Height,
		})
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString([]byte(url.PathEscape(string(raw)))), nil
}

func (LegacyFormat) Decode(payload string) ([]Record, error) {
	escaped, err := decodeBase64(payload)
	if err != nil {
		return nil, fmt.Errorf("base64: %w", err)
	}
	raw, err := url.PathUnescape(string(escaped))
	if err != nil {
		return nil, fmt.Errorf("unescape: %w", err)
	}
	if !isJSONArray([]byte(raw)) {
		return nil, errNotArray
	}
	var in []legacyRecord
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return nil, fmt.Errorf("json: %w", err)
	}
	out := make([]Record, 0, len(in))
	for _, l := range in {
		t, _ := domain.ParseBuildingType(l.Type)
		out = append(out, Record{Type: t, Raw: l.Type, X: l.X, Y: l.Y, Name: l.PlayerName, Width: l.Width, Height: l.Height})
	}
	return out, nil
}
