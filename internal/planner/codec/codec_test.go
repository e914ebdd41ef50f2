package codec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"testing"

	"AlliancePlanner/internal/planner/domain"
)

func sampleBuildings() []domain.Building {
	return []domain.Building{
		{ID: "a", Type: domain.TypeCastle, X: 1, Y: 2, Width: 2, Height: 2, PlayerName: "Bob"},
		{ID: "b", Type: domain.TypeDeadzone, X: 10, Y: 10, Width: 4, Height: 3, PlayerName: "river"},
		{ID: "c", Type: domain.TypeHellgates, X: 20, Y: 5, Width: 3, Height: 3},
	}
}

func multiset(bs []domain.Building) []string {
	out := make([]string, 0, len(bs))
	for _, b := range bs {
		out = append(out, fmt.Sprintf("%s|%d|%d|%s|%d|%d", b.Type, b.X, b.Y, b.PlayerName, b.Width, b.Height))
	}
	sort.Strings(out)
	return out
}

func TestEncodeDecode_往返保持内容(t *testing.T) {
	c := New(nil)
	payload, err := c.Encode(sampleBuildings())
	if err != nil {
		t.Fatalf("Encode err=%v", err)
	}
	res, err := c.Decode(payload)
	if err != nil {
		t.Fatalf("Decode err=%v", err)
	}
	if res.Format != FormatShort {
		t.Fatalf("期望 %s, got=%s", FormatShort, res.Format)
	}
	want, got := multiset(sampleBuildings()), multiset(res.Buildings)
	if strings.Join(want, ",") != strings.Join(got, ",") {
		t.Fatalf("往返不一致\nwant=%v\n got=%v", want, got)
	}
	for _, b := range res.Buildings {
		if b.ID == "" || b.ID == "a" || b.ID == "b" || b.ID == "c" {
			t.Fatalf("期望分配新 id, got=%q", b.ID)
		}
	}
}

func TestScenario5_尾部损坏时两种格式都失败(t *testing.T) {
	c := New(nil)
	payload, err := c.Encode(sampleBuildings())
	if err != nil {
		t.Fatalf("Encode err=%v", err)
	}
	corrupted := payload[:len(payload)-4] + "!!!!"
	_, err = c.Decode(corrupted)
	if !errors.Is(err, ErrLayoutCorrupted) {
		t.Fatalf("期望 ErrLayoutCorrupted, got=%v", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, FormatShort) || !strings.Contains(msg, FormatLegacy) {
		t.Fatalf("期望错误里包含两个格式的失败原因, got=%s", msg)
	}
}

func TestDecode_旧格式回落(t *testing.T) {
	raw := `[{"type":"castle","x":3,"y":4,"playerName":"Ann","width":0,"height":0},` +
		`{"type":"deadzone","x":0,"y":0,"playerName":"","width":2,"height":5}]`
	payload := base64.StdEncoding.EncodeToString([]byte(url.PathEscape(raw)))
	res, err := New(nil).Decode(payload)
	if err != nil {
		t.Fatalf("Decode err=%v", err)
	}
	if res.Format != FormatLegacy {
		t.Fatalf("期望 %s, got=%s", FormatLegacy, res.Format)
	}
	if len(res.Buildings) != 2 {
		t.Fatalf("期望 2 个建筑, got=%v", res.Buildings)
	}
	castle := res.Buildings[0]
	if castle.Width != 2 || castle.PlayerName != "Ann" {
		t.Fatalf("期望宽度 0 回退到类型尺寸, got=%+v", castle)
	}
	dz := res.Buildings[1]
	if dz.Width != 2 || dz.Height != 5 {
		t.Fatalf("期望 deadzone 2x5, got=%+v", dz)
	}
}

func TestLegacyFormat_编码可被解析(t *testing.T) {
	c := New(nil, WithFormats(LegacyFormat{}))
	payload, err := c.Encode(sampleBuildings())
	if err != nil {
		t.Fatalf("Encode err=%v", err)
	}
	res, err := New(nil).Decode(payload)
	if err != nil || res.Format != FormatLegacy {
		t.Fatalf("期望回落到旧格式, res=%v err=%v", res.Format, err)
	}
	if strings.Join(multiset(res.Buildings), ",") != strings.Join(multiset(sampleBuildings()), ",") {
		t.Fatalf("旧格式往返不一致: %v", res.Buildings)
	}
}

func TestDecode_未知类型和缺坐标被跳过(t *testing.T) {
	records := []Record{
		{Type: domain.TypeCastle, X: intPtr(1), Y: intPtr(1)},
		{Type: domain.TypeUnknown, Raw: "zz", X: intPtr(5), Y: intPtr(5)},
		{Type: domain.TypeFarm, X: intPtr(9)},
	}
	payload, err := ShortFormat{}.Encode(records)
	if err != nil {
		t.Fatalf("Encode err=%v", err)
	}
	res, err := New(nil).Decode(payload)
	if err != nil {
		t.Fatalf("Decode err=%v", err)
	}
	if len(res.Buildings) != 1 || len(res.Warnings) != 2 {
		t.Fatalf("期望 1 个建筑 2 条告警, got=%v warnings=%v", res.Buildings, res.Warnings)
	}
}

func TestDecode_空数组是合法的空布局(t *testing.T) {
	c := New(nil)
	payload, err := c.Encode(nil)
	if err != nil {
		t.Fatalf("Encode err=%v", err)
	}
	res, err := c.Decode(payload)
	if err != nil || len(res.Buildings) != 0 {
		t.Fatalf("期望空布局, res=%v err=%v", res.Buildings, err)
	}
}

func TestDecode_非数组负载失败(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte(`{"type":"castle"}`))
	if _, err := New(nil).Decode(payload); !errors.Is(err, ErrLayoutCorrupted) {
		t.Fatalf("期望 ErrLayoutCorrupted, got=%v", err)
	}
}

func TestShortFormat_类型字段接受全名(t *testing.T) {
	raw := `[{"t":"castle","x":1,"y":1},{"t":"hg","x":5,"y":5}]`
	res, err := ShortFormat{}.Decode(compressForTest(t, raw))
	if err != nil {
		t.Fatalf("Decode err=%v", err)
	}
	if res[0].Type != domain.TypeCastle || res[1].Type != domain.TypeHellgates {
		t.Fatalf("类型解析不符: %+v", res)
	}
}

func TestShortFormat_只给可调整类型写宽高(t *testing.T) {
	c := New(nil)
	payload, _ := c.Encode(sampleBuildings())
	records, err := ShortFormat{}.Decode(payload)
	if err != nil {
		t.Fatalf("Decode err=%v", err)
	}
	for _, r := range records {
		if r.Type != domain.TypeDeadzone && (r.Width != 0 || r.Height != 0) {
			t.Fatalf("期望非 deadzone 不写宽高, got=%+v", r)
		}
	}
}

func TestDecode_容忍空白和URL安全字母表(t *testing.T) {
	c := New(nil)
	payload, _ := c.Encode(sampleBuildings())
	mangled := strings.NewReplacer("+", "-", "/", "_").Replace(strings.TrimRight(payload, "="))
	mangled = mangled[:5] + "\n " + mangled[5:]
	res, err := c.Decode(mangled)
	if err != nil || len(res.Buildings) != 3 {
		t.Fatalf("期望解析成功, res=%v err=%v", res.Buildings, err)
	}
}

func TestShortFormat_解压超限失败(t *testing.T) {
	// 2 MiB 空白压缩后只有几 KB
	payload := compressForTest(t, "["+strings.Repeat(" ", 2*MaxDecodedSize)+"]")
	if len(payload) > MaxPayloadLen {
		t.Fatalf("构造的负载本身超过上限: %d", len(payload))
	}
	if _, err := (ShortFormat{}).Decode(payload); !errors.Is(err, errPayloadTooLarge) {
		t.Fatalf("期望 errPayloadTooLarge, got=%v", err)
	}
	if _, err := New(nil).Decode(payload); !errors.Is(err, ErrLayoutCorrupted) {
		t.Fatalf("期望 ErrLayoutCorrupted, got=%v", err)
	}
}

func TestDecode_记录数超限失败(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("[")
	for i := 0; i <= MaxRecords; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(`{"t":"c","x":0,"y":0}`)
	}
	sb.WriteString("]")
	if _, err := New(nil).Decode(compressForTest(t, sb.String())); !errors.Is(err, ErrLayoutCorrupted) {
		t.Fatalf("期望 ErrLayoutCorrupted, got=%v", err)
	}
}

func TestDecode_原始负载超长直接失败(t *testing.T) {
	payload := strings.Repeat("A", MaxPayloadLen+4)
	_, err := New(nil).Decode(payload)
	if !errors.Is(err, ErrLayoutCorrupted) || !errors.Is(err, errPayloadTooLarge) {
		t.Fatalf("期望 ErrLayoutCorrupted 且 cause 为 errPayloadTooLarge, got=%v", err)
	}
}
