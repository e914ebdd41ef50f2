package codec

import (
	"errors"
	"fmt"
	"strings"

	"AlliancePlanner/internal/planner/domain"
	"AlliancePlanner/internal/shared/metrics"
	"AlliancePlanner/modules/kit/logx"

	"github.com/lithammer/shortuuid/v4"
	"go.uber.org/zap"
)

// Result 是一次成功解析的结果。Warnings 记录被跳过的记录。
type Result struct {
	Buildings []domain.Building
	Format    string
	Warnings  []string
}

// Codec 按注册顺序（新格式在前）依次尝试解析，编码总是使用第一个格式。
type Codec struct {
	catalog *domain.Catalog
	formats []Format
	log     logx.Logger
	newID   func() domain.BuildingID
}

type Option func(*Codec)

// WithFormats 替换格式链，第一个是当前格式。
func WithFormats(formats ...Format) Option {
	return func(c *Codec) {
		if len(formats) > 0 {
			c.formats = formats
		}
	}
}

func WithLogger(l logx.Logger) Option {
	return func(c *Codec) { c.log = logx.OrNop(l) }
}

func WithIDGenerator(gen func() domain.BuildingID) Option {
	return func(c *Codec) {
		if gen != nil {
			c.newID = gen
		}
	}
}

func New(catalog *domain.Catalog, opts ...Option) *Codec {
	if catalog == nil {
		catalog = domain.DefaultCatalog()
	}
	c := &Codec{
		catalog: catalog,
		formats: []Format{ShortFormat{}, LegacyFormat{}},
		log:     logx.Nop(),
		newID:   func() domain.BuildingID { return domain.BuildingID(shortuuid.New()) },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Formats 返回格式名，按尝试顺序。
func (c *Codec) Formats() []string {
	out := make([]string, 0, len(c.formats))
	for _, f := range c.formats {
		out = append(out, f.Name())
	}
	return out
}

func (c *Codec) Encode(buildings []domain.Building) (string, error) {
	records := make([]Record, 0, len(buildings))
	for _, b := range buildings {
		spec, ok := c.catalog.Lookup(b.Type)
		if !ok {
			continue
		}
		r := Record{Type: b.Type, X: intPtr(b.X), Y: intPtr(b.Y), Name: strings.TrimSpace(b.PlayerName)}
		if spec.Resizable {
			r.Width, r.Height = b.Width, b.Height
		}
		records = append(records, r)
	}
	payload, err := c.formats[0].Encode(records)
	if err != nil {
		return "", ErrEncodeFailed.WithData("format", c.formats[0].Name()).WithCause(err)
	}
	return payload, nil
}

// Decode 依次尝试每个格式；全部失败时返回 ErrLayoutCorrupted，cause 汇总各格式的错误。
func (c *Codec) Decode(payload string) (Result, error) {
	payload = strings.TrimSpace(payload)
	if len(payload) > MaxPayloadLen {
		metrics.CodecFailures.Inc()
		return Result{}, ErrLayoutCorrupted.WithData("size", len(payload)).WithCause(errPayloadTooLarge)
	}
	var errs []error
	for i, f := range c.formats {
		records, err := f.Decode(payload)
		if err == nil && len(records) > MaxRecords {
			err = errTooManyRecords
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.Name(), err))
			continue
		}
		res := c.resolve(records)
		res.Format = f.Name()
		if i > 0 {
			c.log.Warn("layout decoded with fallback format", zap.String("format", f.Name()), zap.Errors("skipped_formats", errs))
		}
		metrics.CodecDecodes.WithLabelValues(f.Name()).Inc()
		return res, nil
	}
	metrics.CodecFailures.Inc()
	return Result{}, ErrLayoutCorrupted.WithCause(errors.Join(errs...))
}

// resolve 把记录还原成建筑：未知类型和缺坐标的记录跳过，尺寸和名称按类型补齐。
func (c *Codec) resolve(records []Record) Result {
	res := Result{Buildings: make([]domain.Building, 0, len(records))}
	for i, r := range records {
		spec, ok := c.catalog.Lookup(r.Type)
		if !ok {
			res.Warnings = append(res.Warnings, fmt.Sprintf("record %d: unknown building type %q", i, r.Raw))
			continue
		}
		if r.X == nil || r.Y == nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("record %d: missing coordinates", i))
			continue
		}
		b := domain.Building{
			ID:     c.newID(),
			Type:   r.Type,
			X:      *r.X,
			Y:      *r.Y,
			Width:  spec.Size,
			Height: spec.Size,
		}
		if spec.Resizable {
			if r.Width > 0 {
				b.Width = r.Width
			}
			if r.Height > 0 {
				b.Height = r.Height
			}
		}
		if spec.Nameable {
			b.PlayerName = strings.TrimSpace(r.Name)
		}
		res.Buildings = append(res.Buildings, b)
	}
	return res
}
