package app

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"AlliancePlanner/internal/planner/codec"
	"AlliancePlanner/internal/planner/domain"
	"AlliancePlanner/modules/kit/logx"

	"go.uber.org/zap"
)

// LayoutService 管理已发布的布局：发布时签发编辑令牌，更新时校验令牌。
type LayoutService struct {
	repo   LayoutRepository
	codec  *codec.Codec
	nextID IDGenerator
	issue  TokenIssuer
	verify TokenVerifier
	log    logx.Logger
	now    func() time.Time
}

func NewLayoutService(repo LayoutRepository, c *codec.Codec, nextID IDGenerator, issue TokenIssuer, verify TokenVerifier, log logx.Logger) *LayoutService {
	return &LayoutService{
		repo:   repo,
		codec:  c,
		nextID: nextID,
		issue:  issue,
		verify: verify,
		log:    logx.OrNop(log),
		now:    time.Now,
	}
}

type PublishResult struct {
	ID      string `json:"id"`
	Token   string `json:"token"`
	Format  string `json:"format"`
	Decoded int    `json:"decoded"`
}

// Publish 校验 payload 能被解析，然后以新 id 保存。
func (s *LayoutService) Publish(ctx context.Context, payload string, gridSize int) (PublishResult, error) {
	payload = codec.ParseLocator(payload)
	res, err := s.validate(payload)
	if err != nil {
		return PublishResult{}, err
	}
	if gridSize == 0 {
		gridSize = domain.DefaultGridSize
	}
	if gridSize < domain.MinGridSize || gridSize > domain.MaxGridSize {
		return PublishResult{}, domain.ErrInvalidGridSize.WithData("grid_size", gridSize)
	}

	raw, err := s.nextID()
	if err != nil {
		return PublishResult{}, ErrInternalServer.WithReason(ReasonIDIssue).WithCause(err)
	}
	id := strconv.FormatInt(raw, 10)
	token, err := s.issue(id)
	if err != nil {
		return PublishResult{}, ErrInternalServer.WithReason(ReasonTokenIssue).WithData("layout_id", id).WithCause(err)
	}

	now := s.now()
	l := domain.Layout{ID: id, Payload: payload, GridSize: gridSize, CellSize: domain.DefaultCellSize, CreatedAt: now, UpdatedAt: now}
	if err := s.repo.Save(ctx, l); err != nil {
		return PublishResult{}, ErrUnavailable.WithReason(ReasonLayoutRepoUnavailable).WithCause(err)
	}
	s.log.WithContext(ctx).Info("layout published", zap.String("layout_id", id), zap.String("format", res.Format))
	return PublishResult{ID: id, Token: token, Format: res.Format, Decoded: len(res.Buildings)}, nil
}

func (s *LayoutService) Get(ctx context.Context, id string) (domain.Layout, error) {
	l, err := s.repo.Load(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrLayoutNotFound) {
			return domain.Layout{}, domain.ErrLayoutNotFound.WithData("layout_id", id)
		}
		return domain.Layout{}, ErrUnavailable.WithReason(ReasonLayoutRepoUnavailable).WithCause(err)
	}
	return l, nil
}

// Update 用新的 payload 覆盖布局，令牌必须是为同一个 id 签发的。
func (s *LayoutService) Update(ctx context.Context, id, token, payload string) (domain.Layout, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Layout{}, ErrEditForbidden.WithReason(ReasonTokenMissing)
	}
	lid, err := s.verify(token)
	if err != nil {
		return domain.Layout{}, ErrEditForbidden.WithReason(ReasonTokenInvalid).WithCause(err)
	}
	if lid != id {
		return domain.Layout{}, ErrEditForbidden.WithReason(ReasonTokenMismatch).WithData("layout_id", id)
	}
	payload = codec.ParseLocator(payload)
	if _, err := s.validate(payload); err != nil {
		return domain.Layout{}, err
	}
	l, err := s.Get(ctx, id)
	if err != nil {
		return domain.Layout{}, err
	}
	l.Payload = payload
	l.UpdatedAt = s.now()
	if err := s.repo.Save(ctx, l); err != nil {
		return domain.Layout{}, ErrUnavailable.WithReason(ReasonLayoutRepoUnavailable).WithCause(err)
	}
	return l, nil
}

// Decode 只解析不落盘，用于预览和 gRPC。
func (s *LayoutService) Decode(locator string) (codec.Result, error) {
	return s.validate(codec.ParseLocator(locator))
}

func (s *LayoutService) validate(payload string) (codec.Result, error) {
	if payload == "" {
		return codec.Result{}, ErrInvalidLayout.WithReason(ReasonPayloadEmpty)
	}
	res, err := s.codec.Decode(payload)
	if err != nil {
		return codec.Result{}, err
	}
	return res, nil
}
