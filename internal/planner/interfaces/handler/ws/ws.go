package ws

import (
	"context"

	"AlliancePlanner/internal/planner/actors"
	"AlliancePlanner/internal/planner/app"
	"AlliancePlanner/internal/planner/domain"
	"AlliancePlanner/internal/planner/interaction"
	"AlliancePlanner/internal/planner/interfaces/handler"
	"AlliancePlanner/internal/planner/interfaces/handler/ws/dto"
	"AlliancePlanner/internal/shared/session"
	"AlliancePlanner/internal/shared/transport"
	"AlliancePlanner/internal/shared/transport/ws"

	"go.uber.org/zap"
)

type WsHandler struct {
	planner  *handler.Planner
	sessions session.Manager
}

func NewWsHandler(p *handler.Planner) *WsHandler {
	h := &WsHandler{planner: p}
	// 断线后自动离开 board
	h.sessions = session.NewSessMgr(func(board string, conn ws.WSConn) {
		h.leaveBoard(context.Background(), conn, board)
	})
	return h
}

func (h *WsHandler) RegisterRoutes(r *ws.Router) {
	g := r.Group("board")
	g.Handle("join", h.join)
	g.Handle("leave", h.leave)
	g.Handle("beginMove", h.beginMove)
	g.Handle("beginResize", h.beginResize)
	g.Handle("beginPlace", h.beginPlace)
	g.Handle("pointer", h.pointer)
	g.Handle("cancel", h.cancel)
	g.Handle("select", h.selectBuilding)
	g.Handle("delete", h.delete)
	g.Handle("rename", h.rename)
	g.Handle("shift", h.shift)
	g.Handle("gridSize", h.gridSize)
	g.Handle("pinch", h.pinch)
	g.Handle("rotate", h.rotate)
	g.Handle("distance", h.distance)
	g.Handle("share", h.share)
	g.Handle("load", h.load)
	g.Handle("view", h.view)
}

// connSink 把 board 事件推到 websocket 连接
type connSink struct {
	conn ws.WSConn
}

func (s connSink) Push(ev app.Event) {
	s.conn.Push(ev.Name, ev.Data)
}

func (h *WsHandler) join(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	if wsReq == nil || wsReq.Body == nil || wsReq.Conn == nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	var req dto.JoinReq
	if err := ws.BindJSON(wsReq, &req); err != nil || req.Board == "" {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}

	conn := wsReq.Conn
	transport.SetBoard(ctx, req.Board)
	res, err := h.planner.Boards.Ask(ctx, &actors.Join{
		BoardBase: actors.BoardBase{Board: req.Board},
		ConnID:    conn.ID(),
		Sink:      connSink{conn: conn},
	})
	if err != nil {
		h.error(ctx, wsResp, err)
		return
	}

	if prev := h.sessions.Bind(req.Board, conn); prev != "" && prev != req.Board {
		h.leaveBoard(ctx, conn, prev)
	}
	h.ok(wsResp, res)
}

func (h *WsHandler) leave(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	board, ok := h.boardOf(ctx, wsReq, wsResp)
	if !ok {
		return
	}
	h.sessions.UnbindConn(wsReq.Conn)
	h.leaveBoard(ctx, wsReq.Conn, board)
	h.ok(wsResp, nil)
}

func (h *WsHandler) leaveBoard(ctx context.Context, conn ws.WSConn, board string) {
	_, err := h.planner.Boards.Ask(ctx, &actors.Leave{BoardBase: actors.BoardBase{Board: board}, ConnID: conn.ID()})
	if err != nil {
		h.planner.Log.Warn("leave board failed", zap.String("board", board), zap.String("conn", conn.ID()), zap.Error(err))
	}
}

func (h *WsHandler) beginMove(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	board, req, m, ok := h.bindBegin(ctx, wsReq, wsResp)
	if !ok {
		return
	}
	h.ask(ctx, wsResp, &actors.BeginMove{BoardBase: board, ID: domain.BuildingID(req.ID), X: req.X, Y: req.Y, Modality: m})
}

func (h *WsHandler) beginResize(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	board, req, m, ok := h.bindBegin(ctx, wsReq, wsResp)
	if !ok {
		return
	}
	h.ask(ctx, wsResp, &actors.BeginResize{BoardBase: board, ID: domain.BuildingID(req.ID), X: req.X, Y: req.Y, Modality: m})
}

func (h *WsHandler) bindBegin(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) (actors.BoardBase, dto.BeginReq, interaction.Modality, bool) {
	var req dto.BeginReq
	board, ok := h.bind(ctx, wsReq, wsResp, &req)
	if !ok {
		return board, req, 0, false
	}
	m, err := dto.ParseModality(req.Modality)
	if err != nil || req.ID == "" {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return board, req, 0, false
	}
	return board, req, m, true
}

func (h *WsHandler) beginPlace(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	var req dto.BeginPlaceReq
	board, ok := h.bind(ctx, wsReq, wsResp, &req)
	if !ok {
		return
	}
	t, err := dto.ParseType(req.Type)
	if err != nil {
		h.error(ctx, wsResp, err)
		return
	}
	src, err := dto.ParseSource(req.Source)
	if err != nil {
		h.fail(wsResp, transport.InvalidParam, err.Error())
		return
	}
	m, err := dto.ParseModality(req.Modality)
	if err != nil {
		h.fail(wsResp, transport.InvalidParam, err.Error())
		return
	}
	h.ask(ctx, wsResp, &actors.BeginPlace{BoardBase: board, Type: t, Source: src, Modality: m})
}

func (h *WsHandler) pointer(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	board, ok := h.boardOf(ctx, wsReq, wsResp)
	if !ok {
		return
	}
	var req dto.PointerReq
	if err := ws.BindMap(wsReq, &req); err != nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	ev, err := req.Event()
	if err != nil {
		h.fail(wsResp, transport.InvalidParam, err.Error())
		return
	}
	h.ask(ctx, wsResp, &actors.Pointer{BoardBase: actors.BoardBase{Board: board}, Event: ev})
}

func (h *WsHandler) cancel(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	board, ok := h.boardOf(ctx, wsReq, wsResp)
	if !ok {
		return
	}
	res, err := h.planner.Boards.Ask(ctx, &actors.Cancel{BoardBase: actors.BoardBase{Board: board}})
	if err != nil {
		h.error(ctx, wsResp, err)
		return
	}
	cancelled, _ := res.(bool)
	h.ok(wsResp, dto.CancelResp{Cancelled: cancelled})
}

func (h *WsHandler) selectBuilding(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	var req dto.IDReq
	board, ok := h.bind(ctx, wsReq, wsResp, &req)
	if !ok {
		return
	}
	h.ask(ctx, wsResp, &actors.Select{BoardBase: board, ID: domain.BuildingID(req.ID)})
}

func (h *WsHandler) delete(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	var req dto.IDReq
	board, ok := h.bind(ctx, wsReq, wsResp, &req)
	if !ok {
		return
	}
	h.ask(ctx, wsResp, &actors.Delete{BoardBase: board, ID: domain.BuildingID(req.ID)})
}

func (h *WsHandler) rename(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	var req dto.RenameReq
	board, ok := h.bind(ctx, wsReq, wsResp, &req)
	if !ok {
		return
	}
	h.ask(ctx, wsResp, &actors.Rename{BoardBase: board, ID: domain.BuildingID(req.ID), Name: req.Name})
}

func (h *WsHandler) shift(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	var req dto.ShiftReq
	board, ok := h.bind(ctx, wsReq, wsResp, &req)
	if !ok {
		return
	}
	h.ask(ctx, wsResp, &actors.Shift{BoardBase: board, DX: req.DX, DY: req.DY})
}

func (h *WsHandler) gridSize(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	var req dto.GridSizeReq
	board, ok := h.bind(ctx, wsReq, wsResp, &req)
	if !ok {
		return
	}
	h.ask(ctx, wsResp, &actors.GridSize{BoardBase: board, Size: req.Size})
}

func (h *WsHandler) pinch(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	var req dto.PinchReq
	board, ok := h.bind(ctx, wsReq, wsResp, &req)
	if !ok {
		return
	}
	res, err := h.planner.Boards.Ask(ctx, &actors.Pinch{
		BoardBase:       board,
		InitialCell:     req.InitialCell,
		InitialDistance: req.InitialDistance,
		Distance:        req.Distance,
	})
	if err != nil {
		h.error(ctx, wsResp, err)
		return
	}
	applied, _ := res.(bool)
	h.ok(wsResp, dto.PinchResp{Applied: applied})
}

func (h *WsHandler) rotate(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	board, ok := h.boardOf(ctx, wsReq, wsResp)
	if !ok {
		return
	}
	h.toggle(ctx, wsResp, &actors.Rotate{BoardBase: actors.BoardBase{Board: board}})
}

func (h *WsHandler) distance(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	board, ok := h.boardOf(ctx, wsReq, wsResp)
	if !ok {
		return
	}
	h.toggle(ctx, wsResp, &actors.Distance{BoardBase: actors.BoardBase{Board: board}})
}

func (h *WsHandler) toggle(ctx context.Context, wsResp *ws.WsMsgResp, msg actors.BoardMessage) {
	res, err := h.planner.Boards.Ask(ctx, msg)
	if err != nil {
		h.error(ctx, wsResp, err)
		return
	}
	on, _ := res.(bool)
	h.ok(wsResp, dto.ToggleResp{On: on})
}

func (h *WsHandler) share(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	var req dto.ShareReq
	board, ok := h.bind(ctx, wsReq, wsResp, &req)
	if !ok {
		return
	}
	locator, err := h.planner.Share(ctx, board.Board, req.Base)
	if err != nil {
		h.error(ctx, wsResp, err)
		return
	}
	h.ok(wsResp, dto.ShareResp{Locator: locator})
}

func (h *WsHandler) load(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	var req dto.LoadReq
	board, ok := h.bind(ctx, wsReq, wsResp, &req)
	if !ok {
		return
	}
	report, err := h.planner.Load(ctx, board.Board, req.Locator)
	if err != nil {
		h.error(ctx, wsResp, err)
		return
	}
	h.ok(wsResp, report)
}

func (h *WsHandler) view(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	board, ok := h.boardOf(ctx, wsReq, wsResp)
	if !ok {
		return
	}
	v, err := h.planner.View(ctx, board)
	if err != nil {
		h.error(ctx, wsResp, err)
		return
	}
	h.ok(wsResp, v)
}

// boardOf 取连接当前加入的 board，未加入时直接写失败响应
func (h *WsHandler) boardOf(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) (string, bool) {
	if wsReq == nil || wsReq.Body == nil || wsReq.Conn == nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return "", false
	}
	board, ok := h.sessions.BoardOf(wsReq.Conn)
	if !ok {
		h.fail(wsResp, transport.InvalidParam, "尚未加入 board")
		return "", false
	}
	transport.SetBoard(ctx, board)
	return board, true
}

func (h *WsHandler) bind(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp, dst any) (actors.BoardBase, bool) {
	board, ok := h.boardOf(ctx, wsReq, wsResp)
	if !ok {
		return actors.BoardBase{}, false
	}
	if err := ws.BindJSON(wsReq, dst); err != nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return actors.BoardBase{}, false
	}
	return actors.BoardBase{Board: board}, true
}

// ask 用于只关心成败的请求，成功时 msg 为空
func (h *WsHandler) ask(ctx context.Context, wsResp *ws.WsMsgResp, msg actors.BoardMessage) {
	res, err := h.planner.Boards.Ask(ctx, msg)
	if err != nil {
		h.error(ctx, wsResp, err)
		return
	}
	h.ok(wsResp, res)
}

func (h *WsHandler) ok(resp *ws.WsMsgResp, data any) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = transport.OK
	resp.Body.Msg = data
}

func (h *WsHandler) fail(resp *ws.WsMsgResp, code int, msg string) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = code
	if msg != "" {
		resp.Body.Msg = msg
	}
}

func (h *WsHandler) error(ctx context.Context, resp *ws.WsMsgResp, err error) {
	code, msg := handler.HandleError(ctx, h.planner.Log, err)
	h.fail(resp, code, msg)
}
