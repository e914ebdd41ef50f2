package interfaces

import (
	"github.com/gin-gonic/gin"
	"google.golang.org/grpc"

	"AlliancePlanner/internal/planner/app"
	"AlliancePlanner/internal/planner/domain"
	"AlliancePlanner/internal/planner/interfaces/handler"
	httphandler "AlliancePlanner/internal/planner/interfaces/handler/http"
	"AlliancePlanner/internal/planner/interfaces/handler/rpc"
	wshandler "AlliancePlanner/internal/planner/interfaces/handler/ws"
	transporthttp "AlliancePlanner/internal/shared/transport/http"
	"AlliancePlanner/internal/shared/transport/ws"
	"AlliancePlanner/modules/kit/logx"
)

type Module struct {
	wsHandler   *wshandler.WsHandler
	httpHandler *httphandler.HttpHandler
	rpcLayout   *rpc.Layout
}

func New(boards handler.BoardAsker, layouts *app.LayoutService, catalog *domain.Catalog, shareBase string, log logx.Logger) *Module {
	p := handler.NewPlanner(boards, layouts, catalog, shareBase, log)
	return &Module{
		wsHandler:   wshandler.NewWsHandler(p),
		httpHandler: httphandler.NewHttpHandler(p),
		rpcLayout:   rpc.NewLayout(layouts, log),
	}
}

func (m *Module) WsRegister(r *ws.Router) {
	m.wsHandler.RegisterRoutes(r)
}

func (m *Module) HttpRegister(g *gin.RouterGroup) {
	m.httpHandler.RegisterRoutes(g)
}

func (m *Module) RPCRegister(s grpc.ServiceRegistrar) {
	rpc.RegisterLayoutServiceServer(s, m.rpcLayout)
}

var _ ws.Registrar = (*Module)(nil)
var _ transporthttp.Registrar = (*Module)(nil)
