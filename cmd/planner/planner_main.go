package main

import (
	"AlliancePlanner/internal/planner/actor"
	"AlliancePlanner/internal/planner/actors"
	"AlliancePlanner/internal/planner/app"
	"AlliancePlanner/internal/planner/codec"
	"AlliancePlanner/internal/planner/domain"
	"AlliancePlanner/internal/planner/infra/persistence/memory"
	"AlliancePlanner/internal/planner/infra/persistence/mongodb"
	"AlliancePlanner/internal/planner/infra/persistence/mysql"
	"AlliancePlanner/internal/planner/infra/prefs"
	"AlliancePlanner/internal/planner/interfaces"
	"AlliancePlanner/internal/shared/config"
	"AlliancePlanner/internal/shared/gameconfig/building"
	"AlliancePlanner/internal/shared/infrastructure/db"
	"AlliancePlanner/internal/shared/infrastructure/mongo"
	"AlliancePlanner/internal/shared/logs"
	"AlliancePlanner/internal/shared/security"
	"AlliancePlanner/internal/shared/serverconfig"
	transportgrpc "AlliancePlanner/internal/shared/transport/grpc"
	transporthttp "AlliancePlanner/internal/shared/transport/http"
	"AlliancePlanner/internal/shared/transport/ws"
	"AlliancePlanner/internal/shared/utils"
	"AlliancePlanner/modules/kit/logx"
	"context"
	"errors"
	"fmt"
	"net"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	serverconfig.Load()
	if err := logs.Init("planner", serverconfig.Conf.Log); err != nil {
		panic(err)
	}
	logs.Info("conf", zap.Any("conf", serverconfig.Conf))
	conf := serverconfig.Conf
	baseLogger := logx.NewZapLogger(logs.Logger())
	config.OnReload(func() {
		logs.SetLevel(serverconfig.Conf.Log.Level)
	})
	if err := utils.InitSnowflake(conf.Planner.NodeID); err != nil {
		logs.Fatal("init layout id generator failed", zap.Error(err))
	}

	catalog, err := building.Load(conf.Planner.BuildingsFile)
	if err != nil {
		logs.Fatal("load building catalog failed", zap.Error(err))
	}
	grid := domain.GridConfig{GridSize: conf.Planner.DefaultGridSize, CellSize: conf.Planner.DefaultCellSize}
	if err := grid.Validate(); err != nil {
		logs.Fatal("invalid grid config", zap.Error(err))
	}

	repo, closeRepo, err := openRepository(conf)
	if err != nil {
		logs.Fatal("open layout repository failed", zap.String("driver", conf.Storage.Driver), zap.Error(err))
	}
	defer closeRepo()

	runtime := actor.NewRuntime(actors.Deps{
		Catalog:     catalog,
		Grid:        grid,
		Repo:        repo,
		Prefs:       prefs.Open(conf.Planner.PrefsAppName, baseLogger),
		FlushEvery:  time.Duration(conf.Storage.FlushEveryS) * time.Second,
		IdleTimeout: time.Duration(conf.Planner.IdleTimeoutS) * time.Second,
		Log:         baseLogger,
	}, time.Duration(conf.Planner.AskTimeoutMs)*time.Millisecond)

	layouts := app.NewLayoutService(repo, codec.New(catalog), utils.NextSnowflakeID,
		security.Award, security.VerifyLayoutToken, baseLogger)
	planner := interfaces.New(runtime, layouts, catalog, conf.Planner.ShareBaseURL, baseLogger)

	wsRouter := ws.NewRouter(baseLogger)
	for _, m := range []ws.Registrar{planner} {
		m.WsRegister(wsRouter)
	}

	httpServer := transporthttp.NewHttpServer(hostPort(conf.HTTPServer.Host, conf.HTTPServer.Port), nil, baseLogger)
	for _, m := range []transporthttp.Registrar{planner} {
		m.HttpRegister(httpServer.Group())
	}
	wsServer := ws.NewServer(wsRouter, conf.HTTPServer.NeedSecret, baseLogger)
	httpServer.Engine().Any("/ws", gin.WrapH(wsServer))
	httpServer.Engine().Any("/ws/*any", gin.WrapH(wsServer))

	rpcServer := transportgrpc.NewServer(baseLogger)
	planner.RPCRegister(rpcServer)
	rpcAddr := hostPort(conf.GRPCServer.Host, conf.GRPCServer.Port)
	lis, err := net.Listen("tcp", rpcAddr)
	if err != nil {
		logs.Fatal("listen planner grpc failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	go func() {
		if err := httpServer.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- fmt.Errorf("planner http serve failed: %w", err)
		}
	}()
	go func() {
		logs.Info("planner grpc server started", zap.String("addr", rpcAddr))
		if err := rpcServer.Serve(lis); err != nil {
			errCh <- fmt.Errorf("planner grpc serve failed: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logs.Info("收到退出信号，准备优雅退出")
	case err := <-errCh:
		if err != nil {
			logs.Error("服务异常退出", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)

	stopCh := make(chan struct{})
	go func() {
		rpcServer.GracefulStop()
		close(stopCh)
	}()
	select {
	case <-stopCh:
	case <-shutdownCtx.Done():
		rpcServer.Stop()
	}
	_ = lis.Close()

	// 最后停 actor，保证 board 最后一次落盘
	runtime.Shutdown()
}

func openRepository(conf serverconfig.Config) (app.LayoutRepository, func(), error) {
	switch conf.Storage.Driver {
	case serverconfig.DriverMemory:
		logs.Warn("使用内存存储，进程退出后布局会丢失")
		return memory.NewLayoutRepository(), func() {}, nil
	case serverconfig.DriverMongo:
		store, err := mongo.Open(conf.MongoDB, logs.Logger())
		if err != nil {
			return nil, nil, err
		}
		repo := mongodb.NewLayoutRepository(store.DB)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := repo.EnsureIndexes(ctx); err != nil {
			logs.Warn("ensure mongodb indexes failed", zap.Error(err))
		}
		closeFn := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			_ = store.Close(ctx)
		}
		return repo, closeFn, nil
	case serverconfig.DriverMySQL:
		gormDB, err := db.Open(conf.MySQL)
		if err != nil {
			return nil, nil, err
		}
		repo := mysql.NewLayoutRepository(gormDB)
		if err := repo.Migrate(); err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if sqlDB, err := gormDB.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return repo, closeFn, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", conf.Storage.Driver)
	}
}

func hostPort(host string, port int) string {
	if host == "" {
		host = "0.0.0.0"
	}
	return fmt.Sprintf("%s:%d", host, port)
}
