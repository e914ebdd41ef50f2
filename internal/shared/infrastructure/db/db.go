package db

import (
	"AlliancePlanner/internal/shared/serverconfig"
	"context"
	"errors"
	"net"
	"strconv"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"AlliancePlanner/internal/shared/logs"
)

const (
	slowQuery   = 200 * time.Millisecond
	dialTimeout = 3 * time.Second
	connMaxLife = 30 * time.Minute
)

// DSN 由驱动自己拼，密码里带 @ / : 之类的字符也不会出错
func DSN(cfg serverconfig.MySQLConfig) (string, error) {
	if cfg.Host == "" || cfg.DBName == "" {
		return "", errors.New("mysql host or dbname is empty")
	}
	charset := cfg.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	port := cfg.Port
	if port == 0 {
		port = 3306
	}

	dc := mysqldriver.NewConfig()
	dc.User = cfg.User
	dc.Passwd = cfg.Password
	dc.Net = "tcp"
	dc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(port))
	dc.DBName = cfg.DBName
	dc.ParseTime = true
	dc.Loc = time.Local
	dc.Timeout = dialTimeout
	dc.Params = map[string]string{"charset": charset}
	return dc.FormatDSN(), nil
}

// Open 打开布局库连接池并 ping 一次
func Open(cfg serverconfig.MySQLConfig) (*gorm.DB, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}
	gdb, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logs.NewGormLogger(logger.Warn, slowQuery),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(max(1, cfg.MaxConn))
	sqlDB.SetMaxIdleConns(max(0, cfg.MaxIdle))
	sqlDB.SetConnMaxLifetime(connMaxLife)

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	logs.Info("open layout db success",
		zap.String("addr", net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))),
		zap.String("db", cfg.DBName),
	)
	return gdb, nil
}
