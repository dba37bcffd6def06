package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/funnyprom/work-management-system/config"
)

// Handle 数据库句柄，持有进程内唯一的连接池
//
// 生命周期：
//   - NewHandle 只保存配置，不建立连接
//   - 首次调用 DB 时建立连接池并 Ping，之后复用同一实例（init-once）
//   - 首次初始化失败的结果同样被缓存，调用方应在启动阶段处理
//   - Close 在进程退出时释放连接池，之后 DB 返回 ErrClosed
type Handle struct {
	cfg      *config.DatabaseConfig
	logLevel gormlogger.LogLevel
	logger   *zap.Logger

	once   sync.Once
	mu     sync.Mutex
	db     *gorm.DB
	err    error
	closed bool
}

// ErrClosed 句柄已关闭
var ErrClosed = fmt.Errorf("数据库句柄已关闭")

// NewHandle 创建数据库句柄
func NewHandle(cfg *config.DatabaseConfig, logLevel gormlogger.LogLevel, logger *zap.Logger) *Handle {
	return &Handle{cfg: cfg, logLevel: logLevel, logger: logger}
}

// DB 获取 GORM 实例，首次调用时建立连接池
func (h *Handle) DB(ctx context.Context) (*gorm.DB, error) {
	h.mu.Lock()
	closed := h.closed
	h.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}

	h.once.Do(func() {
		h.db, h.err = open(ctx, h.cfg, h.logLevel, h.logger)
	})
	return h.db, h.err
}

// Close 关闭连接池；未初始化或重复调用均安全
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true

	if h.db == nil {
		return nil
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	h.logger.Info("数据库连接已关闭")
	return sqlDB.Close()
}

// open 初始化 PostgreSQL 数据库连接
func open(ctx context.Context, cfg *config.DatabaseConfig, logLevel gormlogger.LogLevel, logger *zap.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}

	// 连接池配置（默认与原系统一致：上限 10，空闲 30 秒回收）
	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 10
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = maxOpen
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Second)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("数据库 ping 失败: %w", err)
	}

	logger.Info("数据库连接成功",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("dbname", cfg.Name),
		zap.Int("max_open_conns", maxOpen),
	)

	return db, nil
}
