// seed 向数据库写入一组可重复执行的测试数据（公司、部门、员工与当日考勤）
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"hr-suite/backend/config"
	"hr-suite/backend/internal/repository"
	"hr-suite/backend/internal/service"
	"hr-suite/backend/pkg/database"
	applogger "hr-suite/backend/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "seed 失败: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv(config.EnvConfigFile))
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("初始化日志失败: %w", err)
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		return fmt.Errorf("数据库连接失败: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB, cfg.Database.Driver, logger); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo := repository.NewRepository(db)
	if _, err := service.NewSeedService(&cfg.Seed, repo, logger, nil).Run(ctx, os.Stdout); err != nil {
		return err
	}
	return nil
}
