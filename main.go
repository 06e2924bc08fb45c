package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leximind-server/internal/config"
	"leximind-server/internal/consts"
	"leximind-server/internal/db"
	"leximind-server/internal/di"
	"leximind-server/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    consts.ApplicationName,
		Usage:   "LexiMind 后端服务",
		Version: consts.ApplicationVersion,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Aliases: []string{"c"},
				Value:   "config",
				Usage:   "配置目录（config.yaml 与 .env 所在位置）",
				Sources: cli.EnvVars("LEXIMIND_CONFIG_DIR"),
			},
		},
		Action: runServe,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "启动 HTTP 服务",
				Action: runServe,
			},
			{
				Name:  "routes",
				Usage: "导出路由表并退出",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "output",
						Value: "routes.json",
						Usage: "导出文件路径",
					},
				},
				Action: runExportRoutes,
			},
			{
				Name:  "create-admin",
				Usage: "创建管理员，已存在的账号会被提升为管理员",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true, Usage: "管理员邮箱"},
					&cli.StringFlag{Name: "username", Value: "admin", Usage: "管理员用户名"},
					&cli.StringFlag{Name: "password", Required: true, Usage: "管理员密码", Sources: cli.EnvVars("LEXIMIND_ADMIN_PASSWORD")},
				},
				Action: runCreateAdmin,
			},
		},
	}
}

// runtimeEnv 持有一次命令执行期间的全部依赖。
type runtimeEnv struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
	app    *di.Application
}

func bootstrap(configDir string) (*runtimeEnv, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, err
	}

	lg, err := logger.New(cfg.Server.Mode, cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("初始化日志失败: %w", err)
	}
	zap.ReplaceGlobals(lg)

	gormDB, err := db.Open(cfg.Database, cfg.Server.Timezone, lg)
	if err != nil {
		_ = lg.Sync()
		return nil, err
	}

	app, err := di.InitializeApplication(cfg, lg, gormDB)
	if err != nil {
		closeDB(gormDB)
		_ = lg.Sync()
		return nil, fmt.Errorf("初始化应用失败: %w", err)
	}

	return &runtimeEnv{cfg: cfg, logger: lg, db: gormDB, app: app}, nil
}

func (e *runtimeEnv) Close() {
	if err := e.app.Close(); err != nil {
		e.logger.Warn("⚠️ 释放应用资源失败", zap.Error(err))
	}
	closeDB(e.db)
	_ = e.logger.Sync()
}

func closeDB(gormDB *gorm.DB) {
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func buildEngine(env *runtimeEnv) (*gin.Engine, error) {
	gin.SetMode(env.cfg.Server.Mode)

	r := gin.New()
	// 未配置时不信任任何代理，ClientIP 直接取连接地址
	if err := r.SetTrustedProxies(config.SplitList(env.cfg.Server.TrustedProxies)); err != nil {
		return nil, fmt.Errorf("可信代理配置无效: %w", err)
	}
	env.app.Router.Init(r)
	return r, nil
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	env, err := bootstrap(cmd.String("config-dir"))
	if err != nil {
		return err
	}
	defer env.Close()

	r, err := buildEngine(env)
	if err != nil {
		return err
	}

	printWelcomeMessage(env.cfg)

	srv := &http.Server{
		Addr:              ":" + env.cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		env.logger.Info("🚀 服务启动成功", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("服务启动失败: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	env.logger.Info("🛑 正在关闭服务...")
	// 最多等待 5 秒处理完在途请求
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("服务强制关闭: %w", err)
	}
	env.logger.Info("✅ 服务已退出")
	return nil
}

func runExportRoutes(_ context.Context, cmd *cli.Command) error {
	env, err := bootstrap(cmd.String("config-dir"))
	if err != nil {
		return err
	}
	defer env.Close()

	r, err := buildEngine(env)
	if err != nil {
		return err
	}

	output := cmd.String("output")
	if err := exportRoutes(r, output); err != nil {
		return err
	}
	fmt.Printf("✅ 路由已成功导出到 %s\n", output)
	return nil
}

func runCreateAdmin(ctx context.Context, cmd *cli.Command) error {
	env, err := bootstrap(cmd.String("config-dir"))
	if err != nil {
		return err
	}
	defer env.Close()

	user, created, err := env.app.Modules.User.Service.EnsureAdmin(ctx, cmd.String("email"), cmd.String("username"), cmd.String("password"))
	if err != nil {
		return err
	}
	if created {
		fmt.Printf("✅ 已创建管理员 %s (%s)\n", user.Username, user.Email)
	} else {
		fmt.Printf("✅ 已将 %s 设为管理员，旧会话已失效\n", user.Email)
	}
	return nil
}

type routeInfo struct {
	Method  string `json:"method"`
	Path    string `json:"path"`
	Handler string `json:"handler"`
}

func exportRoutes(r *gin.Engine, path string) error {
	routes := r.Routes()
	exportList := make([]routeInfo, 0, len(routes))
	for _, route := range routes {
		exportList = append(exportList, routeInfo{
			Method:  route.Method,
			Path:    route.Path,
			Handler: route.Handler,
		})
	}

	file, err := json.MarshalIndent(exportList, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, file, 0o644)
}

func printWelcomeMessage(cfg *config.Config) {
	fmt.Println()
	fmt.Println(" ┌───────────────────────────────────────────────────────┐")
	fmt.Printf(" │   🚀  %s\n", consts.ApplicationName)
	fmt.Println(" ├───────────────────────────────────────────────────────┤")
	fmt.Printf(" │   📦  版本     : %s\n", consts.ApplicationVersion)
	fmt.Printf(" │   🗄️  数据库   : %s\n", cfg.Database.Type)
	fmt.Printf(" │   🌐  前端地址 : %s\n", cfg.Server.ClientURL)
	fmt.Printf(" │   🔥  服务端口 : %s\n", cfg.Server.Port)
	fmt.Println(" └───────────────────────────────────────────────────────┘")
	fmt.Println()
}
