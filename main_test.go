package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"leximind-server/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEnv 指向临时目录中的 SQLite 文件并关闭外部依赖，返回配置目录。
func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("LEXIMIND_SERVER_MODE", "test")
	t.Setenv("LEXIMIND_JWT_SECRET", "main_test_secret")
	t.Setenv("LEXIMIND_DATABASE_TYPE", "sqlite")
	t.Setenv("LEXIMIND_DATABASE_FILENAME", filepath.Join(dir, "data", "leximind.db"))
	t.Setenv("LEXIMIND_REDIS_ENABLED", "false")
	t.Setenv("LEXIMIND_KAFKA_ENABLED", "false")
	t.Setenv("LEXIMIND_SMTP_ENABLED", "false")
	return dir
}

// 测试内容：验证启动流程能装配应用并注册核心路由。
func TestBootstrapAndBuildEngine(t *testing.T) {
	dir := setupEnv(t)

	env, err := bootstrap(dir)
	require.NoError(t, err)
	defer env.Close()

	r, err := buildEngine(env)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/notes", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// 测试内容：验证可信代理配置非法时构建引擎失败。
func TestBuildEngine_InvalidTrustedProxies(t *testing.T) {
	dir := setupEnv(t)
	t.Setenv("LEXIMIND_SERVER_TRUSTED_PROXIES", "10.0.0.1, not-an-ip")

	env, err := bootstrap(dir)
	require.NoError(t, err)
	defer env.Close()

	_, err = buildEngine(env)
	assert.Error(t, err)
}

// 测试内容：验证 routes 子命令将路由表写入指定文件。
func TestRoutesCommand_ExportsJSON(t *testing.T) {
	dir := setupEnv(t)
	output := filepath.Join(dir, "routes.json")

	err := newCommand().Run(context.Background(), []string{"leximind-server", "--config-dir", dir, "routes", "--output", output})
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)

	var routes []routeInfo
	require.NoError(t, json.Unmarshal(data, &routes))

	seen := make(map[string]bool, len(routes))
	for _, r := range routes {
		seen[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"POST /auth/signup",
		"GET /auth/google",
		"GET /api/notes",
		"GET /api/admin/overview",
	} {
		if !seen[want] {
			t.Fatalf("期望导出路由 %s，实际为 %v", want, routes)
		}
	}
}

// 测试内容：验证 create-admin 子命令创建管理员，重复执行时提升既有账号。
func TestCreateAdminCommand(t *testing.T) {
	dir := setupEnv(t)
	args := []string{
		"leximind-server", "--config-dir", dir, "create-admin",
		"--email", "Root@LexiMind.dev", "--username", "root", "--password", "Lexi-Mind-2024-pass",
	}

	require.NoError(t, newCommand().Run(context.Background(), args))
	require.NoError(t, newCommand().Run(context.Background(), args))

	env, err := bootstrap(dir)
	require.NoError(t, err)
	defer env.Close()

	var users []model.User
	require.NoError(t, env.db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "root@leximind.dev", users[0].Email)
	assert.True(t, users[0].IsAdmin)
	assert.True(t, users[0].IsVerified)
}

// 测试内容：验证 create-admin 拒绝弱密码。
func TestCreateAdminCommand_WeakPassword(t *testing.T) {
	dir := setupEnv(t)
	err := newCommand().Run(context.Background(), []string{
		"leximind-server", "--config-dir", dir, "create-admin",
		"--email", "root@leximind.dev", "--password", "123",
	})
	assert.Error(t, err)
}
