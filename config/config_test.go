package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "log:\n  level: debug\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load 应成功: %v", err)
	}
	if cfg.Server.Port != 3001 {
		t.Errorf("期望默认端口 3001，实际=%d", cfg.Server.Port)
	}
	if cfg.Database.MaxOpenConns != 10 {
		t.Errorf("期望默认连接池上限 10，实际=%d", cfg.Database.MaxOpenConns)
	}
	if cfg.Redis.StatsTTL != 30*time.Second {
		t.Errorf("期望统计缓存 30s，实际=%v", cfg.Redis.StatsTTL)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("期望 log.level=debug，实际=%s", cfg.Log.Level)
	}
	if cfg.Server.ExposeErrorDetails {
		t.Error("生产模式默认不应暴露错误详情")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 8080\n")
	t.Setenv("WMS_SERVER_PORT", "9090")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load 应成功: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("环境变量应覆盖配置文件，期望 9090，实际=%d", cfg.Server.Port)
	}
}

func TestLoad_DevelopmentExposesDetails(t *testing.T) {
	path := writeConfig(t, "server:\n  mode: development\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load 应成功: %v", err)
	}
	if !cfg.Server.ExposeErrorDetails {
		t.Error("开发模式应默认暴露错误详情")
	}
}

func TestLoad_DevelopmentExplicitOptOut(t *testing.T) {
	path := writeConfig(t, "server:\n  mode: development\n  expose_error_details: false\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load 应成功: %v", err)
	}
	if cfg.Server.ExposeErrorDetails {
		t.Error("显式关闭后不应暴露错误详情")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: 3001, Mode: "production"},
			Database:  DatabaseConfig{MaxOpenConns: 10, MaxIdleConns: 5},
			RateLimit: RateLimitConfig{Enabled: true, Requests: 10, Window: time.Minute},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"合法配置", func(c *Config) {}, false},
		{"端口越界", func(c *Config) { c.Server.Port = 70000 }, true},
		{"未知模式", func(c *Config) { c.Server.Mode = "staging" }, true},
		{"连接池为0", func(c *Config) { c.Database.MaxOpenConns = 0 }, true},
		{"空闲连接超过上限", func(c *Config) { c.Database.MaxIdleConns = 20 }, true},
		{"限流窗口为0", func(c *Config) { c.RateLimit.Window = 0 }, true},
		{"关闭限流时忽略窗口", func(c *Config) { c.RateLimit.Enabled = false; c.RateLimit.Window = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err=%v, wantErr=%v", err, tt.wantErr)
			}
		})
	}
}
