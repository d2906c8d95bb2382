package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Run("缺省键使用默认值", func(t *testing.T) {
		path := writeConfig(t, `
server:
  port: 9090
database:
  driver: sqlite
  sqlite_path: ":memory:"
`)
		cfg, err := LoadFile(path)
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, ":9090", cfg.Server.Addr())
		assert.Equal(t, "debug", cfg.Server.Mode)
		assert.Equal(t, DriverSQLite, cfg.Database.Driver)
		assert.Equal(t, ":memory:", cfg.Database.DSN())
		assert.Equal(t, 3, cfg.Database.MaxRetries)
		assert.Equal(t, 5*time.Second, cfg.Database.MaxRetryDelay)
		assert.Equal(t, 10*time.Minute, cfg.Cache.ItemTTL)
		assert.Equal(t, "todo:item:", cfg.Cache.KeyPrefix)
		assert.Equal(t, "todo.events", cfg.MQ.Exchange)
		assert.Equal(t, uint32(5), cfg.MQ.BreakerFailures)
		assert.Equal(t, 30*time.Second, cfg.MQ.BreakerTimeout)
		assert.Equal(t, "/metrics", cfg.Metrics.Path)
	})

	t.Run("环境变量覆盖", func(t *testing.T) {
		path := writeConfig(t, `
database:
  password: from-file
`)
		t.Setenv("TODO_DATABASE_PASSWORD", "from-env")
		t.Setenv("TODO_SERVER_PORT", "7070")

		cfg, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.Database.Password)
		assert.Equal(t, 7070, cfg.Server.Port)
	})

	t.Run("文件不存在", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Driver:    DriverMySQL,
		User:      "root",
		Password:  "secret",
		Host:      "db",
		Port:      3306,
		DBName:    "todo",
		Charset:   "utf8mb4",
		ParseTime: true,
		Loc:       "Asia/Shanghai",
	}
	assert.Equal(t,
		"root:secret@tcp(db:3306)/todo?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai",
		d.DSN())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 8080, Mode: "debug"},
			Database: DatabaseConfig{Driver: DriverMySQL},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"合法配置", func(*Config) {}, false},
		{"端口越界", func(c *Config) { c.Server.Port = 70000 }, true},
		{"未知模式", func(c *Config) { c.Server.Mode = "prod" }, true},
		{"未知驱动", func(c *Config) { c.Database.Driver = "postgres" }, true},
		{"sqlite缺少路径", func(c *Config) { c.Database.Driver = DriverSQLite }, true},
		{"负重试次数", func(c *Config) { c.Database.MaxRetries = -1 }, true},
		{"缓存TTL为0", func(c *Config) { c.Cache.Enabled = true }, true},
		{"mq缺少exchange", func(c *Config) { c.MQ.Enabled = true }, true},
		{"mq熔断阈值为0", func(c *Config) {
			c.MQ.Enabled = true
			c.MQ.Exchange = "todo.events"
		}, true},
		{"采样率越界", func(c *Config) { c.Tracing.SampleRatio = 1.5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := validate(cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
