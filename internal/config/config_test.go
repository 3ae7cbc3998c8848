package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"UKLC_CONFIG", "UKLC_BACKEND", "UKLC_DB", "UKLC_POSTGRES_DSN", "UKLC_REDIS_ADDR",
		"UKLC_REDIS_PASSWORD", "UKLC_REDIS_DB", "UKLC_HTTP_ADDR", "UKLC_ADMIN_SECRET_HASH",
		"UKLC_LOG_MODE", "UKLC_CORS_ORIGINS",
	} {
		t.Setenv(k, "")
	}
	// keep any .env in the working directory out of the picture
	chdirForTest(t, t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Backend)
	assert.Equal(t, ":8080", cfg.HTTPAddress)
	assert.Equal(t, "lessons.db", filepath.Base(cfg.DBPath))
	assert.Equal(t, "uklc:", cfg.Redis.Prefix)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "uklc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
backend: redis
http_address: ":9000"
cors_origins: ["https://a.example"]
redis:
  addr: localhost:6379
  db: 2
`), 0o644))

	t.Setenv("UKLC_HTTP_ADDR", ":9100")
	t.Setenv("UKLC_CORS_ORIGINS", "https://b.example, https://c.example")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.Backend)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, ":9100", cfg.HTTPAddress)
	assert.Equal(t, []string{"https://b.example", "https://c.example"}, cfg.CORSOrigins)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides a variable that is already set, even to ""
	require.NoError(t, os.Unsetenv("UKLC_BACKEND"))
	require.NoError(t, os.WriteFile(".env", []byte("UKLC_BACKEND=memory\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Backend)
}

func TestLoad_InvalidBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("UKLC_BACKEND", "etcd")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_BadRedisDB(t *testing.T) {
	clearEnv(t)
	t.Setenv("UKLC_REDIS_DB", "two")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate_BackendRequirements(t *testing.T) {
	assert.Error(t, Config{Backend: "postgres"}.Validate())
	assert.Error(t, Config{Backend: "redis"}.Validate())
	assert.Error(t, Config{Backend: "sqlite"}.Validate())
	assert.NoError(t, Config{Backend: "memory"}.Validate())
}

func TestRead_DefersValidation(t *testing.T) {
	clearEnv(t)
	t.Setenv("UKLC_BACKEND", "postgres")

	cfg, err := Read("")
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Backend)
	assert.Error(t, cfg.Validate())
}

func TestRead_MalformedFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: [unterminated\n"), 0o644))

	_, err := Read(path)
	assert.Error(t, err)
}

func TestLoad_DotEnvAdminHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("single quoted", func(t *testing.T) {
		clearEnv(t)
		require.NoError(t, os.Unsetenv("UKLC_ADMIN_SECRET_HASH"))
		require.NoError(t, os.WriteFile(".env", []byte("UKLC_ADMIN_SECRET_HASH='"+string(hash)+"'\n"), 0o644))

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, string(hash), cfg.AdminHash)
	})

	t.Run("unquoted is expanded and rejected", func(t *testing.T) {
		clearEnv(t)
		require.NoError(t, os.Unsetenv("UKLC_ADMIN_SECRET_HASH"))
		require.NoError(t, os.WriteFile(".env", []byte("UKLC_ADMIN_SECRET_HASH="+string(hash)+"\n"), 0o644))

		_, err := Load("")
		assert.ErrorContains(t, err, "admin_secret_hash")
	})
}

func TestValidate_AdminHash(t *testing.T) {
	base := Config{Backend: "memory"}
	assert.NoError(t, base.Validate())

	base.AdminHash = "not-a-hash"
	assert.Error(t, base.Validate())
}

// chdirForTest mirrors testing.T.Chdir (Go 1.24+) for older toolchains:
// it changes the working directory and restores it when the test ends.
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
