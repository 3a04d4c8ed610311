package progression

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ellavondegurechaff/strengthforge/progression/maturity"
	"github.com/ellavondegurechaff/strengthforge/progression/quests"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		env     map[string]string
		wantErr string
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "defaults",
			body: "[auth]\njwt_secret = \"s3cret\"\n",
			check: func(t *testing.T, cfg *Config) {
				require.Equal(t, StorageMemory, cfg.Storage.Driver)
				require.Equal(t, 8080, cfg.HTTP.Port)
				require.Equal(t, "s3cret", cfg.HTTP.JWTSecret)
				require.Empty(t, cfg.HTTP.CronSecret)
				require.Equal(t, maturity.NewDefaultConfig(), cfg.Maturity)
				require.Equal(t, quests.NewDefaultConfig(), cfg.Quests)
			},
		},
		{
			name: "secrets from environment",
			body: "[storage]\ntime_zone = \"Europe/Berlin\"\n",
			env: map[string]string{
				"STRENGTHFORGE_JWT_SECRET":  "from-env",
				"STRENGTHFORGE_CRON_SECRET": "cron",
			},
			check: func(t *testing.T, cfg *Config) {
				require.Equal(t, "from-env", cfg.HTTP.JWTSecret)
				require.Equal(t, "cron", cfg.HTTP.CronSecret)
				loc, err := cfg.Location()
				require.NoError(t, err)
				require.Equal(t, "Europe/Berlin", loc.String())
			},
		},
		{
			name: "section replaces defaults",
			body: "[auth]\njwt_secret = \"x\"\n[maturity]\nnovice = 10\ndeveloping = 20\nproficient = 30\n",
			check: func(t *testing.T, cfg *Config) {
				require.Equal(t, &maturity.Config{Novice: 10, Developing: 20, Proficient: 30}, cfg.Maturity)
			},
		},
		{
			name:    "missing jwt secret",
			body:    "[log]\nformat = \"json\"\n",
			wantErr: "jwt_secret",
		},
		{
			name:    "unknown field",
			body:    "[auth]\njwt_secret = \"x\"\nbogus = 1\n",
			wantErr: "failed to decode",
		},
		{
			name:    "unknown driver",
			body:    "[auth]\njwt_secret = \"x\"\n[storage]\ndriver = \"sqlite\"\n",
			wantErr: "unknown storage driver",
		},
		{
			name:    "postgres without host",
			body:    "[auth]\njwt_secret = \"x\"\n[storage]\ndriver = \"postgres\"\n",
			wantErr: "db.host",
		},
		{
			name:    "partial maturity section fails validation",
			body:    "[auth]\njwt_secret = \"x\"\n[maturity]\nnovice = 10\n",
			wantErr: "maturity",
		},
		{
			name:    "discord without token",
			body:    "[auth]\njwt_secret = \"x\"\n[discord]\nenabled = true\nchannel_id = \"1\"\n",
			wantErr: "discord",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := LoadConfig(writeConfig(t, tt.body))
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.ErrorContains(t, err, "failed to open config")
}

func TestLoadConfig_Example(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "config.example.toml"))
	require.NoError(t, err)
	require.Equal(t, StoragePostgres, cfg.Storage.Driver)
	require.Equal(t, 0.6, cfg.Readiness.TeamProportion)
}
