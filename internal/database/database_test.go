package database

import (
	"testing"

	"inkwell/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaPolicy(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *config.Config
		wantSQL  bool
		wantAuto bool
		wantErr  bool
	}{
		{
			name:     "hybrid in development runs both",
			cfg:      &config.Config{DBSchemaMode: "hybrid", Env: "development"},
			wantSQL:  true,
			wantAuto: true,
		},
		{
			name:     "empty mode defaults to hybrid",
			cfg:      &config.Config{Env: "development"},
			wantSQL:  true,
			wantAuto: true,
		},
		{
			name:     "hybrid in production runs SQL only",
			cfg:      &config.Config{DBSchemaMode: "hybrid", Env: "production"},
			wantSQL:  true,
			wantAuto: false,
		},
		{
			name:     "sql mode never auto-migrates",
			cfg:      &config.Config{DBSchemaMode: "sql", Env: "development"},
			wantSQL:  true,
			wantAuto: false,
		},
		{
			name:     "auto mode in development",
			cfg:      &config.Config{DBSchemaMode: "auto", Env: "development"},
			wantSQL:  false,
			wantAuto: true,
		},
		{
			name:    "auto mode refused in production without override",
			cfg:     &config.Config{DBSchemaMode: "auto", Env: "production"},
			wantErr: true,
		},
		{
			name:     "auto mode in production with explicit override",
			cfg:      &config.Config{DBSchemaMode: "auto", Env: "production", DBAutoMigrateAllowDestructive: true},
			wantSQL:  false,
			wantAuto: true,
		},
		{
			name:    "unknown mode rejected",
			cfg:     &config.Config{DBSchemaMode: "yolo", Env: "development"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runSQL, runAuto, err := schemaPolicy(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, runSQL)
			assert.Equal(t, tt.wantAuto, runAuto)
		})
	}
}

func TestRegisterMigrations_Ordering(t *testing.T) {
	ms := GetMigrations()
	require.NotEmpty(t, ms, "embedded migrations should be registered")
	for i := 1; i < len(ms); i++ {
		assert.Less(t, ms[i-1].Version, ms[i].Version, "migrations must be sorted by version")
	}
	for _, m := range ms {
		assert.NotEmpty(t, m.UpScript)
		assert.NotEmpty(t, m.DownScript)
	}
}
