package postgres

import (
	"testing"
	"time"

	"github.com/ogurasousui/shift-scheduler/internal/platform/config"
)

func TestBuildPoolConfig(t *testing.T) {
	t.Parallel()

	dbCfg := config.DatabaseConfig{
		Host:            "localhost",
		Port:            15432,
		User:            "shift",
		Password:        "pass",
		Name:            "shift_scheduler",
		SSLMode:         "disable",
		MaxOpenConns:    20,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 10 * time.Minute,
	}

	poolCfg, err := BuildPoolConfig(dbCfg)
	if err != nil {
		t.Fatalf("BuildPoolConfig returned error: %v", err)
	}

	if poolCfg.MaxConns != 20 {
		t.Errorf("expected MaxConns 20, got %d", poolCfg.MaxConns)
	}
	if poolCfg.MinConns != 5 {
		t.Errorf("expected MinConns 5, got %d", poolCfg.MinConns)
	}
	if poolCfg.MaxConnLifetime != 30*time.Minute {
		t.Errorf("unexpected MaxConnLifetime: %v", poolCfg.MaxConnLifetime)
	}
	if poolCfg.MaxConnIdleTime != 10*time.Minute {
		t.Errorf("unexpected MaxConnIdleTime: %v", poolCfg.MaxConnIdleTime)
	}
	if poolCfg.ConnConfig.Database != "shift_scheduler" {
		t.Errorf("expected database shift_scheduler, got %s", poolCfg.ConnConfig.Database)
	}
	if got := poolCfg.ConnConfig.RuntimeParams["application_name"]; got != ApplicationName {
		t.Errorf("expected application_name %s, got %s", ApplicationName, got)
	}
}

func TestBuildPoolConfig_KeepsDefaultsWhenUnset(t *testing.T) {
	t.Parallel()

	poolCfg, err := BuildPoolConfig(config.DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "shift",
		Password: "pass",
		Name:     "db",
		SSLMode:  "disable",
	})
	if err != nil {
		t.Fatalf("BuildPoolConfig returned error: %v", err)
	}
	if poolCfg.MaxConns <= 0 {
		t.Errorf("expected pgx default MaxConns, got %d", poolCfg.MaxConns)
	}
	if poolCfg.MinConns != 0 {
		t.Errorf("expected MinConns 0, got %d", poolCfg.MinConns)
	}
}
