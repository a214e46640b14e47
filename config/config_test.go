package config

import "testing"

func TestDecodeDefaults(t *testing.T) {
	cfg, err := Decode()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 4000 {
		t.Errorf("want default port 4000; got %d", cfg.Server.Port)
	}
	if cfg.Server.Env != "development" {
		t.Errorf("want default env development; got %q", cfg.Server.Env)
	}
	if cfg.Storage.Backend != "filesystem" {
		t.Errorf("want default storage backend filesystem; got %q", cfg.Storage.Backend)
	}
}

func TestDecodeEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("ENV", "production")
	t.Setenv("STORAGEBACKEND", "s3")
	cfg, err := Decode()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("want port 8080; got %d", cfg.Server.Port)
	}
	if cfg.Server.Env != "production" {
		t.Errorf("want env production; got %q", cfg.Server.Env)
	}
	if cfg.Storage.Backend != "s3" {
		t.Errorf("want storage backend s3; got %q", cfg.Storage.Backend)
	}
}
