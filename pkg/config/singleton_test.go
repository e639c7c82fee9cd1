package config

import (
	"testing"
)

func TestSetConfigAndGetConfig(t *testing.T) {
	original := GetConfig()
	defer SetConfig(original)

	cfg := DefaultConfig()
	cfg.Server.Port = 9123
	SetConfig(cfg)

	got := GetConfig()
	if got == nil {
		t.Fatal("expected config after SetConfig")
	}
	if got.Server.Port != 9123 {
		t.Errorf("expected port %d, got %d", 9123, got.Server.Port)
	}
}

func TestMustGetConfig_PanicsWhenUnset(t *testing.T) {
	original := GetConfig()
	defer SetConfig(original)

	SetConfig(nil)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected MustGetConfig to panic when uninitialized")
		}
	}()

	MustGetConfig()
}

func TestMustGetConfig_ReturnsConfig(t *testing.T) {
	original := GetConfig()
	defer SetConfig(original)

	cfg := DefaultConfig()
	SetConfig(cfg)

	if got := MustGetConfig(); got != cfg {
		t.Error("expected MustGetConfig to return the set instance")
	}
}

func TestGetConfig_ConcurrentAccess(t *testing.T) {
	original := GetConfig()
	defer SetConfig(original)

	SetConfig(DefaultConfig())

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				if cfg := GetConfig(); cfg == nil {
					t.Error("expected non-nil config during concurrent reads")
					return
				}
			}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}
}
