package config

import "testing"

func TestLoadServerConfigDefault(t *testing.T) {
	t.Setenv("PORT", "")
	server, err := loadServerConfig()
	if err != nil {
		t.Fatalf("loadServerConfig: %v", err)
	}
	if server.Addr != ":8080" {
		t.Fatalf("expected default :8080, got %s", server.Addr)
	}
}

func TestLoadServerConfigBarePort(t *testing.T) {
	t.Setenv("PORT", "9000")
	server, err := loadServerConfig()
	if err != nil {
		t.Fatalf("loadServerConfig: %v", err)
	}
	if server.Addr != ":9000" {
		t.Fatalf("expected :9000, got %s", server.Addr)
	}
}

func TestLoadServerConfigFullAddr(t *testing.T) {
	t.Setenv("PORT", "127.0.0.1:9000")
	server, err := loadServerConfig()
	if err != nil {
		t.Fatalf("loadServerConfig: %v", err)
	}
	if server.Addr != "127.0.0.1:9000" {
		t.Fatalf("expected passthrough, got %s", server.Addr)
	}
}

func TestLoadServerConfigInvalid(t *testing.T) {
	t.Setenv("PORT", "bad port")
	if _, err := loadServerConfig(); err == nil {
		t.Fatal("expected error for PORT with spaces")
	}
}

func TestVisionConfigEnabled(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	vision, err := loadVisionConfig()
	if err != nil {
		t.Fatalf("loadVisionConfig: %v", err)
	}
	if vision.Enabled() {
		t.Fatal("expected disabled without a credential")
	}
	if vision.Model != "gemini-1.5-flash-latest" {
		t.Fatalf("unexpected default model: %s", vision.Model)
	}

	t.Setenv("GOOGLE_API_KEY", "key")
	vision, err = loadVisionConfig()
	if err != nil {
		t.Fatalf("loadVisionConfig: %v", err)
	}
	if !vision.Enabled() {
		t.Fatal("expected enabled with a credential")
	}
}

func TestVisionConfigMaxOutputTokens(t *testing.T) {
	t.Setenv("VISION_MAX_OUTPUT_TOKENS", "512")
	vision, err := loadVisionConfig()
	if err != nil {
		t.Fatalf("loadVisionConfig: %v", err)
	}
	if vision.MaxOutputTokens != 512 {
		t.Fatalf("expected 512, got %d", vision.MaxOutputTokens)
	}

	t.Setenv("VISION_MAX_OUTPUT_TOKENS", "many")
	if _, err := loadVisionConfig(); err == nil {
		t.Fatal("expected error for non-numeric value")
	}
}

func TestHistoryConfigDefaultPath(t *testing.T) {
	t.Setenv("HISTORY_FILE", "")
	if got := loadHistoryConfig().FilePath; got != "history.json" {
		t.Fatalf("expected history.json default, got %s", got)
	}
}
