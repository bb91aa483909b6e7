package dbmigrate

import (
	"testing"

	"github.com/fdg312/meal-hub/internal/config"
)

func TestSelectDatabaseURLPriority(t *testing.T) {
	cfg := &config.Config{
		DatabaseURLDirect: "postgres://direct",
		DatabaseURLRaw:    "postgres://raw",
		DatabaseURLPooled: "postgres://pooled",
	}

	url, source, warning, err := SelectDatabaseURL(cfg, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "postgres://direct" || source != "DATABASE_URL_DIRECT" {
		t.Errorf("expected direct url, got url=%s source=%s", url, source)
	}
	if warning != "" {
		t.Errorf("expected no warning, got %q", warning)
	}
}

func TestSelectDatabaseURLFallbackToRaw(t *testing.T) {
	cfg := &config.Config{
		DatabaseURLRaw:    "postgres://raw",
		DatabaseURLPooled: "postgres://pooled",
	}

	url, source, _, err := SelectDatabaseURL(cfg, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "postgres://raw" || source != "DATABASE_URL" {
		t.Errorf("expected raw url, got url=%s source=%s", url, source)
	}
}

func TestSelectDatabaseURLPooledWarns(t *testing.T) {
	cfg := &config.Config{
		DatabaseURLPooled: "postgres://pooled",
	}

	url, source, warning, err := SelectDatabaseURL(cfg, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "postgres://pooled" || source != "DATABASE_URL_POOLED" {
		t.Errorf("expected pooled url, got url=%s source=%s", url, source)
	}
	if warning == "" {
		t.Error("expected warning for pooled connection")
	}
}

func TestSelectDatabaseURLRequireDirect(t *testing.T) {
	cfg := &config.Config{
		DatabaseURLRaw: "postgres://raw",
	}

	_, _, _, err := SelectDatabaseURL(cfg, true)
	if err == nil {
		t.Fatal("expected error when DATABASE_URL_DIRECT is missing and requireDirect=true")
	}
}

func TestSelectDatabaseURLEmpty(t *testing.T) {
	cfg := &config.Config{}

	_, _, _, err := SelectDatabaseURL(cfg, false)
	if err == nil {
		t.Fatal("expected error when no database URL is configured")
	}
}
