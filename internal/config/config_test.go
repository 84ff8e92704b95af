package config

import (
	"strings"
	"testing"
)

func baseEnv() map[string]string {
	return map[string]string{
		"DATABASE_URL":         "postgres://localhost:5432/pos",
		"PRICING_TAX_RATE_BPS": "700",
		"PORT":                 "",
		"CURRENCY_CODE":        "",
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadForTests(baseEnv())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TaxRateBps != 700 {
		t.Fatalf("tax bps %d, want 700", cfg.TaxRateBps)
	}
	if cfg.CurrencyCode != "THB" {
		t.Fatalf("currency %q, want THB", cfg.CurrencyCode)
	}
	if cfg.HTTPAddr() != ":8080" {
		t.Fatalf("addr %q", cfg.HTTPAddr())
	}
}

func TestLoadRequiresTaxRate(t *testing.T) {
	env := baseEnv()
	env["PRICING_TAX_RATE_BPS"] = ""
	if _, err := LoadForTests(env); err == nil || !strings.Contains(err.Error(), "PRICING_TAX_RATE_BPS") {
		t.Fatalf("expected missing tax rate error, got %v", err)
	}
}

func TestLoadRejectsBadTaxRate(t *testing.T) {
	for _, raw := range []string{"7%", "-1", "10001"} {
		env := baseEnv()
		env["PRICING_TAX_RATE_BPS"] = raw
		if _, err := LoadForTests(env); err == nil {
			t.Fatalf("tax rate %q should be rejected", raw)
		}
	}
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	env := baseEnv()
	env["DATABASE_URL"] = ""
	if _, err := LoadForTests(env); err == nil || !strings.Contains(err.Error(), "DATABASE_URL") {
		t.Fatalf("expected missing database url error, got %v", err)
	}
}
