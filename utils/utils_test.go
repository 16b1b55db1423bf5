package utils

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSlotToken_RoundTrip(t *testing.T) {
	secret := []byte("slot-secret")
	tok, err := GenerateSlotToken(secret, "browser-1", time.Hour)
	if err != nil {
		t.Fatalf("GenerateSlotToken: %v", err)
	}

	got, err := SlotIDFromToken(secret, tok)
	if err != nil {
		t.Fatalf("SlotIDFromToken: %v", err)
	}
	if got != "browser-1" {
		t.Errorf("slot ID = %q, want browser-1", got)
	}
}

func TestSlotToken_Rejected(t *testing.T) {
	secret := []byte("slot-secret")
	valid, _ := GenerateSlotToken(secret, "browser-1", time.Hour)
	expired, _ := GenerateSlotToken(secret, "browser-1", -time.Hour)
	empty, _ := GenerateSlotToken(secret, "", time.Hour)

	cases := map[string]struct {
		secret []byte
		token  string
	}{
		"wrong secret": {[]byte("other"), valid},
		"expired":      {secret, expired},
		"empty sub":    {secret, empty},
		"garbage":      {secret, "not-a-token"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := SlotIDFromToken(tc.secret, tc.token); !errors.Is(err, ErrInvalidSlotToken) {
				t.Errorf("err = %v, want ErrInvalidSlotToken", err)
			}
		})
	}
}

func TestRunHealthChecks(t *testing.T) {
	status := RunHealthChecks(context.Background(), []HealthCheck{
		{Name: "ok", Ping: func(context.Context) error { return nil }},
		{Name: "down", Ping: func(context.Context) error { return errors.New("refused") }},
	})

	if !status.Checks["ok"] || status.Checks["down"] {
		t.Errorf("checks = %v", status.Checks)
	}
	if status.Healthy() {
		t.Error("status with a failed check reported healthy")
	}
	if got := GetHealthStatus(); got.Checks["down"] {
		t.Error("stored snapshot does not match the last run")
	}
}
