package outinghandlertests

import (
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	oldAppEnv := os.Getenv("APP_ENV")
	os.Setenv("APP_ENV", "test")
	defer os.Setenv("APP_ENV", oldAppEnv)

	os.Exit(m.Run())
}
