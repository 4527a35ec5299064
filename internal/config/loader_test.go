package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/frontendfusion/signup/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.UsersAPIURL, convey.ShouldEqual, "http://localhost:3333")
				convey.So(cfg.Vacancies, convey.ShouldResemble, config.DefaultVacancies)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("FUSION_ADDR", ":8080")
			_ = os.Setenv("FUSION_USERS_API_URL", "https://api.example.com")
			_ = os.Setenv("FUSION_USERS_API_TIMEOUT_MS", "2500")
			_ = os.Setenv("FUSION_SESSION_LIMIT", "42")
			_ = os.Setenv("FUSION_COOKIE_SECURE", "true")
			_ = os.Setenv("FUSION_VACANCIES", "Frontend Developer, Data Engineer")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.UsersAPIURL, convey.ShouldEqual, "https://api.example.com")
				convey.So(cfg.UsersAPITimeoutMS, convey.ShouldEqual, 2500)
				convey.So(cfg.SessionLimit, convey.ShouldEqual, 42)
				convey.So(cfg.CookieSecure, convey.ShouldBeTrue)
				convey.So(cfg.Vacancies, convey.ShouldResemble, []string{"Frontend Developer", "Data Engineer"})
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			tmpFile := createTempConfigFile(`
addr: ":9090"
log_level: debug
users_api_url: "https://users.internal"
users_api_token: "secret"
vacancies:
  - "QA Engineer"
  - "Tech Writer"
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("FUSION_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file and replace the vacancy list", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.UsersAPIURL, convey.ShouldEqual, "https://users.internal")
				convey.So(cfg.UsersAPIToken, convey.ShouldEqual, "secret")
				convey.So(cfg.Vacancies, convey.ShouldResemble, []string{"QA Engineer", "Tech Writer"})
				convey.So(cfg.SessionLimit, convey.ShouldEqual, 10_000) // From defaults
			})
		})

		convey.Convey("When a YAML vacancy contains a comma", func() {
			tmpFile := createTempConfigFile(`
vacancies:
  - "Developer, Senior"
  - "  QA Engineer "
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("FUSION_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then the entry should stay whole", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Vacancies, convey.ShouldResemble, []string{"Developer, Senior", "QA Engineer"})
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(`
addr: ":9090"
users_api_timeout_ms: 3000
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("FUSION_CONFIG", tmpFile)
			_ = os.Setenv("FUSION_ADDR", ":8080")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")             // Overridden by env
				convey.So(cfg.UsersAPITimeoutMS, convey.ShouldEqual, 3000) // From file
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("FUSION_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("FUSION_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("FUSION_USERS_API_TIMEOUT_MS", "soon")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestConfigValidation(t *testing.T) {
	convey.Convey("Given config validation", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When addr is empty", func() {
			tmpFile := createTempConfigFile(`addr: ""`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("FUSION_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the users API URL is blank", func() {
			_ = os.Setenv("FUSION_USERS_API_URL", "   ")

			_, err := config.Load(ctx)

			convey.Convey("Then it should be rejected", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "users_api_url")
			})
		})

		convey.Convey("When the timeout is negative", func() {
			_ = os.Setenv("FUSION_USERS_API_TIMEOUT_MS", "-1")

			_, err := config.Load(ctx)

			convey.Convey("Then it should be rejected", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the vacancy list is empty", func() {
			tmpFile := createTempConfigFile("vacancies: []\n")
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("FUSION_CONFIG", tmpFile)

			_, err := config.Load(ctx)

			convey.Convey("Then it should be rejected", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "vacancy")
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"FUSION_CONFIG",
		"FUSION_ADDR",
		"FUSION_LOG_LEVEL",
		"FUSION_USERS_API_URL",
		"FUSION_USERS_API_TOKEN",
		"FUSION_USERS_API_TIMEOUT_MS",
		"FUSION_SESSION_LIMIT",
		"FUSION_COOKIE_SECURE",
		"FUSION_VACANCIES",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "fusion-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
