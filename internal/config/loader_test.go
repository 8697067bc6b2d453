package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/itm-analitica/concurso/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	Convey("Given no file and no environment overrides", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then defaults apply", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":9080")
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.StorePath, ShouldEqual, "concurso.db")
			So(cfg.RegistrationsWorksheet, ShouldEqual, "inscripciones")
			So(cfg.JuryWorksheet, ShouldEqual, "jurados")
			So(cfg.BallotsWorksheet, ShouldEqual, "votaciones")
			So(cfg.RoleWeights["docente"], ShouldAlmostEqual, 0.7, 1e-9)
			So(cfg.RoleWeights["estudiante"], ShouldAlmostEqual, 0.3, 1e-9)
			So(cfg.MaxLeaderboardLimit, ShouldEqual, 100)
		})
	})
}

func TestLoadFromFile(t *testing.T) {
	Convey("Given a YAML file referenced by CONCURSO_CONFIG", t, func() {
		path := writeConfigFile(t, `
addr: ":8088"
log_level: debug
store_path: /var/lib/concurso/votes.db
role_weights:
  docente: 0.6
  estudiante: 0.4
`)
		t.Setenv("CONCURSO_CONFIG", path)

		cfg, err := config.Load(context.Background())

		Convey("Then file values override defaults, untouched keys keep theirs", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":8088")
			So(cfg.LogLevel, ShouldEqual, "debug")
			So(cfg.StorePath, ShouldEqual, "/var/lib/concurso/votes.db")
			So(cfg.RoleWeights["docente"], ShouldAlmostEqual, 0.6, 1e-9)
			So(cfg.BallotsWorksheet, ShouldEqual, "votaciones")
		})
	})

	Convey("Given CONCURSO_CONFIG pointing at a missing file", t, func() {
		t.Setenv("CONCURSO_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

		_, err := config.Load(context.Background())
		So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
	})

	Convey("Given a file that is not valid YAML", t, func() {
		t.Setenv("CONCURSO_CONFIG", writeConfigFile(t, "addr: [unclosed"))

		_, err := config.Load(context.Background())
		So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
	})
}

func TestLoadFromEnv(t *testing.T) {
	Convey("Given CONCURSO_-prefixed environment variables", t, func() {
		t.Setenv("CONCURSO_ADDR", ":7070")
		t.Setenv("CONCURSO_STORE_PATH", "env.db")
		t.Setenv("CONCURSO_LOG_LEVEL", "warn")

		cfg, err := config.Load(context.Background())

		Convey("Then they override the defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":7070")
			So(cfg.StorePath, ShouldEqual, "env.db")
			So(cfg.LogLevel, ShouldEqual, "warn")
		})
	})

	Convey("Given both a file and environment overrides", t, func() {
		t.Setenv("CONCURSO_CONFIG", writeConfigFile(t, `addr: ":8088"`))
		t.Setenv("CONCURSO_ADDR", ":7070")

		cfg, err := config.Load(context.Background())

		Convey("Then environment wins over the file", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":7070")
		})
	})
}

func TestLoadValidation(t *testing.T) {
	Convey("An empty addr is rejected", t, func() {
		t.Setenv("CONCURSO_CONFIG", writeConfigFile(t, `addr: ""`))

		_, err := config.Load(context.Background())
		So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
	})

	Convey("A negative role weight is rejected", t, func() {
		t.Setenv("CONCURSO_CONFIG", writeConfigFile(t, `
role_weights:
  docente: -0.5
`))

		_, err := config.Load(context.Background())
		So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
	})
}
