package api

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"strconv"

	"github.com/NVIDIA/data-expectations/pkg/expectation"
	"github.com/NVIDIA/data-expectations/pkg/logging"
	"github.com/NVIDIA/data-expectations/pkg/server"
	"github.com/NVIDIA/data-expectations/pkg/validator"
)

const (
	name           = "dx-api-server"
	versionDefault = "dev"

	// EnvParallelism bounds concurrent evaluations per validation request.
	EnvParallelism = "PARALLELISM"
)

var (
	// set with -ldflags "-X github.com/NVIDIA/data-expectations/pkg/api.version=..."
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve runs the validation API until SIGINT or SIGTERM. Logs are JSON on
// stderr; the listener is configured by the server package environment.
func Serve() error {
	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	reg := expectation.Default()
	v := validator.New(
		validator.WithVersion(version),
		validator.WithRegistry(reg),
		validator.WithParallelism(parallelism()),
	)

	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(Routes(reg, v)),
	)

	if err := s.Run(context.Background()); err != nil {
		slog.Error("server stopped", "error", err)
		return err
	}
	return nil
}

// Routes returns the API routes served by Serve.
//
//	GET  /v1/kinds          registered expectation kinds
//	GET  /v1/kinds/{kind}   a single kind's parameter schema
//	POST /v1/validate       validate a suite document
func Routes(reg *expectation.Registry, v *validator.Validator) map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/v1/kinds":        reg.HandleKinds,
		"/v1/kinds/{kind}": reg.HandleKinds,
		"/v1/validate":     v.HandleValidate,
	}
}

func parallelism() int {
	if s := os.Getenv(EnvParallelism); s != "" {
		n, err := strconv.Atoi(s)
		if err == nil && n > 0 {
			return n
		}
		slog.Warn("ignoring invalid parallelism", "env", EnvParallelism, "value", s)
	}
	return runtime.NumCPU()
}
