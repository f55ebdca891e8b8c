// Package observability starts the optional tracing and profiling backends of
// the pipeline process.
package observability

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/pprof"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/matchedge/internal/config"
	"github.com/riskibarqy/matchedge/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
)

type Options struct {
	// Pprof serves net/http/pprof when PPROF_ENABLED is also set. One-shot
	// runs leave it off.
	Pprof bool
}

// Runtime owns whatever Start enabled.
type Runtime struct {
	logger *logging.Logger
	hooks  []stopHook
	// PprofAddr is the bound pprof address, empty when not serving.
	PprofAddr string
}

type stopHook struct {
	name string
	stop func(context.Context) error
}

// Start enables the backends turned on in cfg. On error everything started
// so far is stopped again.
func Start(cfg config.Config, logger *logging.Logger, opts Options) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}
	r := &Runtime{logger: logger}

	if stop := startTracing(cfg, logger); stop != nil {
		r.hooks = append(r.hooks, stopHook{name: "uptrace", stop: stop})
	}

	stopProfiler, err := startProfiler(cfg, logger)
	if err != nil {
		_ = r.Shutdown(context.Background())
		return nil, crerr.Wrap(err, "start pyroscope")
	}
	if stopProfiler != nil {
		r.hooks = append(r.hooks, stopHook{name: "pyroscope", stop: stopProfiler})
	}

	if opts.Pprof && cfg.PprofEnabled {
		srv, addr, err := startPprof(cfg.PprofAddr, logger)
		if err != nil {
			_ = r.Shutdown(context.Background())
			return nil, crerr.Wrap(err, "start pprof")
		}
		r.PprofAddr = addr
		r.hooks = append(r.hooks, stopHook{name: "pprof", stop: srv.Shutdown})
	}
	return r, nil
}

// Shutdown stops the enabled backends in reverse start order.
func (r *Runtime) Shutdown(ctx context.Context) error {
	if r == nil {
		return nil
	}
	var combined error
	for i := len(r.hooks) - 1; i >= 0; i-- {
		h := r.hooks[i]
		if err := h.stop(ctx); err != nil {
			combined = crerr.CombineErrors(combined, crerr.Wrapf(err, "stop %s", h.name))
			continue
		}
		r.logger.Debug("observability backend stopped", "backend", h.name)
	}
	r.hooks = nil
	return combined
}

func startTracing(cfg config.Config, logger *logging.Logger) func(context.Context) error {
	if !cfg.UptraceEnabled || strings.TrimSpace(cfg.UptraceDSN) == "" {
		logger.Info("uptrace disabled", "enabled", cfg.UptraceEnabled)
		return nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithLoggingEnabled(false),
	)
	logger.Info("uptrace enabled",
		"service_name", cfg.ServiceName,
		"service_version", cfg.ServiceVersion,
		"environment", cfg.AppEnv,
	)
	return uptrace.Shutdown
}

// startProfiler pushes CPU and heap profiles. Lock profiles are left out:
// the pipeline holds no contended locks worth sampling.
func startProfiler(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if !cfg.PyroscopeEnabled {
		logger.Info("pyroscope disabled")
		return nil, nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags: map[string]string{
			"env":     cfg.AppEnv,
			"service": cfg.ServiceName,
		},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
	})
	if err != nil {
		return nil, err
	}
	logger.Info("pyroscope enabled",
		"server_address", cfg.PyroscopeServerAddress,
		"application", cfg.PyroscopeAppName,
	)
	return func(context.Context) error { return profiler.Stop() }, nil
}

// startPprof binds before returning so a bad address fails Start.
func startPprof(addr string, logger *logging.Logger) (*http.Server, string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, "", err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	bound := ln.Addr().String()
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("pprof server failed", "error", err)
		}
	}()
	logger.Info("pprof server started", "addr", bound)
	return srv, bound, nil
}
