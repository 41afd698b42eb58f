// Package metrics exposes the fuzzing engine's stats sink over a minimal
// Prometheus-text /metrics endpoint, grounded directly on the teacher's
// internal/runtime.StartMetricsServer: sorted collector/metric names, a
// single text handler, and the bound address returned to the caller so
// ":0" can be used in tests.
package metrics

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sort"
	"time"
)

// CollectorFunc returns a snapshot of named gauge values. Implementations
// should be cheap: the handler calls every registered collector on each
// scrape.
type CollectorFunc func() map[string]float64

// StartServer starts the /metrics endpoint on addr and returns the bound
// address plus a shutdown function.
func StartServer(addr string, collectors map[string]CollectorFunc) (string, func(ctx context.Context) error, error) {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		names := make([]string, 0, len(collectors))
		for name := range collectors {
			names = append(names, name)
		}

		sort.Strings(names)

		for _, name := range names {
			fn := collectors[name]
			if fn == nil {
				continue
			}

			snapshot := fn()

			keys := make([]string, 0, len(snapshot))
			for k := range snapshot {
				keys = append(keys, k)
			}

			sort.Strings(keys)

			for _, k := range keys {
				fmt.Fprintf(w, "%s %g\n", sanitizeMetricToken(name+"_"+k), snapshot[k])
			}
		}
	})

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 3 * time.Second}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, err
	}

	bound := ln.Addr().String()

	go func() {
		_ = srv.Serve(ln)
	}()

	stop := func(ctx context.Context) error {
		return srv.Shutdown(ctx)
	}

	return bound, stop, nil
}

func sanitizeMetricToken(s string) string {
	b := make([]byte, len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' || c == ':' {
			b[i] = c
		} else {
			b[i] = '_'
		}
	}

	if len(b) > 0 && b[0] >= '0' && b[0] <= '9' {
		return "_" + string(b)
	}

	return string(b)
}
