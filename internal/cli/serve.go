package cli

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dirgraph/pkg/buildinfo"
	"github.com/matzehuels/dirgraph/pkg/cache"
	"github.com/matzehuels/dirgraph/pkg/errors"
	"github.com/matzehuels/dirgraph/pkg/io"
	"github.com/matzehuels/dirgraph/pkg/observability"
	"github.com/matzehuels/dirgraph/pkg/pipeline"
	"github.com/matzehuels/dirgraph/pkg/render"
)

// serveCommand creates the serve command, which renders graphs on request.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr, base, configPath string
		cacheDir               string
		cacheTTL               time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered directory graphs over HTTP",
		Long: heredoc.Doc(`
			Serve rendered directory graphs over HTTP.

			Every request walks the directory again and nothing is written next to
			it. With --cache-dir, rendered images are kept and reused while the
			directory content that is shown in them stays the same.

			Endpoints:
			  GET /healthz                 liveness check
			  GET /version                 build information
			  GET /graph/{directory}.svg   rendered graph (also .png)
			  GET /graph/{directory}.json  graph export

			Query parameters: orientation, depth, data, files, hidden, ranksep.
		`),
		Example: heredoc.Doc(`
			dirgraph serve --addr :9000 --base ~/projects
			curl 'localhost:9000/graph/dirgraph.svg?data=true&depth=2'
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			defaults := newGraphFlags().opts
			cfg.apply(cmd.Flags(), &defaults)
			defaults.BasePath = base
			if !cmd.Flags().Changed("addr") && cfg.Addr != "" {
				addr = cfg.Addr
			}
			store, err := openCache(cacheDir)
			if err != nil {
				return err
			}
			defer store.Close()
			return c.serve(cmd.Context(), addr, defaults, store, cacheTTL)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&base, "base", "", "directory whose children can be graphed (default: current directory)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/dirgraph/config.toml)")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "keep rendered images in this directory")
	cmd.Flags().DurationVar(&cacheTTL, "cache-ttl", 24*time.Hour, "lifetime of cached images (0 keeps them forever)")

	return cmd
}

// openCache returns a file cache in dir, or a null cache if dir is empty.
func openCache(dir string) (cache.Cache, error) {
	if dir == "" {
		return cache.NewNullCache(), nil
	}
	store, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, errors.WrapFS(err, "open cache %s", dir)
	}
	return store, nil
}

// serve runs the preview server until ctx is cancelled.
func (c *CLI) serve(ctx context.Context, addr string, defaults pipeline.Options, store cache.Cache, ttl time.Duration) error {
	if err := defaults.SetDefaults(); err != nil {
		return err
	}
	runner := c.newRunner()
	runner.Cache = store
	runner.CacheTTL = ttl
	srv := &server{
		runner:   runner,
		logger:   c.Logger,
		defaults: defaults,
	}

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		_ = httpServer.Shutdown(context.Background())
	}()

	printInfo("Serving graphs of %s on %s", StyleHighlight.Render(defaults.BasePath), StyleHighlight.Render(addr))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(errors.ErrCodeIO, err, "listen on %s", addr)
	}
	return ctx.Err()
}

// =============================================================================
// HTTP Server
// =============================================================================

// server renders graphs for HTTP requests. Each request gets its own
// pipeline run; defaults are copied, never mutated.
type server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	defaults pipeline.Options
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, buildinfo.Get())
	})
	r.Get("/graph/{name}", s.handleGraph)

	return r
}

// instrument logs every request and reports it to the HTTP hooks.
func (s *server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		logger := s.logger.With("request_id", middleware.GetReqID(r.Context()))
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(withLogger(r.Context(), logger)))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		duration := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, duration)
		logger.Info("request", "method", r.Method, "path", r.URL.Path, "status", status, "duration", duration)
	})
}

// handleGraph serves /graph/{directory}.{svg,png,json}.
func (s *server) handleGraph(w http.ResponseWriter, r *http.Request) {
	dir, format := splitGraphName(chi.URLParam(r, "name"))

	opts, err := s.options(r, dir)
	if err != nil {
		writeError(w, err)
		return
	}

	if format == "json" {
		result, err := s.runner.Graph(r.Context(), opts)
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = io.WriteJSON(result.Graph, w)
		return
	}

	if format != "" {
		opts.FileType = format
	}
	result, err := s.runner.Render(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", render.Format(opts.FileType).ContentType())
	if result.Cached {
		w.Header().Set("X-Cache", "HIT")
	}
	_, _ = w.Write(result.Artifact)
}

// splitGraphName splits a /graph path segment into the directory and the
// requested format. Only .svg, .png and .json are treated as extensions, so
// "my.project" names the directory my.project in the default format.
func splitGraphName(name string) (dir, format string) {
	ext := path.Ext(name)
	switch f := strings.ToLower(strings.TrimPrefix(ext, ".")); f {
	case pipeline.FormatSVG, pipeline.FormatPNG, "json":
		return strings.TrimSuffix(name, ext), f
	}
	return name, ""
}

// options derives the pipeline options for a request from the server
// defaults and the query string.
func (s *server) options(r *http.Request, dir string) (pipeline.Options, error) {
	opts := s.defaults
	opts.Directory = dir
	opts.Output = ""
	opts.Logger = loggerFromContext(r.Context())

	q := r.URL.Query()
	if v := q.Get("orientation"); v != "" {
		opts.Orientation = v
	}
	if v := q.Get("depth"); v != "" {
		depth, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid depth: %q", v)
		}
		opts.MaxDepth = &depth
	}
	if v := q.Get("ranksep"); v != "" {
		sep, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid ranksep: %q", v)
		}
		opts.RankSep = &sep
	}
	for _, b := range []struct {
		key string
		dst *bool
	}{
		{"data", &opts.ShowData},
		{"files", &opts.ShowFiles},
		{"hidden", &opts.ShowHidden},
	} {
		v := q.Get(b.key)
		if v == "" {
			continue
		}
		on, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", b.key, v)
		}
		*b.dst = on
	}
	return opts, nil
}

// errorResponse is the JSON body of a failed request.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusFor maps an error to its HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errors.ErrCodeInvalidDirectory), errors.Is(err, errors.ErrCodeNotFound):
		return http.StatusNotFound
	case errors.IsValidation(err):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusFor(err), errorResponse{Code: string(code), Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
