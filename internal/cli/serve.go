package cli

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/apigen/pkg/apipath"
	"github.com/matzehuels/apigen/pkg/errors"
	"github.com/matzehuels/apigen/pkg/export"
)

const shutdownTimeout = 5 * time.Second

// serveCommand creates the serve command, a local preview server for an
// exported directory.
func (c *CLI) serveCommand() *cobra.Command {
	var dir, root, addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve an exported API directory for local preview",
		Long: `Serve an exported API directory over HTTP so the generated hrefs resolve.

Requests under the href root map to files in the directory. A request for a
namespace directory returns its index.json manifest.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := newServeHandler(dir, root, c.Logger)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           h,
				ReadHeaderTimeout: 10 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()

			printInfo(cmd.OutOrStdout(), "Serving %s at http://%s%s", dir, addr, hrefPrefix(root))

			select {
			case <-cmd.Context().Done():
				ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return srv.Shutdown(ctx)
			case err := <-errCh:
				if err == http.ErrServerClosed {
					return nil
				}
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", defaultOutput, "exported API directory")
	cmd.Flags().StringVar(&root, "root", export.DefaultRoot, "href root the files were exported with")
	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")

	return cmd
}

// newServeHandler returns a router serving dir under the path of root.
func newServeHandler(dir, root string, logger *log.Logger) (http.Handler, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s is not a directory", dir)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))
	r.Get(hrefPrefix(root)+"*", serveFile(dir))
	return r, nil
}

// hrefPrefix returns the URL path of an href root, with leading and
// trailing slashes. "https://cdn.example.com/docs" yields "/docs/".
func hrefPrefix(root string) string {
	if u, err := url.Parse(root); err == nil && u.Scheme != "" {
		root = u.Path
	}
	return apipath.Normalize("/" + root + "/")
}

// serveFile serves files below dir. Directories resolve to their manifest.
func serveFile(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rel := path.Clean("/" + chi.URLParam(r, "*"))
		name := filepath.Join(dir, filepath.FromSlash(rel))

		info, err := os.Stat(name)
		if err == nil && info.IsDir() {
			name = filepath.Join(name, apipath.ManifestFile)
			info, err = os.Stat(name)
		}
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}

		f, err := os.Open(name)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer f.Close()

		if strings.EqualFold(filepath.Ext(name), ".json") {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
		}
		http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	}
}

// requestLogger logs every request at debug level.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("Request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(),
				"duration", time.Since(start).Round(time.Microsecond))
		})
	}
}
