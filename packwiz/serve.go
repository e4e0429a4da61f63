package packwiz

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/horizr/horizr/cmd"
	"github.com/horizr/horizr/cmdshared"
	"github.com/horizr/horizr/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// exportServer serves the files of a packwiz export. Only pack.toml, index.toml and
// the files listed in the index are served, there is no directory listing.
type exportServer struct {
	dir string

	mu    sync.RWMutex
	files map[string]bool
}

func newExportServer(dir string) (*exportServer, error) {
	s := &exportServer{dir: dir}
	if err := s.refresh(); err != nil {
		return nil, err
	}
	return s, nil
}

// refresh reads index.toml again, the export may have been regenerated since the last request
func (s *exportServer) refresh() error {
	var index core.Index
	if _, err := toml.DecodeFile(filepath.Join(s.dir, indexFileName), &index); err != nil {
		return fmt.Errorf("failed to read %s: %w", indexFileName, err)
	}
	files := map[string]bool{packFileName: true, indexFileName: true}
	for _, f := range index.Files {
		files[f.Path] = true
	}

	s.mu.Lock()
	s.files = files
	s.mu.Unlock()
	return nil
}

func (s *exportServer) allowed(rel string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.files[rel]
}

func (s *exportServer) serveFile(c *gin.Context) {
	rel := strings.TrimPrefix(path.Clean("/"+c.Param("filepath")), "/")
	if rel == packFileName {
		// Launchers start by fetching pack.toml
		if err := s.refresh(); err != nil {
			log.Error("Failed to refresh the index", "err", err)
			c.String(http.StatusInternalServerError, "Failed to read the index")
			return
		}
	}
	if !s.allowed(rel) {
		c.String(http.StatusNotFound, "File not found")
		return
	}

	filePath := filepath.Join(s.dir, filepath.FromSlash(rel))
	if info, err := os.Stat(filePath); err != nil || info.IsDir() {
		c.String(http.StatusNotFound, "File not found")
		return
	}
	if strings.HasSuffix(rel, ".toml") {
		c.Header("Content-Type", "application/toml")
	}
	c.File(filePath)
}

func (s *exportServer) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	r.GET("/*filepath", s.serveFile)
	r.HEAD("/*filepath", s.serveFile)
	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("Request", "method", c.Request.Method, "path", c.Request.URL.Path,
			"status", c.Writer.Status(), "duration", time.Since(start))
	}
}

// lanAddress returns the first non-loopback IPv4 address of this machine
func lanAddress() (string, bool) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", false
	}
	for _, addr := range addrs {
		if ipNet, ok := addr.(*net.IPNet); ok && !ipNet.IP.IsLoopback() {
			if ip4 := ipNet.IP.To4(); ip4 != nil {
				return ip4.String(), true
			}
		}
	}
	return "", false
}

func listenAddress(port int, expose bool) string {
	if expose {
		return fmt.Sprintf(":%d", port)
	}
	return fmt.Sprintf("127.0.0.1:%d", port)
}

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "Serve the packwiz export over HTTP",
	Aliases: []string{"server"},
	Args:    cobra.NoArgs,
	Run: func(c *cobra.Command, args []string) {
		pack := cmdshared.LoadPackOrExit()
		dir := filepath.Join(pack.ExportsDir, ExportDirName)
		if _, err := os.Stat(dir); err != nil {
			fmt.Printf("The %s directory does not exist. Generate it by running horizr packwiz export.\n", ExportDirName)
			os.Exit(1)
		}
		srv, err := newExportServer(dir)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		port := viper.GetInt("packwiz.serve.port")
		expose := viper.GetBool("packwiz.serve.expose")
		if !viper.GetBool("verbose") {
			gin.SetMode(gin.ReleaseMode)
		}
		httpSrv := &http.Server{
			Addr:              listenAddress(port, expose),
			Handler:           srv.router(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, cancel := cmd.Context()
		defer cancel()
		go func() {
			<-ctx.Done()
			shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancelShutdown()
			_ = httpSrv.Shutdown(shutdownCtx)
		}()

		fmt.Println("Serving at")
		fmt.Printf("  Local: http://localhost:%d/%s\n", port, packFileName)
		if expose {
			if ip, ok := lanAddress(); ok {
				fmt.Printf("  Network: http://%s:%d/%s\n", ip, port, packFileName)
			}
		}
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Printf("Error running server: %s\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	packwizCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 8000, "The port to run the server on")
	_ = viper.BindPFlag("packwiz.serve.port", serveCmd.Flags().Lookup("port"))
	serveCmd.Flags().BoolP("expose", "e", false, "Listen on all interfaces instead of only localhost")
	_ = viper.BindPFlag("packwiz.serve.expose", serveCmd.Flags().Lookup("expose"))
}
