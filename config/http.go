package config

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	. "github.com/logrusorgru/aurora"
	"golang.org/x/net/netutil"
	"golang.org/x/sync/errgroup"
	"m7s.live/replicast/log"
	"m7s.live/replicast/util"
)

// HTTP is an optional listener for the observability endpoints.
type HTTP struct {
	ListenAddr   string        `yaml:"listenAddr" env:"LISTEN_ADDR"` // disabled when empty
	CORS         bool          `yaml:"cors" env:"CORS" default:"true"`
	UserName     string        `yaml:"username" env:"USERNAME"`
	Password     string        `yaml:"password" env:"PASSWORD"`
	ReadTimeout  time.Duration `yaml:"readTimeout" env:"READ_TIMEOUT" default:"10s"`
	WriteTimeout time.Duration `yaml:"writeTimeout" env:"WRITE_TIMEOUT" default:"10s"`
	IdleTimeout  time.Duration `yaml:"idleTimeout" env:"IDLE_TIMEOUT" default:"60s"`
	MaxConns     int           `yaml:"maxConns" env:"MAX_CONNS" default:"16"` // concurrent connections, unlimited when 0
	mux          *http.ServeMux
}

func (config *HTTP) Handle(path string, f http.Handler) {
	if config.mux == nil {
		config.mux = http.NewServeMux()
	}
	if config.CORS {
		f = util.CORS(f)
	}
	if config.UserName != "" && config.Password != "" {
		f = util.BasicAuth(config.UserName, config.Password, f)
	}
	config.mux.Handle(path, f)
}

// Handler is every route added with Handle, or nil if there are none.
func (config *HTTP) Handler() http.Handler {
	if config.mux == nil {
		return nil
	}
	return config.mux
}

// Listen serves until ctx is done, then shuts the server down. It returns
// at once when ListenAddr is empty or nothing was handled.
func (config *HTTP) Listen(ctx context.Context) error {
	if config.ListenAddr == "" || config.mux == nil {
		return nil
	}
	ln, err := net.Listen("tcp", config.ListenAddr)
	if err != nil {
		return err
	}
	if config.MaxConns > 0 {
		ln = netutil.LimitListener(ln, config.MaxConns)
	}
	server := http.Server{
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
		Handler:      config.mux,
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("🌐 http listen at ", Blink(ln.Addr()))
		if err := server.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
