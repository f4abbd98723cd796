package engine

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/thrasher-corp/bulkwithdraw/exchanges/request"
	"github.com/thrasher-corp/bulkwithdraw/log"
)

// RESTLogger logs the requests internally
func RESTLogger(inner http.Handler, name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		inner.ServeHTTP(w, r)

		log.Debugf(log.RESTSys,
			"%s\t%s\t%s\t%s",
			r.Method,
			r.URL.Path,
			name,
			time.Since(start),
		)
	})
}

// newRouter returns a new multiplexor router serving the exchange API
func (e *Engine) newRouter() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	routes := []Route{
		{"Index", http.MethodGet, "/", getIndex},
		{"Balance", http.MethodPost, "/api/{exchange}/balance", e.RESTGetBalance},
		{"Coins", http.MethodPost, "/api/{exchange}/coins", e.RESTGetCoins},
		{"Withdraw", http.MethodPost, "/api/{exchange}/withdraw", e.RESTWithdraw},
		{"WithdrawStream", http.MethodGet, "/api/{exchange}/withdraw/stream", e.WebsocketWithdrawHandler},
	}

	for _, route := range routes {
		var handler http.Handler
		handler = route.HandlerFunc
		handler = RESTLogger(handler, route.Name)

		router.
			Methods(route.Method).
			Path(route.Pattern).
			Name(route.Name).
			Handler(handler)
	}
	return router
}

// StartRESTServer starts the REST and websocket API server. It blocks until
// the server is stopped.
func (e *Engine) StartRESTServer() error {
	if e == nil {
		return ErrNilSubsystem
	}
	srv, err := e.newServer()
	if err != nil {
		return err
	}
	log.Infof(log.RESTSys, "HTTP REST server support enabled. Listen URL: http://%s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Serve serves the API on an existing listener. It blocks until the server
// is stopped.
func (e *Engine) Serve(l net.Listener) error {
	if e == nil {
		return ErrNilSubsystem
	}
	srv, err := e.newServer()
	if err != nil {
		return err
	}
	log.Infof(log.RESTSys, "HTTP REST server support enabled. Listen URL: http://%s", l.Addr())
	if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (e *Engine) newServer() (*http.Server, error) {
	e.serverMu.Lock()
	defer e.serverMu.Unlock()
	if e.server != nil {
		return nil, ErrServerAlreadyRunning
	}
	if e.Config == nil {
		return nil, errNilConfig
	}
	e.server = &http.Server{
		Addr:              e.Config.Server.ListenAddress,
		Handler:           e.newRouter(),
		ReadHeaderTimeout: e.Config.Server.ReadTimeout,
		ReadTimeout:       e.Config.Server.ReadTimeout,
		WriteTimeout:      e.Config.Server.WriteTimeout,
		BaseContext: func(net.Listener) context.Context {
			if e.Verbose {
				return request.WithVerbose(context.Background())
			}
			return context.Background()
		},
	}
	return e.server, nil
}

// StopRESTServer gracefully shuts the API server down
func (e *Engine) StopRESTServer(ctx context.Context) error {
	if e == nil {
		return ErrNilSubsystem
	}
	e.serverMu.Lock()
	srv := e.server
	e.server = nil
	e.serverMu.Unlock()
	if srv == nil {
		return nil
	}
	log.Infoln(log.RESTSys, "HTTP REST server shutting down")
	return srv.Shutdown(ctx)
}

func getIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=UTF-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("bulkwithdraw REST interface. POST /api/{exchange}/balance, /api/{exchange}/coins or /api/{exchange}/withdraw\n"))
}
