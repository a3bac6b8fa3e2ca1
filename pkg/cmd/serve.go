package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	"github.com/tilt-dev/simpleserve/internal/iostreams"
	"github.com/tilt-dev/simpleserve/pkg/api"
	"github.com/tilt-dev/simpleserve/pkg/encoding"
	"github.com/tilt-dev/simpleserve/pkg/server"
)

type ServeOptions struct {
	iostreams.IOStreams

	Host            string
	Port            int
	ConfigFile      string
	RateLimit       float64
	RateBurst       int
	ShutdownTimeout time.Duration
}

func NewServeOptions() *ServeOptions {
	return &ServeOptions{
		IOStreams:       iostreams.IOStreams{Out: os.Stdout, ErrOut: os.Stderr, In: os.Stdin},
		Port:            api.DefaultPort,
		ShutdownTimeout: 5 * time.Second,
	}
}

func (o *ServeOptions) Command() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Example: "  simpleserve serve\n" +
			"  simpleserve serve --port 9090\n" +
			"  cat server.yaml | simpleserve serve -f -",
		Run:  o.Run,
		Args: cobra.NoArgs,
	}

	cmd.Flags().StringVar(&o.Host, "host", o.Host,
		"Interface to bind. Defaults to all interfaces")
	cmd.Flags().IntVar(&o.Port, "port", o.Port,
		"Port to listen on")
	cmd.Flags().StringVarP(&o.ConfigFile, "filename", "f", o.ConfigFile,
		"Server config file to load. Use - for stdin")
	cmd.Flags().Float64Var(&o.RateLimit, "rate-limit", o.RateLimit,
		"Max requests per second. 0 disables rate limiting")
	cmd.Flags().IntVar(&o.RateBurst, "rate-burst", o.RateBurst,
		"Burst size when rate limiting")
	cmd.Flags().DurationVar(&o.ShutdownTimeout, "shutdown-timeout", o.ShutdownTimeout,
		"How long to wait for in-flight requests on shutdown")

	return cmd
}

func (o *ServeOptions) Run(cmd *cobra.Command, args []string) {
	err := o.run(cmd)
	if err != nil {
		_, _ = fmt.Fprintf(o.ErrOut, "%v\n", err)
		os.Exit(1)
	}
}

func (o *ServeOptions) run(cmd *cobra.Command) error {
	cfg, err := o.serverConfig(cmd.Flags())
	if err != nil {
		return err
	}
	klog.V(2).Infof("resolved config: %+v", cfg)

	srv := server.New(cfg, o.Out)
	err = srv.Listen()
	if err != nil {
		return err
	}
	srv.Stats().Publish()

	_, _ = fmt.Fprintf(o.Out, "Server running on http://%s:%d\n", displayHost(cfg.Host), srv.Port())
	_, _ = fmt.Fprintln(o.Out, "Press Ctrl+C to stop the server")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Serve)
	g.Go(func() error {
		<-gctx.Done()
		klog.V(1).Infof("signal received, stopping")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), o.ShutdownTimeout)
		defer cancel()
		return srv.Stop(shutdownCtx)
	})
	return g.Wait()
}

// serverConfig resolves the effective config: defaults, overridden by
// the config file, overridden by explicitly set flags.
func (o *ServeOptions) serverConfig(flags *pflag.FlagSet) (*api.Server, error) {
	cfg := &api.Server{
		TypeMeta: api.TypeMeta{Kind: "Server", APIVersion: "simpleserve.dev/v1alpha1"},
	}
	if o.ConfigFile != "" {
		loaded, err := o.loadConfigFile()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if flags.Changed("host") {
		cfg.Host = o.Host
	}
	if flags.Changed("port") {
		cfg.Port = o.Port
	}
	if flags.Changed("rate-limit") || flags.Changed("rate-burst") {
		if cfg.RateLimit == nil {
			cfg.RateLimit = &api.RateLimit{}
		}
		if flags.Changed("rate-limit") {
			cfg.RateLimit.RequestsPerSecond = o.RateLimit
		}
		if flags.Changed("rate-burst") {
			cfg.RateLimit.Burst = o.RateBurst
		}
	}

	cfg.SetDefaults()
	return cfg, nil
}

func (o *ServeOptions) loadConfigFile() (*api.Server, error) {
	objects, err := o.parseConfigFile()
	if err != nil {
		return nil, err
	}

	var result *api.Server
	for _, obj := range objects {
		cfg, ok := obj.(*api.Server)
		if !ok {
			return nil, fmt.Errorf("unexpected object %T in %s", obj, o.ConfigFile)
		}
		if result != nil {
			return nil, fmt.Errorf("multiple Server configs in %s", o.ConfigFile)
		}
		result = cfg
	}
	if result == nil {
		return nil, fmt.Errorf("no Server config found in %s", o.ConfigFile)
	}
	return result, nil
}

func (o *ServeOptions) parseConfigFile() ([]interface{}, error) {
	if o.ConfigFile == "-" {
		return encoding.ParseStream(o.In)
	}

	path, err := homedir.Expand(o.ConfigFile)
	if err != nil {
		return nil, errors.Wrapf(err, "expanding path %s", o.ConfigFile)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	defer func() {
		_ = f.Close()
	}()

	objects, err := encoding.ParseStream(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", o.ConfigFile)
	}
	return objects, nil
}

// displayHost is the host shown in the startup URL. A bind to all
// interfaces is reachable locally as localhost.
func displayHost(host string) string {
	switch host {
	case "", "0.0.0.0", "::":
		return "localhost"
	}
	return host
}
