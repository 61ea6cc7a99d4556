/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dirpx.dev/redbox/grpcx"
	"dirpx.dev/redbox/httpx"
	"dirpx.dev/redbox/internal/config"
	"dirpx.dev/redbox/mapper"
	"dirpx.dev/redbox/presenter"
	"dirpx.dev/redbox/router"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(rf *rootFlags) *cobra.Command {
	var (
		httpAddr, grpcAddr, policy string
		devSupport, strict         bool
		maxFrames                  int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the ExceptionsManager module over HTTP and gRPC",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := rf.load()
			if err != nil {
				return err
			}
			// Flags override the file only when set explicitly.
			fs := cmd.Flags()
			if fs.Changed("http-addr") {
				cfg.HTTPAddr = httpAddr
			}
			if fs.Changed("grpc-addr") {
				cfg.GRPCAddr = grpcAddr
			}
			if fs.Changed("dev-support") {
				cfg.DevSupport = devSupport
			}
			if fs.Changed("failure-policy") {
				cfg.FailurePolicy = policy
			}
			if fs.Changed("strict-frames") {
				cfg.StrictFrames = strict
			}
			if fs.Changed("max-frames") {
				cfg.MaxFrames = maxFrames
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger, cmd.OutOrStdout(), nil)
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&httpAddr, "http-addr", "", "HTTP listen address (empty disables)")
	fs.StringVar(&grpcAddr, "grpc-addr", "", "gRPC listen address (empty disables)")
	fs.BoolVar(&devSupport, "dev-support", true, "show reports on the terminal")
	fs.StringVar(&policy, "failure-policy", "", "malformed payload policy: return or report_soft")
	fs.BoolVar(&strict, "strict-frames", false, "reject callstack frames without position keys")
	fs.IntVar(&maxFrames, "max-frames", 0, "reject callstacks longer than this (0 = no limit)")
	return cmd
}

// listeners are reported to onReady once both servers are bound. A nil
// address means that server is disabled.
type listeners struct {
	HTTP net.Addr
	GRPC net.Addr
}

// serve runs the configured servers until ctx is done, then shuts them
// down gracefully.
func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger, redboxOut io.Writer, onReady func(listeners)) error {
	console := presenter.NewConsole(redboxOut, cfg.DevSupport,
		presenter.WithLogger(logger.With("component", "presenter")))
	r := router.New(console, cfg.RouterOptions(logger.With("component", "router"))...)
	m := mapper.Default()

	var (
		bound   listeners
		httpLis net.Listener
		grpcLis net.Listener
		err     error
	)
	if cfg.HTTPAddr != "" {
		if httpLis, err = net.Listen("tcp", cfg.HTTPAddr); err != nil {
			return fmt.Errorf("listen http: %w", err)
		}
		bound.HTTP = httpLis.Addr()
	}
	if cfg.GRPCAddr != "" {
		if grpcLis, err = net.Listen("tcp", cfg.GRPCAddr); err != nil {
			if httpLis != nil {
				_ = httpLis.Close()
			}
			return fmt.Errorf("listen grpc: %w", err)
		}
		bound.GRPC = grpcLis.Addr()
	}

	g, ctx := errgroup.WithContext(ctx)

	if httpLis != nil {
		srv := &http.Server{
			Handler: httpx.NewHandler(r, m,
				httpx.WithLogger(logger.With("component", "http")),
				httpx.WithMaxBodyBytes(cfg.MaxBodyBytes)),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			logger.Info("http bridge listening", "addr", httpLis.Addr().String())
			if err := srv.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve http: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(sctx)
		})
	}

	if grpcLis != nil {
		srv := grpc.NewServer(grpc.UnaryInterceptor(
			grpcx.UnaryServerInterceptor(m, grpcx.WithLogger(logger.With("component", "grpc")))))
		grpcx.Register(srv, r)
		g.Go(func() error {
			logger.Info("grpc service listening", "addr", grpcLis.Addr().String())
			if err := srv.Serve(grpcLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				return fmt.Errorf("serve grpc: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			srv.GracefulStop()
			return nil
		})
	}

	if onReady != nil {
		onReady(bound)
	}
	err = g.Wait()
	logger.Info("redboxd stopped")
	return err
}
