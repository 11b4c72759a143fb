// Command healthcheck probes the /health endpoint of a local personauth
// server and exits non-zero when it is unreachable or unhealthy. It resolves
// the listen address from the same layered configuration as serve.
package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/ericfisherdev/personauth/internal/config"
)

const probeTimeout = 2 * time.Second

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	fs := pflag.NewFlagSet("healthcheck", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "config file path (YAML)")
	config.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*configPath, fs)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "healthcheck:", err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	client := &http.Client{Timeout: probeTimeout}
	if err := probe(ctx, client, "http://"+loopbackAddr(cfg.ListenAddr)); err != nil {
		_, _ = fmt.Fprintln(stderr, "healthcheck:", err)
		return 1
	}
	return 0
}

// probe requests baseURL/health and fails on any non-200 answer.
func probe(ctx context.Context, client *http.Client, baseURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", req.URL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("get %s: status %d", req.URL, resp.StatusCode)
	}
	return nil
}

// loopbackAddr rewrites a wildcard bind address to loopback. The probe runs
// inside the same container as the server.
func loopbackAddr(listenAddr string) string {
	host, port, err := net.SplitHostPort(listenAddr)
	if err != nil {
		return listenAddr
	}

	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}

	return net.JoinHostPort(host, port)
}
