// Command healthcheck probes the local control API and exits 0 when it reports
// healthy, 1 otherwise. It is meant for container HEALTHCHECK directives.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	httphandler "github.com/ericfisherdev/statuspanel/internal/adapter/driving/http"
)

// defaultAddr is probed when STATUSPANEL_LISTEN_ADDR is unset or malformed.
const defaultAddr = "127.0.0.1:8484"

const probeTimeout = 2 * time.Second

func main() {
	addr := normalizeAddr(os.Getenv("STATUSPANEL_LISTEN_ADDR"))

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	err := probe(ctx, &http.Client{Timeout: probeTimeout}, addr)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, "healthcheck:", err)
		os.Exit(1)
	}
}

// probe requests the health endpoint at addr and checks the reported status.
func probe(ctx context.Context, client *http.Client, addr string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+addr+"/api/v1/health", nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected HTTP status %d", resp.StatusCode)
	}

	var body httphandler.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode health response: %w", err)
	}
	if body.Status != httphandler.HealthStatusOK {
		return fmt.Errorf("server reports status %q", body.Status)
	}

	return nil
}

// normalizeAddr resolves the address the control API listens on. The API only
// binds loopback, so "localhost" and an empty host both map to 127.0.0.1.
func normalizeAddr(raw string) string {
	if raw == "" {
		return defaultAddr
	}

	host, port, err := net.SplitHostPort(raw)
	if err != nil {
		return defaultAddr
	}

	if host == "" || host == "localhost" {
		host = "127.0.0.1"
	}

	return net.JoinHostPort(host, port)
}
