package taskhub_test

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/nightowllabs/taskhub/pkg/taskhubapi"
)

var baseURL string

// TestMain builds the service image from the repository Dockerfile and runs
// one container for the whole suite. Rate limits are raised so the suite
// never trips them.
func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		FromDockerfile: testcontainers.FromDockerfile{
			Context:    "../../..",
			Dockerfile: "cmd/taskhub/Dockerfile",
		},
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"ENV":                        "test",
			"LOG_FORMAT":                 "text",
			"TASKHUB_ADMIN_PASSWORD":     "e2e-admin-pw",
			"RATELIMIT_LENIENT_REQUESTS": "100000",
			"RATELIMIT_LENIENT_BURST":    "100000",
			"RATELIMIT_PUBLIC_REQUESTS":  "100000",
			"RATELIMIT_PUBLIC_BURST":     "100000",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(2 * time.Minute),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start taskhub container: %v\n", err)
		os.Exit(1)
	}

	host, err := container.Host(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve container host: %v\n", err)
		_ = container.Terminate(ctx)
		os.Exit(1)
	}

	port, err := container.MappedPort(ctx, "8080/tcp")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve mapped port: %v\n", err)
		_ = container.Terminate(ctx)
		os.Exit(1)
	}

	baseURL = fmt.Sprintf("http://%s:%s", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newClient(t *testing.T) *taskhubapi.Client {
	t.Helper()

	if baseURL == "" {
		t.Skip("e2e container not running (short mode)")
	}
	return taskhubapi.NewClient(baseURL)
}

// uniq suffixes a name so tests sharing the container never collide on the
// unique username/email constraints.
func uniq(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
