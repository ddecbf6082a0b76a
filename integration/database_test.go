//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestSbnStoreWithMySQL tests the store lifecycle against a MySQL backend.
func TestSbnStoreWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "sbn",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/sbn?parseTime=true", host, port.Port())
	runStoreLifecycle(t, "mysql", connStr)
}

// TestSbnStoreWithPostgres tests the store lifecycle against a PostgreSQL backend.
func TestSbnStoreWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())
	runStoreLifecycle(t, "postgresql", connStr)
}

// runStoreLifecycle syncs the reference tables into the store, prioritizes
// from it and clears it again.
func runStoreLifecycle(t *testing.T, backend, connStr string) {
	dir := writeReferenceTables(t)
	sbnPath := getSbnBinary()

	env := append(os.Environ(),
		"SBN_STORE_BACKEND="+backend,
		"SBN_STORE_CONNECT="+connStr,
	)

	run := func(args ...string) {
		cmd := exec.Command(sbnPath, args...)
		cmd.Env = env
		output, err := cmd.CombinedOutput()
		require.NoError(t, err, "args %v output: %s", args, output)
	}

	run("store", "clear")
	run("store", "sync", "--tables", dir)
	run("store", "status")
	run("prioritize", filepath.Join(dir, "basin.csv"), "--tables", dir, "--from-store", "--basin", "rio-claro")
	run("store", "clear")
}
