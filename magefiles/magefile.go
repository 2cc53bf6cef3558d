//go:build mage

package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binary  = "bin/staffdesk"
	seedOut = "staffdesk.seed.yaml"
)

// Build tidies deps, then compiles to ./bin/staffdesk.
func Build() error {
	mg.Deps(Tidy)
	fmt.Println(">> Building server binary...")
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		version = "dev"
	}
	return sh.Run("go", "build", "-ldflags", "-X main.version="+version, "-o", binary, "./cmd/server")
}

// Run builds then executes the binary.
func Run() error {
	mg.Deps(Build)
	fmt.Println(">> Starting server on :8080 ...")
	return sh.Run(binary, "serve")
}

// Dev starts the server via go run with debug logging and a visible
// simulated latency. Ctrl-C stops it.
func Dev() error {
	fmt.Println(">> Dev mode: go run ./cmd/server serve ...")
	cmd := exec.Command("go", "run", "./cmd/server", "serve")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), "PORT=8080", "LOG_LEVEL=debug", "SIMULATED_LATENCY=500ms")
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()
	select {
	case <-quit:
		fmt.Println("\n>> Shutting down...")
		cmd.Process.Signal(syscall.SIGTERM)
		return <-done
	case err := <-done:
		return err
	}
}

// Seed writes the sample data to staffdesk.seed.yaml for editing; point
// SEED_FILE at it to start from the edited copy.
func Seed() error {
	out, err := sh.Output("go", "run", "./cmd/server", "seed")
	if err != nil {
		return err
	}
	fmt.Println(">> Writing", seedOut)
	return os.WriteFile(seedOut, []byte(out+"\n"), 0o644)
}

// Tidy runs go mod tidy.
func Tidy() error {
	fmt.Println(">> go mod tidy...")
	return sh.Run("go", "mod", "tidy")
}

// Test runs all unit tests with the race detector.
func Test() error {
	fmt.Println(">> Running tests...")
	return sh.Run("go", "test", "-race", "./...")
}

// Lint runs golangci-lint if available.
func Lint() error {
	if _, err := exec.LookPath("golangci-lint"); err != nil {
		fmt.Println(">> golangci-lint not found; skipping.")
		return nil
	}
	return sh.Run("golangci-lint", "run", "./...")
}

// Clean removes build artifacts and the exported seed file.
func Clean() error {
	fmt.Println(">> Cleaning...")
	os.Remove(seedOut)
	return os.RemoveAll("bin")
}

// Install builds and installs the binary to $GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	return sh.Run("go", "install", "./cmd/server")
}

func init() {
	err := godotenv.Load()
	if err != nil {
		slog.Warn("error loading .env file", "err", err)
	}
}
