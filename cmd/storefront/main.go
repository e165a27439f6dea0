package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	cookiejar "github.com/juju/persistent-cookiejar"

	"github.com/klwxsrx/go-storefront/internal/pkg/cmd"
	"github.com/klwxsrx/go-storefront/internal/storefront"
	storefronthttp "github.com/klwxsrx/go-storefront/internal/storefront/infra/http"
	pkgcmd "github.com/klwxsrx/go-storefront/pkg/cmd"
	"github.com/klwxsrx/go-storefront/pkg/env"
	pkghttp "github.com/klwxsrx/go-storefront/pkg/http"
	"github.com/klwxsrx/go-storefront/pkg/log"
)

const (
	defaultAPIURL  = "http://localhost:8080"
	stateDirectory = ".storefront"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" {
		printUsage(os.Stdout)
		return 0
	}

	command, ok := commands[args[0]]
	if !ok {
		_, _ = fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
		printUsage(os.Stderr)
		return 2
	}

	ctx, cancel := pkgcmd.WithTermination(context.Background())
	defer cancel()

	err := env.LoadDotEnv(".env")
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		return 1
	}

	stateDir := stateDirectory
	if home, err := os.UserHomeDir(); err == nil {
		stateDir = filepath.Join(home, stateDirectory)
	}

	sessionConfig, err := cmd.ParseSessionConfig(cmd.SessionStoreFile, filepath.Join(stateDir, "session.json"))
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		return 1
	}

	jar, err := openCookieJar(filepath.Join(stateDir, "cookies.json"))
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		return 1
	}

	infra := cmd.NewInfrastructureContainer(ctx, cmd.InfrastructureConfig{
		MetricsNamespace: "storefront",
		LogWriter:        os.Stderr,
		LogLevel:         log.LevelWarn,
		Session:          sessionConfig,
		ClientOptions:    []pkghttp.ClientOption{pkghttp.WithCookieJar(jar)},
	})
	defer infra.Close(ctx)

	logger := infra.Logger.MustLoad()
	defer pkgcmd.HandleAppPanic(ctx, logger)
	defer func() {
		if err := jar.Save(); err != nil {
			logger.WithError(err).Error(ctx, "failed to save cookies")
		}
	}()

	config, err := storefrontConfig(sessionConfig)
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		return 1
	}

	container := storefront.NewDependencyContainer(
		config,
		infra.SessionStore,
		infra.HTTPClientFactory,
		infra.Metrics,
		infra.Logger,
	)

	err = command.run(ctx, newApp(container, os.Stdout), args[1:])
	if errors.Is(err, errUsage) {
		_, _ = fmt.Fprintf(os.Stderr, "usage: storefront %s %s\n", args[0], command.usage)
		return 2
	}
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, describeError(err))
		return 1
	}

	return 0
}

func storefrontConfig(sessionConfig cmd.SessionConfig) (storefront.Config, error) {
	apiURL, err := cmd.DestinationURL(storefront.DestinationStorefrontAPI, defaultAPIURL)
	if err != nil {
		return storefront.Config{}, err
	}

	paths := storefronthttp.AuthPaths{}
	if paths.Login, err = env.ParseOptional[string]("STOREFRONT_LOGIN_PATH", storefronthttp.DefaultLoginPath); err != nil {
		return storefront.Config{}, err
	}
	if paths.Refresh, err = env.ParseOptional[string]("STOREFRONT_REFRESH_PATH", storefronthttp.DefaultRefreshPath); err != nil {
		return storefront.Config{}, err
	}
	if paths.Logout, err = env.ParseOptional[string]("STOREFRONT_LOGOUT_PATH", storefronthttp.DefaultLogoutPath); err != nil {
		return storefront.Config{}, err
	}

	return storefront.Config{
		APIURL:         apiURL,
		AuthPaths:      paths,
		SessionOptions: sessionConfig.Options(),
	}, nil
}

// openCookieJar keeps the refresh cookie between invocations, so a stored session can be recovered.
func openCookieJar(defaultPath string) (*cookiejar.Jar, error) {
	path, err := env.ParseOptional[string]("SESSION_COOKIE_FILE", defaultPath)
	if err != nil {
		return nil, err
	}

	err = os.MkdirAll(filepath.Dir(path), 0o700)
	if err != nil {
		return nil, fmt.Errorf("create cookie directory: %w", err)
	}

	jar, err := cookiejar.New(&cookiejar.Options{Filename: path})
	if err != nil {
		return nil, fmt.Errorf("open cookie jar %s: %w", path, err)
	}
	return jar, nil
}
