//go:build integration

// Package tests starts the docker containers the integration tests of the catalog run against.
package tests

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

var (
	ErrDockerFailure       = errors.New("docker failure")
	ErrMissingInstanceName = errors.New("missing docker instance name")
)

// RetryFunc is the function you use to connect to the docker container.
// Return a func that will be used by the dockertest.Pool for the actual connection,
// it will be called multiple times in attempts to connect to the container, while that's still starting up.
type RetryFunc func(resource *dockertest.Resource) func() error

// GetDockerContainerInstance returns the cleanup function of a running container.
// Subsequent calls with the same runOptions.Name share the container,
// it is only removed after each caller called the cleanup function.
func GetDockerContainerInstance(runOptions *dockertest.RunOptions, retryFunc RetryFunc) (func() error, error) {
	if runOptions == nil || runOptions.Name == "" {
		return nil, ErrMissingInstanceName
	}

	name := "/" + runOptions.Name

	mu.Lock()
	instance, ok := containers[name]
	if ok {
		instance.running++
	}
	mu.Unlock()

	if ok {
		return instance.cleanup, nil
	}

	return StartDockerContainer(runOptions, retryFunc)
}

type containerInstance struct {
	cleanup func() error
	running int
}

//nolint:gochecknoglobals // containers are shared, so multiple tests can use the same one.
var (
	containers = map[string]*containerInstance{}
	mu         = sync.Mutex{}
)

const dockerTimeout = 120 * time.Second

// StartDockerContainer connects to the local docker service and starts a container for integration testing.
// Configure the container to start by setting the dockertest.RunOptions, the most important ones:
// - Repository:	is the dockerhub repo to pull, e.g. "postgres"
// - Tag:			is the tag to pull, e.g. 16
// - Env:			are the env variables to set for the container.
func StartDockerContainer(runOptions *dockertest.RunOptions, retryFunc RetryFunc) (func() error, error) {
	if runOptions == nil {
		return nil, fmt.Errorf("%w: invalid run options", ErrDockerFailure)
	}

	if retryFunc == nil {
		return nil, fmt.Errorf("%w: invalid retry func", ErrDockerFailure)
	}

	pool, err := dockertest.NewPool("") // uses a sensible default on windows (tcp/http) and linux/osx (socket)
	if err != nil {
		return nil, fmt.Errorf("%w: could not create new pool: %v", ErrDockerFailure, err)
	}

	err = pool.Client.Ping()
	if err != nil {
		return nil, fmt.Errorf("%w: could not connect to docker: %v", ErrDockerFailure, err)
	}

	resource, err := pool.RunWithOptions(
		runOptions,
		func(config *docker.HostConfig) {
			config.AutoRemove = true
			config.RestartPolicy = docker.RestartPolicy{Name: "no", MaximumRetryCount: 0}
		})
	if err != nil {
		return nil, fmt.Errorf("%w: could not start resource: %v", ErrDockerFailure, err)
	}

	_ = resource.Expire(uint(dockerTimeout.Seconds())) // hard kill, in case the cleanup is never called

	pool.MaxWait = dockerTimeout
	if err := pool.Retry(retryFunc(resource)); err != nil {
		_ = pool.Purge(resource)
		return nil, fmt.Errorf("%w: could not connect to container: %v", ErrDockerFailure, err)
	}

	cleanup := cleanupFunc(pool, resource)

	mu.Lock()
	defer mu.Unlock()

	containers[resource.Container.Name] = &containerInstance{
		cleanup: cleanup,
		running: 1,
	}

	return cleanup, nil
}

func cleanupFunc(pool *dockertest.Pool, resource *dockertest.Resource) func() error {
	return func() error {
		mu.Lock()
		defer mu.Unlock()

		instance := containers[resource.Container.Name]

		instance.running--
		if instance.running > 0 {
			return nil // other tests still use the container
		}

		delete(containers, resource.Container.Name)

		if err := pool.Purge(resource); err != nil {
			return fmt.Errorf("%w: could not purge resource: %v", ErrDockerFailure, err)
		}

		return nil
	}
}
