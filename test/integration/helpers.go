//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/fivetwenty-io/tagwalk-client/pkg/tagwalk"
	"github.com/fivetwenty-io/tagwalk-client/pkg/twclient"
	"github.com/stretchr/testify/require"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	APIEndpoint  string
	ClientID     string
	ClientSecret string
	Token        string
	TagwalkPath  string
	Verbose      bool
}

// LoadTestConfig loads configuration from environment variables. Without
// TAGWALK_TEST_API the tests run against a fake API.
func LoadTestConfig(t *testing.T) *TestConfig {
	t.Helper()

	config := &TestConfig{
		APIEndpoint:  os.Getenv("TAGWALK_TEST_API"),
		ClientID:     os.Getenv("TAGWALK_TEST_CLIENT_ID"),
		ClientSecret: os.Getenv("TAGWALK_TEST_CLIENT_SECRET"),
		Token:        os.Getenv("TAGWALK_TEST_TOKEN"),
		TagwalkPath:  getTagwalkPath(),
		Verbose:      os.Getenv("TAGWALK_VERBOSE") == "true",
	}

	config.UseFakeAPIUnlessConfigured(t)

	return config
}

// getTagwalkPath determines the path to the tagwalk binary.
func getTagwalkPath() string {
	if path := os.Getenv("TAGWALK_BINARY_PATH"); path != "" {
		return path
	}

	for _, candidate := range []string{"../../tagwalk", "./tagwalk", "../tagwalk"} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "tagwalk"
}

// UseFakeAPIUnlessConfigured points the configuration at an in-process
// fake API when TAGWALK_TEST_API is not set.
func (config *TestConfig) UseFakeAPIUnlessConfigured(t *testing.T) {
	t.Helper()

	if config.APIEndpoint != "" {
		return
	}

	config.APIEndpoint = newFakeAPI(t).URL
	config.ClientID = fakeClientID
	config.ClientSecret = fakeClientSecret
	config.Token = ""
}

// SkipIfNoBinary skips the test when the CLI has not been built.
func (config *TestConfig) SkipIfNoBinary(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath(config.TagwalkPath); err != nil {
		t.Skipf("tagwalk binary not found at %s, skipping integration test", config.TagwalkPath)
	}
}

// NewClient builds a library client from the test configuration.
func (config *TestConfig) NewClient(t *testing.T) tagwalk.Client {
	t.Helper()

	client, err := twclient.New(context.Background(), &tagwalk.Config{
		APIEndpoint:  config.APIEndpoint,
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		AccessToken:  config.Token,
	})
	require.NoError(t, err)

	t.Cleanup(func() { _ = client.Close() })

	return client
}

// CommandRunner runs the tagwalk binary.
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner.
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config: config,
		t:      t,
	}
}

// Run executes a tagwalk command against the test API and returns its output.
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	args = append([]string{"--api", runner.config.APIEndpoint}, args...)

	cmd := exec.Command(runner.config.TagwalkPath, args...) // #nosec G204 -- test binary
	cmd.Env = append(os.Environ(),
		"TAGWALK_CLIENT_ID="+runner.config.ClientID,
		"TAGWALK_CLIENT_SECRET="+runner.config.ClientSecret,
		"TAGWALK_TOKEN="+runner.config.Token,
	)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.TagwalkPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// AssertJSONOutput verifies command output is valid JSON.
func AssertJSONOutput(t *testing.T, output string) {
	t.Helper()

	if !json.Valid([]byte(strings.TrimSpace(output))) {
		t.Errorf("Output is not JSON: %s", output)
	}
}
