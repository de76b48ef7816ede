package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/tagwalk-client/internal/constants"
	"github.com/fivetwenty-io/tagwalk-client/pkg/tagwalk"
	"github.com/fivetwenty-io/tagwalk-client/pkg/twclient"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// ErrInvalidFilter reports a --filter flag that is not key=value.
var ErrInvalidFilter = errors.New("invalid filter")

// Output formats.
const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"

	NotAvailable = "N/A"
)

// clientFactory builds the API client for a command. Tests replace it.
var clientFactory = newClient

func newClient(cmd *cobra.Command) (tagwalk.Client, error) {
	api := viper.GetString("api")
	if api == "" {
		return nil, constants.ErrNoAPIConfigured
	}

	logger := cliLogger(cmd.ErrOrStderr())

	config := &tagwalk.Config{
		APIEndpoint:  api,
		ClientID:     viper.GetString("client-id"),
		ClientSecret: viper.GetString("client-secret"),
		AccessToken:  viper.GetString("token"),
		Language:     viper.GetString("language"),
		Logger:       logger,
	}

	if viper.GetBool("verbose") {
		chain := tagwalk.NewInterceptorChain()
		chain.AddRequestInterceptor(tagwalk.LoggingInterceptor(logger))
		chain.AddResponseInterceptor(tagwalk.LoggingResponseInterceptor(logger))
		config.Interceptors = chain
	}

	// Listings read in this run are served from memory, and from disk
	// across runs.
	if dir := viper.GetString("cache-dir"); dir != "" {
		config.Cache = tagwalk.NewCacheBuilder().
			WithTieredConfig(constants.DefaultCacheSize, dir).
			Config()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := twclient.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}

// cliLogger writes warnings and errors to w, everything with --verbose.
func cliLogger(w io.Writer) tagwalk.Logger {
	level := slog.LevelWarn
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}

	return tagwalk.NewSlogLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// withClient runs fn with a client and closes it afterwards.
func withClient(cmd *cobra.Command, fn func(ctx context.Context, client tagwalk.Client) error) error {
	client, err := clientFactory(cmd)
	if err != nil {
		return err
	}

	defer func() { _ = client.Close() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return fn(ctx, client)
}

// outputFormat returns the requested format. Without an explicit choice,
// tables are only drawn on a terminal and JSON is written otherwise.
func outputFormat(w io.Writer) (string, error) {
	format := strings.ToLower(viper.GetString("output"))

	switch format {
	case OutputFormatJSON, OutputFormatYAML:
		return format, nil
	case OutputFormatTable, "":
		if !viper.IsSet("output") && !isTerminal(w) {
			return OutputFormatJSON, nil
		}

		return OutputFormatTable, nil
	default:
		return "", fmt.Errorf("%w: %s", constants.ErrUnknownOutput, format)
	}
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)

	return ok && term.IsTerminal(int(file.Fd()))
}

// render writes value as JSON or YAML, or calls table for the table format.
func render(cmd *cobra.Command, value any, table func(w io.Writer) error) error {
	w := cmd.OutOrStdout()

	format, err := outputFormat(w)
	if err != nil {
		return err
	}

	switch format {
	case OutputFormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		err = encoder.Encode(value)
		if err != nil {
			return fmt.Errorf("failed to encode as JSON: %w", err)
		}
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(w)

		err = encoder.Encode(value)
		if err != nil {
			return fmt.Errorf("failed to encode as YAML: %w", err)
		}

		return encoder.Close()
	default:
		return table(w)
	}

	return nil
}

func newTable(w io.Writer, header ...any) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.Header(header...)

	return table
}

func renderTable(table *tablewriter.Table) error {
	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func orNA(value string) string {
	if value == "" {
		return NotAvailable
	}

	return value
}

func slugOf[T interface{ GetSlug() string }](value *T) string {
	if value == nil {
		return NotAvailable
	}

	return orNA((*value).GetSlug())
}

func formatDate(document tagwalk.Document) string {
	if document.CreatedAt.IsZero() {
		return NotAvailable
	}

	return document.CreatedAt.Format("2006-01-02")
}

func slugs[T interface{ GetSlug() string }](items []T) string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.GetSlug())
	}

	if len(names) == 0 {
		return NotAvailable
	}

	return strings.Join(names, ", ")
}

// parseFilters turns repeated key=value flags into a Query.
func parseFilters(pairs []string) (tagwalk.Query, error) {
	query := tagwalk.Query{}

	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("%w: %q (expected key=value)", ErrInvalidFilter, pair)
		}

		query[key] = value
	}

	return query, nil
}

func requireSlug(args []string) (string, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return "", constants.ErrSlugRequired
	}

	return args[0], nil
}

func itoa(value int) string {
	return strconv.Itoa(value)
}
