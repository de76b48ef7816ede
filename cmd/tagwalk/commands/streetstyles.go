package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/fivetwenty-io/tagwalk-client/pkg/tagwalk"
	"github.com/spf13/cobra"
)

// NewStreetstylesCommand creates the streetstyles command group.
func NewStreetstylesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "streetstyles",
		Aliases: []string{"streetstyle", "street"},
		Short:   "Browse street photographs",
	}

	cmd.AddCommand(newStreetstylesGetCommand())
	cmd.AddCommand(newStreetstylesListCommand())

	return cmd
}

func newStreetstylesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get SLUG",
		Short: "Get a streetstyle by slug",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug, err := requireSlug(args)
			if err != nil {
				return err
			}

			return withClient(cmd, func(ctx context.Context, client tagwalk.Client) error {
				streetstyle, err := client.Streetstyles().Get(ctx, slug)
				if err != nil {
					return fmt.Errorf("failed to get streetstyle: %w", err)
				}

				if streetstyle == nil {
					return fmt.Errorf("streetstyle '%s': %w", slug, ErrNotFound)
				}

				return render(cmd, streetstyle, func(w io.Writer) error {
					table := newTable(w, "Property", "Value")
					_ = table.Append("Slug", streetstyle.Slug)
					_ = table.Append("Text", orNA(streetstyle.Text))
					_ = table.Append("City", slugOf(streetstyle.City))
					_ = table.Append("Season", slugOf(streetstyle.Season))
					_ = table.Append("Designers", slugs(streetstyle.Designers))
					_ = table.Append("Tags", slugs(streetstyle.Tags))
					_ = table.Append("Affiliations", slugs(streetstyle.Affiliations))
					_ = table.Append("Files", itoa(len(streetstyle.Files)))

					return renderTable(table)
				})
			})
		},
	}
}

func newStreetstylesListCommand() *cobra.Command {
	var (
		filters []string
		params  tagwalk.ListParams
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List streetstyles",
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := parseFilters(filters)
			if err != nil {
				return err
			}

			params.Filters = query

			return withClient(cmd, func(ctx context.Context, client tagwalk.Client) error {
				page, err := client.Streetstyles().List(ctx, &params)
				if err != nil {
					return fmt.Errorf("failed to list streetstyles: %w", err)
				}

				return render(cmd, page, func(w io.Writer) error {
					if len(page.Items) == 0 {
						_, _ = io.WriteString(w, "No streetstyles found\n")

						return nil
					}

					table := newTable(w, "Slug", "City", "Season", "Designers")
					for _, streetstyle := range page.Items {
						_ = table.Append(streetstyle.Slug, slugOf(streetstyle.City), slugOf(streetstyle.Season), slugs(streetstyle.Designers))
					}

					err := renderTable(table)
					if err != nil {
						return err
					}

					if page.TotalCount > len(page.Items) {
						_, _ = fmt.Fprintf(w, "\nShowing %d of %d. Use --from to page.\n", len(page.Items), page.TotalCount)
					}

					return nil
				})
			})
		},
	}

	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "filter as key=value (repeatable)")
	cmd.Flags().IntVar(&params.From, "from", 0, "offset of the first streetstyle")
	cmd.Flags().IntVar(&params.Size, "size", 0, "number of streetstyles (default 24)")

	return cmd
}
