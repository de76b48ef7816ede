package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fivetwenty-io/tagwalk-client/internal/constants"
	"github.com/fivetwenty-io/tagwalk-client/pkg/tagwalk"
	"github.com/spf13/cobra"
)

// ErrNotFound reports an entity the API does not have.
var ErrNotFound = errors.New("not found")

// NewMediasCommand creates the medias command group.
func NewMediasCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "medias",
		Aliases: []string{"media", "looks"},
		Short:   "Browse runway looks",
	}

	cmd.AddCommand(newMediasGetCommand())
	cmd.AddCommand(newMediasFindCommand())
	cmd.AddCommand(newMediasListCommand())
	cmd.AddCommand(newMediasRelatedCommand())
	cmd.AddCommand(newMediasByModelCommand())

	return cmd
}

func newMediasGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get SLUG",
		Short: "Get a look by slug",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug, err := requireSlug(args)
			if err != nil {
				return err
			}

			return withClient(cmd, func(ctx context.Context, client tagwalk.Client) error {
				media, err := client.Medias().Get(ctx, slug)
				if err != nil {
					return fmt.Errorf("failed to get media: %w", err)
				}

				return renderMedia(cmd, slug, media)
			})
		},
	}
}

func newMediasFindCommand() *cobra.Command {
	var mediaType, season, designer, look string

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find a look by type, season, designer and look number",
		RunE: func(cmd *cobra.Command, args []string) error {
			if mediaType == "" || season == "" || designer == "" || look == "" {
				return constants.ErrLookRequired
			}

			return withClient(cmd, func(ctx context.Context, client tagwalk.Client) error {
				media, err := client.Medias().FindByTypeSeasonDesignerLook(ctx, mediaType, season, designer, look)
				if err != nil {
					return fmt.Errorf("failed to find media: %w", err)
				}

				return renderMedia(cmd, designer+"/"+season+"/"+look, media)
			})
		},
	}

	cmd.Flags().StringVar(&mediaType, "type", "", "media type (woman, man, accessory, couture)")
	cmd.Flags().StringVar(&season, "season", "", "season slug")
	cmd.Flags().StringVar(&designer, "designer", "", "designer slug")
	cmd.Flags().StringVar(&look, "look", "", "look number")

	return cmd
}

func newMediasListCommand() *cobra.Command {
	var (
		filters []string
		params  tagwalk.ListParams
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List looks",
		Long:  "List looks, filtered with repeated --filter key=value flags (designer, season, city, type, tags...)",
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := parseFilters(filters)
			if err != nil {
				return err
			}

			params.Filters = query

			return withClient(cmd, func(ctx context.Context, client tagwalk.Client) error {
				page, err := client.Medias().List(ctx, &params)
				if err != nil {
					return fmt.Errorf("failed to list medias: %w", err)
				}

				return render(cmd, page, func(w io.Writer) error {
					return mediasTable(w, page.Items, page.TotalCount)
				})
			})
		},
	}

	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "filter as key=value (repeatable)")
	cmd.Flags().IntVar(&params.From, "from", 0, "offset of the first look")
	cmd.Flags().IntVar(&params.Size, "size", 0, "number of looks (default 24)")
	cmd.Flags().StringVar(&params.Status, "status", "", "document status (default enabled)")

	return cmd
}

func newMediasRelatedCommand() *cobra.Command {
	params := &tagwalk.RelatedParams{}

	cmd := &cobra.Command{
		Use:   "related",
		Short: "List looks related to a type, season, designer, or city",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client tagwalk.Client) error {
				medias, err := client.Medias().ListRelated(ctx, params)
				if err != nil {
					return fmt.Errorf("failed to list related medias: %w", err)
				}

				return render(cmd, medias, func(w io.Writer) error {
					return mediasTable(w, medias, len(medias))
				})
			})
		},
	}

	cmd.Flags().StringVar(&params.Type, "type", "", "media type")
	cmd.Flags().StringVar(&params.Season, "season", "", "season slug")
	cmd.Flags().StringVar(&params.Designer, "designer", "", "designer slug")
	cmd.Flags().StringVar(&params.City, "city", "", "city slug")

	return cmd
}

func newMediasByModelCommand() *cobra.Command {
	var filters []string

	cmd := &cobra.Command{
		Use:   "by-model SLUG",
		Short: "List the looks of a model, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug, err := requireSlug(args)
			if err != nil {
				return err
			}

			query, err := parseFilters(filters)
			if err != nil {
				return err
			}

			return withClient(cmd, func(ctx context.Context, client tagwalk.Client) error {
				result, err := client.Medias().ListByModel(ctx, slug, query)
				if err != nil {
					return fmt.Errorf("failed to list model medias: %w", err)
				}

				return render(cmd, result, func(w io.Writer) error {
					err := mediasTable(w, result.Medias, result.TotalCount)
					if err != nil {
						return err
					}

					_, _ = fmt.Fprintf(w, "Streetstyles: %d  News: %d  Talks: %d\n",
						result.StreetstylesCount, result.NewsCount, result.TalksCount)

					return nil
				})
			})
		},
	}

	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "filter as key=value (repeatable), e.g. size=48")

	return cmd
}

func renderMedia(cmd *cobra.Command, name string, media *tagwalk.Media) error {
	if media == nil {
		return fmt.Errorf("media '%s': %w", name, ErrNotFound)
	}

	return render(cmd, media, func(w io.Writer) error {
		table := newTable(w, "Property", "Value")
		_ = table.Append("Slug", media.Slug)
		_ = table.Append("Name", orNA(media.Name))
		_ = table.Append("Type", orNA(media.Type))
		_ = table.Append("Look", itoa(media.Look))
		_ = table.Append("Designer", slugOf(media.Designer))
		_ = table.Append("Season", slugOf(media.Season))
		_ = table.Append("City", slugOf(media.City))
		_ = table.Append("Tags", slugs(media.Tags))
		_ = table.Append("Models", slugs(media.Individuals))
		_ = table.Append("Files", itoa(len(media.Files)))
		_ = table.Append("Created", formatDate(media.Document))

		return renderTable(table)
	})
}

func mediasTable(w io.Writer, medias []tagwalk.Media, total int) error {
	if len(medias) == 0 {
		_, _ = io.WriteString(w, "No medias found\n")

		return nil
	}

	table := newTable(w, "Slug", "Designer", "Season", "City", "Look")
	for _, media := range medias {
		_ = table.Append(media.Slug, slugOf(media.Designer), slugOf(media.Season), slugOf(media.City), itoa(media.Look))
	}

	err := renderTable(table)
	if err != nil {
		return err
	}

	if total > len(medias) {
		_, _ = fmt.Fprintf(w, "\nShowing %d of %d. Use --from to page.\n", len(medias), total)
	}

	return nil
}
