package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/fivetwenty-io/tagwalk-client/pkg/tagwalk"
	"github.com/spf13/cobra"
)

// GalleryResult is a gallery with the X-Total-Count of its content.
type GalleryResult struct {
	Gallery    *tagwalk.Gallery `json:"gallery"     yaml:"gallery"`
	TotalCount int              `json:"total_count" yaml:"total_count"`
}

// NewGalleriesCommand creates the galleries command group.
func NewGalleriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "galleries",
		Aliases: []string{"gallery"},
		Short:   "Browse editorial galleries",
	}

	cmd.AddCommand(newGalleriesGetCommand())

	return cmd
}

func newGalleriesGetCommand() *cobra.Command {
	var (
		from int
		size int
	)

	cmd := &cobra.Command{
		Use:   "get SLUG",
		Short: "Get a gallery",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug, err := requireSlug(args)
			if err != nil {
				return err
			}

			return withClient(cmd, func(ctx context.Context, client tagwalk.Client) error {
				gallery, total, err := client.Galleries().Get(ctx, slug, tagwalk.Query{"from": from, "size": size})
				if err != nil {
					return fmt.Errorf("failed to get gallery: %w", err)
				}

				if gallery == nil {
					return fmt.Errorf("gallery '%s': %w", slug, ErrNotFound)
				}

				return render(cmd, GalleryResult{Gallery: gallery, TotalCount: total}, func(w io.Writer) error {
					return galleryTable(w, gallery, total)
				})
			})
		},
	}

	cmd.Flags().IntVar(&from, "from", 0, "offset within the gallery")
	cmd.Flags().IntVar(&size, "size", 0, "number of items")

	return cmd
}

func galleryTable(w io.Writer, gallery *tagwalk.Gallery, total int) error {
	table := newTable(w, "Property", "Value")
	_ = table.Append("Slug", gallery.Slug)
	_ = table.Append("Title", orNA(gallery.Title))
	_ = table.Append("Medias", itoa(len(gallery.Medias)))
	_ = table.Append("Streetstyles", itoa(len(gallery.Streetstyles)))
	_ = table.Append("Files", itoa(len(gallery.Files)))
	_ = table.Append("Total", itoa(total))
	_ = table.Append("Created", formatDate(gallery.Document))

	return renderTable(table)
}
