package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/fivetwenty-io/tagwalk-client/pkg/tagwalk"
	"github.com/spf13/cobra"
)

// NewCitiesCommand creates the cities command group.
func NewCitiesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cities",
		Aliases: []string{"city"},
		Short:   "List fashion week cities",
		Long:    "List fashion week cities, optionally restricted to those with matching medias or streetstyles",
	}

	cmd.AddCommand(newCitiesListCommand())
	cmd.AddCommand(newCitiesFilterMediaCommand())
	cmd.AddCommand(newCitiesFilterStreetstyleCommand())

	return cmd
}

func newCitiesListCommand() *cobra.Command {
	params := &tagwalk.CityListParams{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cities",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCities(cmd, func(ctx context.Context, cities tagwalk.CitiesClient) ([]tagwalk.City, error) {
				return cities.List(ctx, params)
			})
		},
	}

	cmd.Flags().IntVar(&params.From, "from", 0, "offset of the first city")
	cmd.Flags().IntVar(&params.Size, "size", 0, "number of cities (default 100)")
	cmd.Flags().StringVar(&params.Sort, "sort", "", "sort order (default name:asc)")
	cmd.Flags().StringVar(&params.Status, "status", "", "document status (default enabled)")

	return cmd
}

func newCitiesFilterMediaCommand() *cobra.Command {
	params := &tagwalk.CityFilterParams{}

	cmd := &cobra.Command{
		Use:   "filter-media",
		Short: "List cities having medias that match the filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCities(cmd, func(ctx context.Context, cities tagwalk.CitiesClient) ([]tagwalk.City, error) {
				return cities.ListFilters(ctx, params)
			})
		},
	}

	cmd.Flags().StringVar(&params.Type, "type", "", "media type (woman, man, accessory, couture)")
	cmd.Flags().StringVar(&params.Season, "season", "", "season slug")
	cmd.Flags().StringVar(&params.Designer, "designer", "", "designer slug")
	cmd.Flags().StringVar(&params.Tags, "tags", "", "comma separated tag slugs")
	cmd.Flags().StringVar(&params.Models, "models", "", "comma separated model slugs")

	return cmd
}

func newCitiesFilterStreetstyleCommand() *cobra.Command {
	params := &tagwalk.CityStreetFilterParams{}

	cmd := &cobra.Command{
		Use:   "filter-streetstyle",
		Short: "List cities having streetstyles that match the filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCities(cmd, func(ctx context.Context, cities tagwalk.CitiesClient) ([]tagwalk.City, error) {
				return cities.ListFiltersStreet(ctx, params)
			})
		},
	}

	cmd.Flags().StringVar(&params.Season, "season", "", "season slug")
	cmd.Flags().StringVar(&params.Designers, "designers", "", "comma separated designer slugs")
	cmd.Flags().StringVar(&params.Tags, "tags", "", "comma separated tag slugs")

	return cmd
}

func runCities(cmd *cobra.Command, list func(ctx context.Context, cities tagwalk.CitiesClient) ([]tagwalk.City, error)) error {
	return withClient(cmd, func(ctx context.Context, client tagwalk.Client) error {
		cities, err := list(ctx, client.Cities())
		if err != nil {
			return fmt.Errorf("failed to list cities: %w", err)
		}

		return render(cmd, cities, func(w io.Writer) error {
			if len(cities) == 0 {
				_, _ = io.WriteString(w, "No cities found\n")

				return nil
			}

			table := newTable(w, "Slug", "Name", "Position")
			for _, city := range cities {
				_ = table.Append(city.Slug, orNA(city.Name), itoa(city.Position))
			}

			return renderTable(table)
		})
	})
}
