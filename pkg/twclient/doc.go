// Package twclient provides the primary entry point for constructing a
// Tagwalk API client that implements the tagwalk.Client interface.
//
// It layers configuration, HTTP transport, authentication, and caching on top
// of the resource interfaces and types defined in the tagwalk package.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//	  "log/slog"
//
//	  "github.com/fivetwenty-io/tagwalk-client/pkg/tagwalk"
//	  "github.com/fivetwenty-io/tagwalk-client/pkg/twclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := twclient.New(ctx, &tagwalk.Config{
//	    APIEndpoint:  "api.tag-walk.com",
//	    ClientID:     "id",
//	    ClientSecret: "secret",
//	    Logger:       tagwalk.NewSlogLogger(slog.Default()),
//	    Cache:        tagwalk.NewCacheBuilder().WithType(tagwalk.CacheTypeFile).WithFileConfig("/var/cache/tagwalk").Config(),
//	  })
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Close()
//
//	  page, err := cli.Medias().List(ctx, &tagwalk.ListParams{
//	    Filters: tagwalk.Query{"designer": "chanel", "season": "fall-winter-2019"},
//	  })
//	  if err != nil { log.Fatal(err) }
//	  log.Printf("%d of %d looks", len(page.Items), page.TotalCount)
//	}
//
// Behavior notes
//   - A 404 yields a nil entity or an empty list, without logging, except
//     for Medias().ListRelated and Medias().ListByModel, which log it.
//   - A 416 on a listing returns tagwalk.ErrOutOfRange.
//   - Any other unexpected status is logged through Config.Logger and
//     yields an empty result.
//   - City listings are cached; set Config.CacheTTL or Config.Cache to tune.
package twclient
