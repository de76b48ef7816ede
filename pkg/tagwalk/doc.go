// Package tagwalk provides types, interfaces, and helpers for working with the
// Tagwalk fashion-content API.
//
// # Overview
//
// The tagwalk package defines the domain types (City, Season, Designer, Media,
// Streetstyle, Gallery, ...) and the interfaces for the resource clients
// (CitiesClient, GalleriesClient, MediasClient, StreetstylesClient). A concrete
// implementation is provided by the twclient package, which wires
// configuration, transport, authentication, and caching. Most consumers should
// import twclient to construct a client and then use the interfaces exposed
// here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/tagwalk-client/pkg/tagwalk"
//	  "github.com/fivetwenty-io/tagwalk-client/pkg/twclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := twclient.NewWithClientCredentials(ctx, "https://api.tag-walk.com", "id", "secret")
//	  if err != nil { log.Fatal(err) }
//
//	  cities, err := cli.Cities().List(ctx, &tagwalk.CityListParams{Language: "fr"})
//	  if err != nil { log.Fatal(err) }
//	  _ = cities
//	}
//
// # Queries and caching
//
// A Query is a flat map of filters. Empty values are dropped before the query
// is sent or hashed, so two queries carrying the same meaningful filters share
// one CacheKey whatever order they were built in. CachedQuery implements the
// read-through pattern on top of any Cache backend (memory, file, NATS KV).
//
// # Errors
//
// Lookups that hit a 404 return a nil entity or an empty list. Other
// unexpected statuses are logged and degraded to empty results. The one loud
// case is a 416 on a listing, returned as ErrOutOfRange.
package tagwalk
