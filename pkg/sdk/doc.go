// Package helpboard is the Go API of the helpboard discovery engine.
//
// The engine filters listings (help posts, community items, helpers on the
// map) by free text, facets, account type and a geographic bound, and
// returns the matches in input order with self-excluding facet counts.
//
// # In-memory: search any slice of listings
//
//	res := helpboard.Discover(listings).
//	    Term("rice").
//	    Category(helpboard.Farming).
//	    Near(-18.88, 47.51).Km(25).
//	    Do()
//	fmt.Println(res.Total(), res.Counts().Get(helpboard.FacetUrgency, "high"))
//
// # Client: serve collections from a seed file or Valkey/Redis
//
//	client, _ := helpboard.New(ctx, helpboard.WithSeedFile("data/seed.jsonc"))
//	page, _ := client.Search(ctx, helpboard.Posts, helpboard.NewQuery(helpboard.QueryParams{
//	    Term: "rice",
//	}), helpboard.SearchOptions{Limit: 10})
//
//	client, _ = helpboard.New(ctx, helpboard.WithRedis("localhost:6379", ""))
//	_, _ = client.Listings(helpboard.Posts).Create(ctx, helpboard.ListingParams{...})
package helpboard
