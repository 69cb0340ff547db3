// Package datadex provides an embeddable Go client for the datadex dataset
// recommendation engine, backed by Valkey or Redis with search modules.
//
// The client connects directly to the store and runs the full recommendation
// pipeline in-process:
//
//	client, _ := datadex.New(ctx,
//	    datadex.WithValkey("localhost:6379", ""),
//	    datadex.WithEmbedder(myEmbedder),
//	)
//	defer client.Close()
//
//	_ = client.EnsureIndex(ctx)
//	recs, _ := client.Recommend(ctx, "service error rates and latency",
//	    datadex.WithLimit(5),
//	)
//
// Without an embedder the engine still answers using name-based retrieval and
// a neutral semantic signal.
package datadex
