// Package corpus builds lyrics corpus files from a lyrics catalog.
//
// # Builder
//
// The Builder coordinates the whole process:
//
//  1. Resolve the artist name to an ID
//  2. Page through the artist's song list
//  3. Fetch every song's lyrics, a few pages at a time
//  4. Write the corpus document
//
// # Basic Usage
//
//	builder := corpus.NewBuilder(settings, geniusClient, logger, func(event corpus.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	path, c, err := builder.Run(ctx, "Kendrick Lamar", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d songs written to %s\n", len(c.Songs), path)
//
// # Concurrency
//
// Song pages are fetched through an errgroup limited to
// settings.MaxConcurrentFetches. Results are stored by index, so the corpus
// always follows the order of the song list.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent,
// and GetProgress can be polled for fetched/failed/total song counts.
package corpus
