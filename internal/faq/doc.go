// Package faq answers guest questions from a hotel knowledge document.
//
// An Engine owns the current snapshot: the built index, the room router and
// load metadata. Queries read the snapshot through an atomic pointer and
// never block each other. Loading a new document builds a complete new
// snapshot off to the side and swaps it in; queries already running finish
// on the old one, which is closed afterwards.
//
// # Answering
//
//	eng := faq.NewEngine(faq.Options{Capabilities: caps, Logger: logger})
//	if err := eng.Load(ctx, "data/hotel.json"); err != nil {
//	    return err
//	}
//
//	res, err := eng.Answer(ctx, "what time is check in?", 0.6, 3)
//
// Answer runs, in order:
//
//  1. empty query or empty knowledge base: not found, score 0
//  2. domain rules: authoritative, score 1.0, threshold ignored
//  3. ranking: found when the best score reaches the threshold,
//     otherwise up to topK distinct near-miss suggestions
//
// Querying before any document was loaded fails with
// types.ErrIndexNotBuilt, which is distinct from "no match".
//
// With the dense backend a query embeds its text, which may call a remote
// provider. The other backends do no I/O while answering.
//
// # Reloading
//
// Reload rebuilds from the last loaded path. Watch does the same whenever
// the file changes on disk. Only one rebuild runs at a time; a concurrent
// attempt fails with ErrReloadInProgress. A failed rebuild leaves the
// current snapshot in place.
package faq
