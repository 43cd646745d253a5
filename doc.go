// Package replicast broadcasts change messages from any number of writers to
// any number of readers, each of which keeps its own local replica.
//
// A Writer owns a bounded bus.Channel. Readers are minted with AddReader and
// pair one cursor into the channel with a caller supplied state value. The
// state only changes when the reader is told to synchronize, so every
// accessor says which kind of read it is:
//
//	w, _ := replicast.NewWriter[Change](10)
//	r := replicast.AddReader(w, &List{})
//	w.Publish(Push(1))
//	r.PeekStale() // still empty
//	r.PeekFresh() // [1]
//
// Readers must be consumed with IntoStale, IntoFresh or Close when no longer
// needed. A reader that is neither drained nor closed keeps the buffer full
// and Publish waits for it. Abandoned readers are closed by the garbage
// collector eventually, but that must not be relied on for liveness.
package replicast
