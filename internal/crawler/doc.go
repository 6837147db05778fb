// Package crawler implements the concurrent crawl engine: depth-bounded
// same-origin traversal with a global fetch concurrency cap, robots.txt
// enforcement, hashed URL deduplication, and cooperative cancellation.
//
// The Spider is the scheduler. Each page is one task: acquire a fetch
// permit, fetch, parse, feed the extractor, discover links, and spawn a
// child task per new link one level deeper. Failed fetches end their branch
// silently; the crawl as a whole only finishes when every spawned task has
// drained.
package crawler
