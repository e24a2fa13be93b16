// Package vmp is the client for the destination volunteer management
// platform.
//
// Every call is guarded by a bearer token obtained from Login. Calls are
// retried a bounded number of times with linearly increasing backoff;
// exhausting the retries on Login aborts the dispatch pass, while a batch
// upsert surfaces a partitioned result so that one rejected record never
// fails its batch mates.
package vmp
