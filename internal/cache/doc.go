// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

/*
Package cache provides a bounded, thread-safe LRU cache with TTL expiration.

Serve mode answers every request from an immutable data set, so identical
requests always produce identical rankings. The API layer keeps recent
responses in an LRU keyed by the normalized request and skips the engine
on a hit.

# Behavior

  - O(1) Get and Add using a hashmap plus a doubly-linked list
  - The least recently used entry is evicted once capacity is exceeded
  - Entries expire lazily on Get after the TTL
  - Hit and miss counters for diagnostics

# Usage

	c := cache.NewLRU[*recommend.Response](1024, 5*time.Minute)
	if resp, ok := c.Get(key); ok {
	    return resp
	}
	c.Add(key, resp)
*/
package cache
