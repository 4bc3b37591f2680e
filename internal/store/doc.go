// Package store provides the backing stores for the movie collection. Each
// one keeps the collection as a single JSON document: a file on disk, a row
// in a SQL table (postgres or sqlite) or a redis key.
package store

// the document every store starts from
var emptyDocument = []byte("[]\n")
