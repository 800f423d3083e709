// Package collection implements types.Collection over database/sql.
//
// A Set binds a database handle, a SQL dialect, and the schemas of the
// standard collections. Each collection supports filter-by-equality reads,
// ordered reads, to-one and to-many joins, insert with server-assigned id and
// timestamps, partial update by key, and delete by key. Values cross the
// boundary as types.Record and are converted per column kind by the codec.
package collection
