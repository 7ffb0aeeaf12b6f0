// Package typeconv classifies native engine type strings into schema.DataType.
//
// Convert accepts anything a catalog can report: relational type names with
// length or precision suffixes ("varchar(255)", "decimal(10,2)",
// "timestamp without time zone"), CQL names ("map<text, int>") and Cassandra
// marshal classes ("org.apache.cassandra.db.marshal.UTF8Type"). It never fails;
// anything it does not recognize is schema.Unknown.
package typeconv
