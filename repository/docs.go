// Package repository offers generic repositories for entities of the catalog.
//
// The MemoryRepository and MemorySearchableRepository keep all entities in memory, in insertion order.
// They are the reference implementation of the Repository contract and are used to speed up unit testing.
// Sometimes it might be handy so persist some data, so it is possible to use a Store to do so.
// This is NOT intended for production use and only recommended for local demoing.
//
// The SQLRepository implements the same contract on a relational database,
// converting between entities and rows with a Mapper.
//
// Both can be embedded into a concrete repository, to extend it with methods of its own use case.
package repository
