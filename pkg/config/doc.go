// Package config loads, merges and persists nimata's configuration.
//
// The effective configuration is a cascade of three sources, each deep
// merged over the previous one: the built-in defaults, the global file
// at ~/.nimata/config.yaml and the project file at <root>/.nimatarc.
// NIMATA_-prefixed environment variables are applied last. Mappings
// merge key by key; lists and scalars are replaced wholesale by the
// overriding side.
//
// Files pass a defensive validation pipeline before their content is
// considered: a 1 MiB size cap, rejection of YAML anchors and aliases,
// rejection of suspicious embedded patterns, a nesting-depth limit and
// a traversal-marker screen over every string value. Any violation
// fails the whole load; there is no partial acceptance of a file.
//
// Repository owns a single-slot cache keyed by the project root, so
// repeated loads for one project are free. Save writes the project
// file and refreshes the cache in place.
package config
