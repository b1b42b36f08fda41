/*

Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps its configuration as a single protobuf message stored
under a key derived from the extension name. The configuration is loaded from
the genesis file and can later be changed by its owner.

*/
package gconf
