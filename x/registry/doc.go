/*
Package registry implements the module directory.

The directory maps a short symbolic name to the address of a module. It
is consulted when an account is initialized: only registered modules can
be installed on an account. Registration is restricted to the directory
admin declared in the "registry" configuration.
*/
package registry
