// Package vaulttest provides helpers shared by the tests of all vault
// packages.
package vaulttest
