// Package utils contains helpers used by the vault runtime around every
// operation: savepoints, panic recovery and logging.
package utils
