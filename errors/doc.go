/*
Package errors implements the error kinds used across vault.

Every failure returned by an extension wraps one of the root errors
declared here. Root errors carry a unique numeric code so that a host
runtime can report the failure kind to clients without leaking the
wrapped description.

  err := errors.Wrapf(errors.ErrNotASigner, "caller %s", caller)
  if errors.ErrNotASigner.Is(err) {
      ...
  }
*/
package errors
