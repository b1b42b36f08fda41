/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of object.
* Objects are protobuf messages, validated before they are written.
* Do not use so much reflection magic. Better do stuff compile-time static,
  even if it is a bit of boilerplate.
*/
package orm
