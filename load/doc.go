// Package load turns external schema descriptions into a
// [schema.ParsedSchema]: DMMF JSON documents emitted by schema tooling,
// or live databases inspected through atlas. It also provides a
// content-addressed cache for parsed schemas.
package load
