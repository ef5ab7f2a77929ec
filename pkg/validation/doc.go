// Package validation evaluates declarative field rules against form state.
//
// Rules are a closed set of variants (Required, File, Radio, Custom) plus
// Unknown for kinds this package does not recognise, which never fail.
// Malformed rule input is read permissively: Validate and Decode treat a
// value that is not a rule sequence as an empty list rather than reporting a
// configuration error.
package validation
