// Package form models the user-facing field state a submission reads from: a
// Document of input Elements addressed by small jQuery-style selectors
// (`#id`, `input[name='x']`, `input[name='x']:checked`, bare names), and the
// Trigger that starts a submission attempt. Renderers and front-ends (the
// terminal prompt, tests, embedding applications) populate a Document; the
// validation and submit packages only read it.
package form
