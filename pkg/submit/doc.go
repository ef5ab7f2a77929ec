// Package submit sends form data to an endpoint after validating it.
//
// A Submitter evaluates validation rules against a form.Document. When any
// rule fails the user sees one aggregated notification and no request is
// made. Otherwise the trigger is disabled, a "sending" notification is shown
// and the request runs in the background; its outcome is reported through a
// notification and an optional Callback, and the trigger is re-enabled once
// the request completes regardless of outcome.
//
// Requests are described by RequestSpec. GET requests never carry a body or
// content type, POST requests are encoded as JSON, url-encoded or
// multipart/form-data depending on the Payload.
package submit
