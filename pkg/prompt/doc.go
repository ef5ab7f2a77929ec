// Package prompt is the terminal front-end of the demo page. A Driver asks
// questions (survey backs the real one) and a Filler turns the answers into
// form.Document state.
package prompt
