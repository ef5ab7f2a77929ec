// Package echo is a reference implementation of the demo endpoints that the
// submit package talks to. Each endpoint binds input_string, input_number and
// gender from its transport and answers with the data and a method tag
// naming that transport.
package echo
