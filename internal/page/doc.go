// Package page audits routes of the running local dev server.
//
// The auditor fetches each configured route, parses the rendered HTML, and
// checks the marketing shell contract: a <nav> and a <footer> on every
// page, the required copy strings on the homepage, and no inline style
// attributes leaking into rendered output. Results are expressed as
// findings so report writers and exit-code handling stay uniform with the
// static validator.
package page
