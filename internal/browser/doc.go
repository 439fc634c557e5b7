// Package browser captures screenshots of local dev server routes through
// headless Chromium. It drives the browser with go-rod and writes one PNG
// per route for manual design sign-off.
package browser
