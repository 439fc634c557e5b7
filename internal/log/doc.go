// Package log provides a sanitizing slog handler for designlint.
//
// Lint logs routinely end up in shared CI artifacts and bug reports, so the
// handler masks credential-looking attribute values (CI tokens, bearer
// headers picked up from the environment) and rewrites absolute paths under
// the working directory to relative form before records reach the
// underlying handler.
package log
