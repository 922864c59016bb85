// Package logging builds the zerolog loggers used across svccat.
//
// Loggers are carried in context.Context (zerolog's WithContext/Ctx) together with a
// ULID trace ID, so every log line from one CLI invocation or one fetch cycle can be
// correlated. While the interactive TUI owns the terminal, logs go to a file.
package logging
