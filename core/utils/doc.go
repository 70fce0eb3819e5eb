// Package utils provides small conversion helpers shared by the HTTP
// handlers and CLI commands, e.g. reading ?limit and ?fix query values.
package utils
