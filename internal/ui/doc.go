// Package ui renders command lifecycle events as human-readable console lines
// while the structured log keeps the full command details.
package ui
