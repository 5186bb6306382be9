// Package main provides the entry point for the autowriter TUI.
//
// autowriter shows a library of generated content and demonstrates the
// notification and dialog layer: toasts that dismiss themselves, and
// confirm, alert and prompt dialogs that block until answered.
//
// Usage:
//
//	autowriter [--lang my] [--flash flash.json]
package main

func main() {
	Execute()
}
