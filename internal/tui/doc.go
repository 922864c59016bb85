// Package tui renders the service catalog in the terminal with Bubble Tea.
//
// HomeModel hosts a running controller: edits to the search box and page keys
// write the controller's input cells, and published controller state arrives
// as StateMsg through a Bridge.
package tui
