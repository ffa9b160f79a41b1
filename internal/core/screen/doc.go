// Package screen holds the state behind each page of the panel: the fetched
// collection, the active filter, the form being edited and the notice produced
// by the last mutation. Screens talk to the remote API only through the ports
// interfaces, so they run unchanged against stubs in tests.
package screen
