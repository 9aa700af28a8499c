// Package gallery implements the photo gallery controller: it keeps the
// photo list fetched from the photo API in memory, filters it for search,
// projects it into a render-ready Snapshot and drives upload, edit, delete,
// modal and notification interactions. Hosts implement Document to display
// snapshots; the HTML page and the terminal client are two such hosts.
package gallery
