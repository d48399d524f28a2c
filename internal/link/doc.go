// Package link builds and parses share and room links. Secrets live
// exclusively in the URL fragment, which browsers never transmit, so a link
// can travel through chat or email while the server only ever sees the
// non-secret id.
package link
