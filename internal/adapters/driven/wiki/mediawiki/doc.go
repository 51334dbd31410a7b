// Package mediawiki implements the WikiClient port against the MediaWiki
// Action API.
//
// Requests go through go-mwclient, which handles tokens, cookies and the
// maxlag protocol. The adapter adds what the library lacks: a request
// rate limit, a per-call timeout, and mapping of library errors onto the
// domain error taxonomy.
package mediawiki
