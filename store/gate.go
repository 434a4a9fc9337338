// Package store holds the client-side state containers: session, cart
// and catalog. Each container keeps the last server snapshot and replaces
// it wholesale; nothing here merges, patches or recomputes server values.
//
// The containers are safe for concurrent use and order competing
// wholesale replaces with sequence tokens: a response is applied only if
// no response from a later request has been applied already, so a slow
// stale reply can never overwrite a newer snapshot.
package store

// gate orders wholesale replaces for one snapshot slot. Callers take a
// token with begin before issuing a request and present it with the
// response; admit rejects tokens older than the newest one applied.
// Must be used under the owning container's lock.
type gate struct {
	issued  uint64
	applied uint64
}

// begin issues the next sequence token.
func (g *gate) begin() uint64 {
	g.issued++
	return g.issued
}

// admit reports whether a response carrying seq may be applied, and
// records it as the newest applied write when it may.
func (g *gate) admit(seq uint64) bool {
	if seq <= g.applied {
		return false
	}
	g.applied = seq
	return true
}

// seal discards every token issued so far; in-flight responses that
// present them will be rejected.
func (g *gate) seal() {
	g.applied = g.issued
}
