// Package gxxini is the stable public surface of the gxxtools
// configuration engine. External programs that want to read
// gxxconfig.ini-style files with ${keyword} / ${SECTION:keyword}
// substitution should depend on this package rather than on internals.
package gxxini
