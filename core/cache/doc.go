// Package cache materializes remote assets on the local disk.
//
// Layout:
//
//	<dir>/
//	  <team_slug>/
//	    <team_slug>.pdf
//	    jugadores/
//	      <lowercase_filename>.png
//
// File names are always lowercase. A category directory holding any other name is
// considered corrupted and is purged wholesale the next time it is listed.
// Validity is the file modification time within the expiry window.
package cache
