// Package reconcile pairs discovered player images with roster rows.
//
// The direction is asset first: every image found in the players folder yields one
// Player, matched to at most one roster record or synthesized as a placeholder.
//
// # Matching
//
// For an asset key (file base name, uppercased) each unused record is scored:
//
//	SURNAME_GIVEN  exact full form      tier 3
//	SURNAME_G      single letter form   tier 2 (only when GIVEN is longer than one letter)
//	SURNAME_*      surname prefix       tier 1
//
// Ties inside a tier go to the record whose full name contains more of the asset
// key's tokens, then to the earlier row. The winner is claimed and can not back a
// second player.
//
// # Usage
//
//	players := reconcile.Reconcile(ctx, assets, table.RecordsForTeam(team), reconcile.Options{
//	    Team:   team,
//	    Images: prober,
//	})
package reconcile
