// Package scouting serves the reconciled scouting data of a team over HTTP.
//
// Routes:
//
//	GET    /teams                          team folders and the default team
//	GET    /teams/:team/players            reconciled players (?scope=all, ?force=true)
//	GET    /teams/:team/players/:slug      one player
//	GET    /teams/:team/report             team report pdf
//	GET    /teams/:team/images/:file       cached player image
//	POST   /teams/:team/sync               sync pass (?force=true)
//	DELETE /teams/:team/cache              purge the team cache
//	GET    /teams/:team/status             cache and journal summary
//
// :team accepts a team name, its slug or "default". The first request for a
// team triggers one sync pass per process; later requests read the cache.
package scouting
