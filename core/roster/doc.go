// Package roster loads the player spreadsheet.
//
// The sheet (first worksheet of an .xlsx, or a ; / , separated .csv) must have a
// JUGADOR column. EQUIPO, DORSAL, PUNTOS, MINUTOS JUGADOS, PJ and IMAGEN are read
// when present; POSICION, ALTURA and EDAD are optional fields of Record. Headers are
// compared after trimming, uppercasing and folding accents, so "Posición" resolves to
// POSICION.
//
// Load never returns a nil table. A missing file yields Empty and ErrNotFound, and
// callers fall back to the built-in roster (see Fallback).
package roster
