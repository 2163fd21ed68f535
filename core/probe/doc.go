// Package probe validates external player photo URLs before they are shown.
//
// A URL is accepted when a ranged GET (first kilobyte) answers 200 or 206 with an
// image content type and the body starts with a PNG, JPEG or WEBP signature.
// Verdicts are kept in an expirable LRU keyed by URL.
package probe
