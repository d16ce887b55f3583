// Package playback owns the frame cursor for the active composition.
//
// Host applies audio metadata events (discarding those for superseded audio
// references), exposes play/pause/scrub transport operations, and produces a
// render descriptor for every tick or scrub. Compositions are swapped whole
// under the host's lock so readers never observe a partially updated value.
package playback
