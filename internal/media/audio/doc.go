// Package audio resolves narration durations and delivers them as tagged
// metadata events.
//
// Sources answer "how long is this audio reference": FFprobeSource asks
// ffprobe (local paths and URLs), DecoderSource decodes local mp3/wav/flac
// files with beep, and ChainSource tries several in order. Watch runs a
// lookup in the background and emits exactly one MetadataEvent carrying the
// audio reference it belongs to, so a consumer that has moved on to another
// reference can recognise and drop it.
package audio
