// Package main hosts the storyshort CLI entrypoint and command graph.
//
// The Cobra-based command tree turns a script and a narration track into a
// composition, then inspects it, writes its subtitles, renders it with
// ffmpeg, or serves it through the preview API. Configuration resolution,
// .env loading, and logger setup live in the shared command context so
// subcommands only deal with their own flags.
//
// Keep this package lean: add behaviour to the internal packages first and
// surface it here through flags or a new subcommand.
package main
