// Package preflight provides readiness checks for the binaries, directories,
// and stores the renderer depends on.
//
// These checks run in two contexts:
//   - "storyshort serve" calls RunAll at startup and logs failures as warnings
//     so the preview keeps working even when exports cannot.
//   - "storyshort status" prints every check, including the system binaries
//     reported by CheckSystemDeps.
package preflight
