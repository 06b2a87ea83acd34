// Package assets loads the HTML templates behind components and the
// standalone preview page.
//
// Templates are looked up by name in two trees of the same shape:
//
//	components/<name>.html
//	pages/<name>.html
//
// The built-in tree is embedded in the binary. A template directory on disk
// may overlay it: AssetResolver asks the directory first and falls back to
// the built-in set only when the directory lacks the template, so a course
// can restyle one component and keep the rest.
//
// Names are restricted to letters, digits, hyphens and underscores, and disk
// reads are confined to the template directory with os.Root.
package assets
