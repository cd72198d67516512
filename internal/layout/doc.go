// Package layout maps an unpacked ZIM archive onto the directories of the generated
// site and provides the thin file-tree operations the conversion pipeline consumes:
// resolving directories, moving the article folder, copying image assets, and
// enumerating article files lazily.
package layout
