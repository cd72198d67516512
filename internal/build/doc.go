// Package build runs a conversion of an unpacked ZIM archive into a static site.
//
// The Runner owns the ordering of the stages. Articles are moved into the output
// folder and extra assets are copied first. The main page is then merged from the
// untouched snapshot page, every remaining article is rewritten, and finally the root
// index redirect is written. All execution paths (CLI commands, tests) go through Runner.
package build
