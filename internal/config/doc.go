// Package config reads and writes repository configuration files.
//
// A configuration file is a section/key/value text document in the format
// git uses for .git/config:
//
//	[core]
//	repositoryformatversion = 0
//	filemode = false
//	bare = false
//
// Parsing and serialization are delegated to gopkg.in/ini.v1. Keys are case
// insensitive and stored lower-cased; section names are kept as written.
// Subsections follow the git convention, so "remote.origin.url" addresses the
// key url of section `remote "origin"` (see [SplitName]).
package config
