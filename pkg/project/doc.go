// Package project reads the files that describe a Dart package: its
// pubspec.yaml manifest, its Dart sources, and an optional pubgraph.toml
// holding crawl defaults.
//
// The manifest supplies the package name that "package:" imports are matched
// against. A missing or malformed manifest is fatal, since without the name no
// cross-file import can be resolved.
package project
