// Package loader reads enriched segment files and reviewer validation files
// from directories into in-memory stores.
//
// Every *.json file in a directory is decoded in name order. Files that cannot
// be read and entries that cannot be decoded are logged as warnings and
// counted in Stats; the batch continues with whatever decoded cleanly. A
// missing directory is returned as an error because there is nothing to
// analyze.
package loader
