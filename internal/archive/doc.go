// Package archive keeps a history of analyze runs in SQLite.
//
// Each recorded run stores aggregate numbers only: how many segments ended
// in each consensus status and how often each issue tag appeared or
// dominated. Per-segment results are not persisted. The history supports
// comparing two runs, for example before and after a prompt change in the
// segmentation pipeline.
//
// Writers hold an exclusive file lock next to the database so concurrent
// runs cannot interleave their inserts.
package archive
