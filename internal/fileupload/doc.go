// Package fileupload seals attached binary files for upload. Each file is
// compressed and encrypted independently under a subkey derived from the
// scene secret, so one oversized or failing file never blocks the rest.
package fileupload
