// Package tempfile manages the local scratch files written by multipart uploads.
//
// DiskCleaner removes the files of a single request once it finishes, whatever
// the outcome. Sweep and Sweeper catch files left behind by crashed processes.
package tempfile
