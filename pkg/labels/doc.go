// Package labels builds a pre-labelled failure-classification dataset
// from Maven build logs.
//
// Every "<commit>.log" file of a logs directory is cut down to the part
// starting at the first "[INFO] BUILD FAILURE" line. A few substring
// rules suggest a label for that excerpt, and the resulting [Entry] is
// written to a [Sink]: a JSON Lines file or a MongoDB collection.
//
// Logs of commits whose record has no usable license are left out of the
// dataset.
package labels
