// Package sse reads a Server-Sent-Events body line by line and classifies
// each line.
//
// Parsing is deliberately forgiving: anything that is not a well-formed
// "data:" line carrying JSON is skipped. The only line that stops a
// stream is a JSON data frame whose "event" field is "error".
package sse
