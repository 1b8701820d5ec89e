// Package buffer provides the encoded text buffer that backs a Document.
//
// Content is stored in the document's own encoding, so every offset the
// buffer hands out is a byte offset in document coordinate space, exactly
// as a host editor reports it. Strings crossing the API are always Go
// (UTF-8) strings; the buffer encodes on the way in and decodes on the way
// out.
//
// The buffer package provides:
//
//   - Byte-offset text access (TextRange, Len)
//   - A line index over LF, CRLF and CR line breaks
//   - Encoding-aware length conversion (ByteCount, CharCount)
//   - Replace as the single write primitive
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("Hello, World!",
//	    buffer.WithEncoding(charmap.Windows1252))
//
//	end, _ := buf.Replace(7, 12, "Gophers")  // "Hello, Gophers!"
//	n := buf.ByteCount("é")                   // 1 in Windows-1252
//
// Thread Safety:
//
// All Buffer methods are safe for concurrent use. The expansion engine
// drives a buffer from a single goroutine, but read access from other
// goroutines (a CLI printing progress, a watcher) is allowed.
package buffer
