// Package clean turns Go host source into tt matcher text.
//
// Everything except pattern annotations and the parentheses of __match calls
// is blanked to spaces. Line terminators are kept in place and the output has
// exactly as many bytes as the input, so a span into the cleaned text is also
// a span into the original file.
//
//	x := __match[int](e, /*| App(l, r) */ f)
//
// becomes
//
//	       match     (    | App(l, r)      )
package clean
