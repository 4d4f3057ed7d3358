// Package abx decodes Android Binary XML.
//
// Since Android 12 the settings stores under /data/system are written in a
// compact binary encoding ("ABX") instead of text. A document starts with
// the magic bytes "ABX\0" followed by a stream of tokens. Each token is one
// byte: the low nibble is the XML event (start tag, text, attribute, ...)
// and the high nibble is the type of the payload that follows. Strings are
// length-prefixed modified UTF-8 and tag and attribute names go through a
// per-document interning table.
//
// ToText converts a whole document to textual XML so it can be handed to
// settings.Parse:
//
//	if abx.IsBinary(data) {
//	    text, err := abx.ToText(data)
//	}
package abx
