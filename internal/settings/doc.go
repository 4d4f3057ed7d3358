// Package settings models the Android system settings stores and parses
// their XML into groups of name/value pairs keyed by owning package.
//
// # Settings Files
//
// Android keeps four settings stores per user, one per Kind:
//
//	/data/system/users/0/settings_config.xml
//	/data/system/users/0/settings_global.xml
//	/data/system/users/0/settings_secure.xml
//	/data/system/users/0/settings_system.xml
//
// PathFor maps a Kind to its file. Obtaining the bytes is the job of a
// source (see the source package); this package only deals with text.
//
// # Parsing
//
// Parse streams the document and collects every <setting> element:
//
//	groups, err := settings.Parse(text)
//	if errors.Is(err, kerrors.ErrMalformedInput) {
//	    // the document could not be tokenized
//	}
//
// Groups are sorted by package and the settings inside each group by name,
// both with byte-wise comparison. Settings without a package attribute are
// grouped under the empty string. A missing value attribute is kept as an
// absent value, rendered as "null".
package settings
