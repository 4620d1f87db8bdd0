// Package audit looks for personal data that survived anonymization.
//
// Audits never modify anything. They run after the anonymized document is
// produced and turn what they notice into model.Finding values:
//
//   - LeakAuditor parses the output HTML and reports original names,
//     member IDs, the old team name, or the old organization segment
//     found in text, attributes, comments, or scripts.
//   - CheckMapping reports fake identities handed to more than one real
//     person and identity pool overflow.
//   - ExifAuditor reads the EXIF metadata of images in the copied asset
//     directory and reports GPS, author, serial, and camera tags.
//
// The transformation itself stays string-based; the HTML parser is used
// here only to locate where a leak sits in the document.
package audit
