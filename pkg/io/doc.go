// Package io reads and writes tree files.
//
// # Format
//
// A tree file maps tree names to trees. Each tree is a list whose first
// element is an attribute record for the node and whose remaining elements
// are the node's children in the same form:
//
//	{
//	  // comments are allowed in JSON files
//	  "birds": [
//	    {"key": "Aves"},
//	    [{"key": "Passeriformes"},
//	      [{"key": "song sparrow", "value": 21}],
//	      [{"key": "junco", "value": 17}]],
//	    [{"key": "mallard", "value": 11, "status": "common"}]
//	  ]
//	}
//
// The attribute record must carry "key". Leaves must carry a numeric "value";
// on internal nodes a value is accepted but overwritten during layout. Any
// other fields are copied into the node's [tree.Metadata].
//
// The same structure may be written as YAML:
//
//	birds:
//	  - key: Aves
//	  - - key: mallard
//	      value: 11
//
// # Import
//
// [ImportFile] picks a decoder from the file extension (.json, .jsonc, .yaml,
// .yml). [ReadJSON] and [ReadYAML] decode from any io.Reader. Shape errors
// are reported as MALFORMED_TREE with the tree name and node position, bad
// syntax as INVALID_FORMAT, and a missing file as FILE_NOT_FOUND.
//
// # Export
//
// [WriteJSON] and [ExportFile] write a [Collection] back in the same form, so
// a file can be loaded, edited programmatically, and saved again. [MarshalTree]
// produces the canonical encoding of a single tree, which the pipeline uses as
// the content address for cached layouts.
package io
