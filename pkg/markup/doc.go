// Package markup reads and writes the XML documents that carry a
// calculation model.
//
// The model packages build and read bare *etree.Element trees; this package
// is the boundary where those trees become bytes, files or strings. Output
// is either pretty (indented, one element per line) or compact (a single
// line), mirroring the two renderings the model's consumers expect.
package markup
