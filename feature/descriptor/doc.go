// Package descriptor reads upstream release descriptor files.
//
// A descriptor is an XML document rooted at <mame> or <datafile> whose <game> or <machine>
// elements describe one game each. Files may be compressed with bzip2 (.bz2), xz (.xz) or
// zstd (.zst); Open picks the decompressor from the file name.
//
// File names carry the release identity: "MAME 0.263.xml.bz2" is product "MAME", version
// "0.263". CompareVersions orders versions the way upstream numbers them, so 0.37b5 sorts
// before 0.37 and 0.263 after 0.37.
package descriptor
