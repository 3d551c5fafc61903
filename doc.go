// Package sqpack is a read-only access layer for the SqPack archive
// container format: given a game installation root, it resolves a logical
// asset path to its decoded bytes without exposing index layout, block
// compression, or multi-volume data file resolution to the caller.
//
// A minimal read looks like:
//
//	g, err := sqpack.Open(root)
//	if err != nil { ... }
//	defer g.Close()
//	data, err := g.Read(context.Background(), "exd/root.exl")
//
// The package never writes to an archive, never targets the PS3 platform,
// and never reconstructs Model or Texture payloads — those are recognized
// and rejected with a sqpack.Error of Kind KindUnimplemented.
package sqpack
