// Package source provides producers that feed pipelines from the file
// system.
//
//	files, err := source.Dir("docs", true)
//	words := pipeline.Pipe(
//	    pipeline.Pipe(
//	        pipeline.Pipe(files, pipeline.Filter(source.HasExt(".md"))),
//	        source.OpenFiles()),
//	    pipeline.SplitReader[*os.File](" \n"))
package source
