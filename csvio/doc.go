// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package csvio converts between comma-delimited text and ranking items.

# Import

Import reads a header line followed by one item per line:

	id,title,description,imageUrl
	1,"Cottage, rustic",Nature,https://example.com/c.png

Header fields may appear in any order. Rows whose field count differs from
the header are skipped and reported in ImportResult.Warnings. A missing
header, fewer than two lines or a duplicate id fails the whole import with
an *ImportFormatError. Fewer than two usable rows sets
ImportResult.Insufficient instead of failing.

# Export

Export writes a resolved ranking:

	rank,id,title,score,description,imageUrl

ExportFilename derives the download name from the imported file name.
*/
package csvio
