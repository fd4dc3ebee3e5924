// Package export writes the scene as polylines.
//
// Every entity is flattened with Entity.AsPolyline and written either as
// JSON, one object per entity:
//
//	{
//	  "version": 1,
//	  "session": "5d2c...",
//	  "bounds": {"min": [0, 0], "max": [10, 5]},
//	  "entities": [
//	    {"id": "...", "kind": "line", "closed": false, "filled": false,
//	     "points": [[0, 0], [10, 0]]}
//	  ]
//	}
//
// or as a PNG raster fitted to the scene bounds. DecodeJSON reads the JSON
// form back.
package export
