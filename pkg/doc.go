// Package pkg provides the libraries behind tether, a geometry engine for
// connector lines between rectangles.
//
// # Overview
//
// Given two rectangles and a set of options, tether computes where a
// connector attaches, the SVG path data of its line, the placed end plugs
// and the bounding box that contains all of it. The pkg directory is
// organized into three areas:
//
//  1. Engine - pure geometry with no I/O ([geom], [socket], [path], [plug],
//     [bounds], [coords], [connector])
//  2. Hosts - element layouts and long-running connector state ([anchor],
//     [layout], [manager], [scene])
//  3. Infrastructure - caching, orchestration and reporting ([cache],
//     [pipeline], [render], [errors], [observability], [buildinfo])
//
// # Architecture
//
// The data flow for one connector:
//
//	Element rectangles (scene file, Graphviz layout, MongoDB, HTTP)
//	         ↓
//	    [anchor] (measure the element or sub-area)
//	         ↓
//	    [socket] (pick the attachment sides)
//	         ↓
//	    [path] (generate the line for the path kind)
//	         ↓
//	    [plug] + [bounds] (place markers, compute the bounding box)
//	         ↓
//	    [coords] (translate into container coordinates)
//	         ↓
//	    JSON / SVG output
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/tether/pkg/connector"
//	    "github.com/matzehuels/tether/pkg/geom"
//	    "github.com/matzehuels/tether/pkg/path"
//	)
//
//	g := connector.Solve(geom.R(0, 0, 100, 50), geom.R(300, 200, 100, 50),
//	    connector.Options{Path: path.Fluid})
//	fmt.Println(g.D)
//
// For many links, or when results should be cached, use a [pipeline.Runner]
// with a [cache.Cache]. Hosts that move elements at runtime keep their
// links in a [manager.Manager] and call Invalidate after each layout pass.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test -run Example ./pkg/...       # Examples only
//
// Redis tests are skipped unless TETHER_TEST_REDIS_URL points at a server.
package pkg
