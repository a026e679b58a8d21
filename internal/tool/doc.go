// Package tool is the single-call plugin surface of the converter.
//
// A host hands Invoke a loosely typed argument map (decoded JSON, form
// values). ExtractParams coerces it into a conversion request, and Invoke
// answers with either a document blob followed by a JSON summary, or a
// single text message. The MCP and HTTP servers are thin adapters over it.
package tool
