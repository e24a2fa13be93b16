// Package images fetches occurrence thumbnails and encodes them as base64
// text for inlining into outbound records. A per-pass cache keyed by source
// URL avoids re-encoding the same image twice within a run.
package images
