// Package services implements the retrieval-augmented decisioning
// pipeline: ingest (extract, chunk, embed, index) and answer (retrieve,
// analyse, synthesize a structured decision).
package services
