// Package ingest implements the document ingestion pipeline that feeds
// the assistant's knowledge base. It scans a source directory for text
// and markdown documents, splits them into overlapping chunks, embeds
// each chunk through the inference service, and upserts the results
// into a local sqlite database keyed by content hash so re-ingesting
// unchanged content is a no-op.
//
// The pipeline can run once, continuously via a filesystem watcher, or
// periodically on a cron schedule.
package ingest
