// Package markdown handles corpus ingestion: front-matter extraction,
// Markdown link discovery, and filesystem loading.
package markdown
