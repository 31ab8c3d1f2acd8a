// Package domain contains the core entities of the Parley interview
// assistant: documents and chunks flowing through the ingestion pipeline,
// interview sessions and questions, and evaluation records produced by
// the generation pipeline.
//
// The domain layer has no dependencies on adapters or external services.
package domain
