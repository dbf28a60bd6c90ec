// Package core provides the business logic for bulk order submission.
//
// This package is the heart of the application, containing all domain logic
// independent of any UI or transport layer. It can be used by web handlers,
// CLI tools, or tests without modification.
//
// # Architecture
//
// The package is organized around several key concepts:
//
//   - Registry: Tracks every batch as a [Task] with a sequential id. Tasks
//     are held in memory and queried by the status API.
//   - Service: The main entry point. [Service.StartBatch] registers a task
//     and launches the batch in a background goroutine.
//   - CSV decoding: [ReadRecords] reads an uploaded file, falling back to
//     Latin-1 when the bytes are not valid UTF-8, and maps header names to
//     order fields.
//   - Limiter: [BatchLimiter] bounds how many batches run at once.
//
// # Batch Flow
//
//  1. A handler stores the uploaded CSV and calls [Service.StartBatch]
//  2. The service acquires a batch slot and creates a task in Processing
//  3. A goroutine normalizes each row and submits it, appending one
//     outcome line per row to the task log
//  4. The ordered log is written to a result artifact and the task moves
//     to Completed, or to Failed when the file or artifact is the problem
//
// Row-level problems never fail a batch: a row that cannot be normalized
// or is rejected by the API contributes its error line and the run moves
// on to the next row.
package core
