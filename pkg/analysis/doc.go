// Package analysis defines saved product-strategy analysis records and the
// storage contract for persisting them.
//
// A record captures a snapshot of the canvas at save time: the product
// description, selected business model, and the derived user journey.
// Implementations of the Storage interface live in the storage subpackage;
// automatic pruning lives in the retention subpackage.
package analysis
