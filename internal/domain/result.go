package domain

import "fmt"

// OperationResult is the uniform mutation outcome handed to the GraphQL boundary.
// Expected failures (not found, storage errors on write paths) are reported here
// instead of being returned as errors.
type OperationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ConnectionResult is an OperationResult carrying a relationship existence flag
type ConnectionResult struct {
	OperationResult
	IsConnected bool `json:"isConnected"`
}

// Succeeded builds a successful result
func Succeeded(format string, args ...any) OperationResult {
	return OperationResult{Success: true, Message: fmt.Sprintf(format, args...)}
}

// Failed builds a failed result
func Failed(format string, args ...any) OperationResult {
	return OperationResult{Success: false, Message: fmt.Sprintf(format, args...)}
}

// CategoryStats aggregates the documents of one category
type CategoryStats struct {
	Category    string  `json:"category"`
	Count       int     `json:"count"`
	TotalBudget float64 `json:"totalBudget"`
}

// UncategorizedLabel names the bucket for documents without a category
const UncategorizedLabel = "Uncategorized"
