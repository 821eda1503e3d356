package constant

// Composer error codes
const (
	// Validation errors (0xx)
	ErrCodeInvalidOutputPath = "QR001"
	ErrCodeEmptyText         = "QR002"

	// Input errors (1xx)
	ErrCodeLogoLoad = "QR101"

	// Encoding errors (2xx)
	ErrCodeEncode = "QR201"

	// Verification errors (3xx)
	ErrCodeDecodeInconclusive = "QR301"
	ErrCodeVerifyMismatch     = "QR302"

	// Output errors (4xx)
	ErrCodeWritePNG = "QR401"
)

// Generation service error codes
const (
	ErrCodeGenEmptyText    = "GEN001"
	ErrCodeGenEmptyID      = "GEN002"
	ErrCodeGenCompose      = "GEN003"
	ErrCodeGenStore        = "GEN004"
	ErrCodeGenNotFound     = "GEN005"
	ErrCodeGenOutputDirErr = "GEN006"
)

// Database error codes
const (
	// General DB errors (5xx)
	ErrCodeDBGeneral = "DB500"

	// Connection errors (0xx)
	ErrCodeDBOpen    = "DB001"
	ErrCodeDBMigrate = "DB002"

	// Store operation errors (1xx)
	ErrCodeDBInsert = "DB102"

	// Lookup errors (2xx)
	ErrCodeDBLookup = "DB201"
	ErrCodeDBList   = "DB202"

	// Close operation errors (4xx)
	ErrCodeDBClose = "DB401"
)

// Error types for categorization
const (
	ErrTypeValidation   = "validation"
	ErrTypeInput        = "input"
	ErrTypeEncoding     = "encoding"
	ErrTypeVerification = "verification"
	ErrTypeOutput       = "output"
	ErrTypeStorage      = "storage"
	ErrTypeRetrieval    = "retrieval"

	ErrTypeDB = "db"
)
