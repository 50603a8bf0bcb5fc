package apierr

import (
	"strings"
)

// Code identifies one Fluxsave failure category for programmatic handling.
type Code string

const (
	CodeStorageLimit           Code = "STORAGE_LIMIT"            // 413: total storage quota exceeded
	CodeFileTooLarge           Code = "FILE_TOO_LARGE"           // 413: file exceeds the plan's max file size
	CodeMimeTypeNotAllowed     Code = "MIME_TYPE_NOT_ALLOWED"    // 415: file type blocked by plan
	CodeSubscriptionInactive   Code = "SUBSCRIPTION_INACTIVE"    // 402: subscription is not active
	CodeCompressionNotAllowed  Code = "COMPRESSION_NOT_ALLOWED"  // 403: compression level not permitted by plan
	CodeFolderCountLimit       Code = "FOLDER_COUNT_LIMIT"       // 403: plan's folder count reached
	CodeFileCountLimit         Code = "FILE_COUNT_LIMIT"         // 403: plan's file count reached
	CodeEmailNotVerified       Code = "EMAIL_NOT_VERIFIED"       // 403: login before verifying email
	CodeEmailAlreadyRegistered Code = "EMAIL_ALREADY_REGISTERED" // 400: duplicate email on register
	CodeInvalidCredentials     Code = "INVALID_CREDENTIALS"      // 400: wrong email or password
	CodeInvalidOTP             Code = "INVALID_OTP"              // 400: bad/expired verification code
	CodeUnauthorized           Code = "UNAUTHORIZED"             // 401
	CodeNotFound               Code = "NOT_FOUND"                // 404
	CodeUnknown                Code = "UNKNOWN"                  // anything else
)

// ResolveCode maps an HTTP status plus the server's message text to a
// taxonomy code. Matching is case-insensitive substring containment, checks
// run top to bottom and the first hit wins: a 403 mentioning both
// "compression" and "folder" resolves to COMPRESSION_NOT_ALLOWED. Always
// returns a non-empty code.
func ResolveCode(status int, message string) Code {
	m := strings.ToLower(message)
	switch {
	case status == 413 && strings.Contains(m, "storage limit"):
		return CodeStorageLimit
	case status == 413:
		return CodeFileTooLarge
	case status == 415:
		return CodeMimeTypeNotAllowed
	case status == 402:
		return CodeSubscriptionInactive
	case status == 403 && strings.Contains(m, "compression"):
		return CodeCompressionNotAllowed
	case status == 403 && strings.Contains(m, "folder"):
		return CodeFolderCountLimit
	case status == 403 && (strings.Contains(m, "file") || strings.Contains(m, "maximum")):
		return CodeFileCountLimit
	case status == 403 && strings.Contains(m, "email"):
		return CodeEmailNotVerified
	case status == 400 && strings.Contains(m, "already registered"):
		return CodeEmailAlreadyRegistered
	case status == 400 && (strings.Contains(m, "invalid email or password") || strings.Contains(m, "invalid credentials")):
		return CodeInvalidCredentials
	case status == 400 && strings.Contains(m, "otp"):
		return CodeInvalidOTP
	case status == 401:
		return CodeUnauthorized
	case status == 404:
		return CodeNotFound
	}
	return CodeUnknown
}
