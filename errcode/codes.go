/*
   Copyright 2026 The UltraSuite Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package errcode

// Sentinel codes
//
// These codes are reserved by the resolution pipeline itself. They must
// always be kept distinct from domain codes: the resolver consults them as
// fallbacks and the registry ships default policy entries for them.
const (
	// Undefined is consulted when a reported code has no runtime-defined and
	// no static policy entry. Its resolved context carries the original code
	// under the "_original_code" key so the original intent is never lost.
	Undefined Code = "UNDEFINED_ERROR_CODE"

	// Fallback is the single global last-resort policy entry, consulted only
	// when even the Undefined entry is absent.
	Fallback Code = "FALLBACK_ERROR"

	// FatalFallback is never resolved; it is the code carried by the fatal
	// exception raised when the Fallback entry itself is missing. This is the
	// only unrecoverable state in the pipeline and is meant to fail tests and
	// CI loudly rather than hide a misconfiguration in production.
	FatalFallback Code = "FATAL_FALLBACK_FAILURE"
)

// Generic / transport error codes
const (
	// GenericServerError is the default classification for unexpected
	// server-side failures surfaced at a transport boundary.
	GenericServerError Code = "GENERIC_SERVER_ERROR"

	// UnexpectedError classifies caught exceptions that no business code
	// mapped to a more specific code.
	UnexpectedError Code = "UNEXPECTED_ERROR"

	// NetworkError classifies connectivity failures, usually reported by the
	// client mirror when a fetch or beacon cannot reach the server.
	NetworkError Code = "NETWORK_ERROR"

	// PageNotFound classifies navigation to a route that does not exist.
	PageNotFound Code = "PAGE_NOT_FOUND"
)

// Authentication / session error codes
const (
	AuthenticationError Code = "AUTHENTICATION_ERROR"
	SessionExpired      Code = "SESSION_EXPIRED"
	CSRFTokenMismatch   Code = "CSRF_TOKEN_MISMATCH"
)

// Validation / persistence error codes
const (
	ValidationError Code = "VALIDATION_ERROR"
	DatabaseError   Code = "DATABASE_ERROR"
	RecordNotFound  Code = "RECORD_NOT_FOUND"
)

// File / upload domain error codes
//
// The upload workflow itself lives outside this module; these codes are the
// vocabulary it reports with.
const (
	FileNotFound         Code = "FILE_NOT_FOUND"
	InvalidFile          Code = "INVALID_FILE"
	InvalidFileExtension Code = "INVALID_FILE_EXTENSION"
	MaxFileSize          Code = "MAX_FILE_SIZE"
	UploadFailed         Code = "UPLOAD_FAILED"
	TempFileCreateFailed Code = "TEMP_FILE_CREATE_FAILED"
	TempFileNotFound     Code = "TEMP_FILE_NOT_FOUND"
)

// Virus-scan error codes
const (
	// VirusFound is raised when the external scanner flags an uploaded file.
	// It is also the canonical demo target for the testing-condition
	// injector ("pretend the virus scan finds a virus").
	VirusFound Code = "VIRUS_FOUND"

	// ScanError is raised when the scanner itself fails, which is distinct
	// from it finding something.
	ScanError Code = "SCAN_ERROR"
)
