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

package registry

import (
	"ultrasuite.dev/ultraerr/apis"
	"ultrasuite.dev/ultraerr/errcode"
	"ultrasuite.dev/ultraerr/policy"
)

func builtinTypes() map[policy.Severity]apis.TypeDefaults {
	return map[policy.Severity]apis.TypeDefaults{
		policy.SeverityCritical: {LogLevel: "error", NotifyTeam: true, HTTPStatus: 500},
		policy.SeverityError:    {LogLevel: "error", NotifyTeam: true, HTTPStatus: 400},
		policy.SeverityWarning:  {LogLevel: "warning", NotifyTeam: false, HTTPStatus: 400},
		policy.SeverityNotice:   {LogLevel: "info", NotifyTeam: false, HTTPStatus: 200},
	}
}

func builtinBlocking() map[policy.Blocking]apis.BlockingDefaults {
	return map[policy.Blocking]apis.BlockingDefaults{
		policy.BlockingFull: {TerminateRequest: true, ClearSession: true},
		policy.BlockingSemi: {FlashSession: true},
		policy.BlockingNone: {FlashSession: true},
	}
}

func builtinErrors() map[errcode.Code]apis.Config {
	return map[errcode.Code]apis.Config{
		errcode.Undefined: {
			Type:           policy.SeverityCritical,
			Blocking:       policy.BlockingNone,
			DisplayMode:    policy.DisplayDiv,
			UserMessageKey: "ultraerr.undefined_error_code",
		},
		errcode.Fallback: {
			Type:           policy.SeverityCritical,
			Blocking:       policy.BlockingNone,
			DisplayMode:    policy.DisplayDiv,
			UserMessageKey: "ultraerr.fallback_error",
		},
		errcode.GenericServerError: {
			Type:           policy.SeverityError,
			Blocking:       policy.BlockingSemi,
			HTTPStatus:     500,
			DisplayMode:    policy.DisplayDiv,
			UserMessageKey: "ultraerr.generic_server_error",
		},
		errcode.UnexpectedError: {
			Type:           policy.SeverityCritical,
			Blocking:       policy.BlockingNone,
			DisplayMode:    policy.DisplayDiv,
			UserMessageKey: "ultraerr.unexpected_error",
		},
		errcode.NetworkError: {
			Type:           policy.SeverityError,
			Blocking:       policy.BlockingNone,
			DisplayMode:    policy.DisplayToast,
			UserMessageKey: "ultraerr.network_error",
		},
		errcode.PageNotFound: {
			Type:           policy.SeverityWarning,
			Blocking:       policy.BlockingFull,
			HTTPStatus:     404,
			DisplayMode:    policy.DisplaySweetAlert,
			UserMessageKey: "ultraerr.page_not_found",
		},
		errcode.AuthenticationError: {
			Type:           policy.SeverityWarning,
			Blocking:       policy.BlockingFull,
			HTTPStatus:     401,
			DisplayMode:    policy.DisplaySweetAlert,
			UserMessageKey: "ultraerr.authentication_error",
		},
		errcode.SessionExpired: {
			Type:           policy.SeverityNotice,
			Blocking:       policy.BlockingFull,
			HTTPStatus:     401,
			DisplayMode:    policy.DisplaySweetAlert,
			UserMessageKey: "ultraerr.session_expired",
		},
		errcode.CSRFTokenMismatch: {
			Type:           policy.SeverityWarning,
			Blocking:       policy.BlockingFull,
			HTTPStatus:     419,
			DisplayMode:    policy.DisplaySweetAlert,
			UserMessageKey: "ultraerr.csrf_token_mismatch",
		},
		errcode.ValidationError: {
			Type:           policy.SeverityNotice,
			Blocking:       policy.BlockingSemi,
			HTTPStatus:     422,
			DisplayMode:    policy.DisplayDiv,
			UserMessageKey: "ultraerr.validation_error",
		},
		errcode.DatabaseError: {
			Type:           policy.SeverityCritical,
			Blocking:       policy.BlockingFull,
			DisplayMode:    policy.DisplaySweetAlert,
			UserMessageKey: "ultraerr.database_error",
			DevMessage:     "A database query failed; see the logged cause.",
		},
		errcode.RecordNotFound: {
			Type:           policy.SeverityWarning,
			Blocking:       policy.BlockingSemi,
			HTTPStatus:     404,
			DisplayMode:    policy.DisplaySweetAlert,
			UserMessageKey: "ultraerr.record_not_found",
		},
		errcode.FileNotFound: {
			Type:           policy.SeverityError,
			Blocking:       policy.BlockingSemi,
			HTTPStatus:     404,
			DisplayMode:    policy.DisplaySweetAlert,
			UserMessageKey: "ultraerr.file_not_found",
		},
		errcode.InvalidFile: {
			Type:           policy.SeverityWarning,
			Blocking:       policy.BlockingSemi,
			HTTPStatus:     422,
			DisplayMode:    policy.DisplayDiv,
			UserMessageKey: "ultraerr.invalid_file",
		},
		errcode.InvalidFileExtension: {
			Type:           policy.SeverityWarning,
			Blocking:       policy.BlockingSemi,
			HTTPStatus:     422,
			DisplayMode:    policy.DisplayDiv,
			UserMessageKey: "ultraerr.invalid_file_extension",
		},
		errcode.MaxFileSize: {
			Type:           policy.SeverityWarning,
			Blocking:       policy.BlockingSemi,
			HTTPStatus:     413,
			DisplayMode:    policy.DisplayToast,
			UserMessageKey: "ultraerr.max_file_size",
		},
		errcode.UploadFailed: {
			Type:           policy.SeverityError,
			Blocking:       policy.BlockingSemi,
			DisplayMode:    policy.DisplayToast,
			UserMessageKey: "ultraerr.upload_failed",
		},
		errcode.TempFileCreateFailed: {
			Type:           policy.SeverityError,
			Blocking:       policy.BlockingSemi,
			DisplayMode:    policy.DisplayToast,
			UserMessageKey: "ultraerr.temp_file_create_failed",
			DevMessage:     "Creating a temporary file failed; check disk space and permissions.",
		},
		errcode.TempFileNotFound: {
			Type:           policy.SeverityError,
			Blocking:       policy.BlockingSemi,
			HTTPStatus:     404,
			DisplayMode:    policy.DisplayToast,
			UserMessageKey: "ultraerr.temp_file_not_found",
		},
		errcode.VirusFound: {
			Type:           policy.SeverityCritical,
			Blocking:       policy.BlockingFull,
			HTTPStatus:     422,
			DisplayMode:    policy.DisplaySweetAlert,
			UserMessageKey: "ultraerr.virus_found",
		},
		errcode.ScanError: {
			Type:           policy.SeverityError,
			Blocking:       policy.BlockingSemi,
			HTTPStatus:     422,
			DisplayMode:    policy.DisplayToast,
			UserMessageKey: "ultraerr.scan_error",
		},
	}
}
