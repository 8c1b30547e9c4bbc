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

// Package grpcx maps pipeline exceptions onto gRPC status errors, with
// the error code carried as a google.rpc.ErrorInfo detail so callers can
// recover it without string parsing.
package grpcx

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	ultraerr "ultrasuite.dev/ultraerr"
	"ultrasuite.dev/ultraerr/errcode"
)

// Domain is the ErrorInfo domain attached to outgoing statuses.
const Domain = "ultraerr.ultrasuite.dev"

// StatusError converts e into a gRPC status error. The status code is
// derived from the HTTP status of the policy; the original error code and
// any string context travel in an ErrorInfo detail.
func StatusError(e *ultraerr.Error) error {
	if e == nil {
		return nil
	}
	st := status.New(grpcCode(e.HTTPStatus), e.Message)

	info := &errdetails.ErrorInfo{
		Reason:   string(e.Code),
		Domain:   Domain,
		Metadata: stringContext(e.Context),
	}
	detailed, err := st.WithDetails(info)
	if err != nil {
		// Detail attachment only fails on marshalling, keep the bare status.
		return st.Err()
	}
	return detailed.Err()
}

// ExtractInfo returns the ErrorInfo detail carried by err, if any.
func ExtractInfo(err error) (*errdetails.ErrorInfo, bool) {
	st, ok := status.FromError(err)
	if !ok {
		return nil, false
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			return info, true
		}
	}
	return nil, false
}

// CodeOf recovers the error code from a status error produced by
// StatusError. Unknown errors map to the empty code.
func CodeOf(err error) errcode.Code {
	if info, ok := ExtractInfo(err); ok {
		return errcode.Code(info.GetReason())
	}
	return ""
}

// UnaryServerInterceptor converts pipeline exceptions escaping a unary
// handler into status errors and logs them. Other errors pass through.
func UnaryServerInterceptor(log logrus.FieldLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, srvInfo *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		var ue *ultraerr.Error
		if !errors.As(err, &ue) {
			return resp, err
		}
		log.WithFields(logrus.Fields{
			"error_code": string(ue.Code),
			"method":     srvInfo.FullMethod,
		}).Warn("request failed")
		return resp, StatusError(ue)
	}
}

func grpcCode(httpStatus int) codes.Code {
	switch httpStatus {
	case 400, 422:
		return codes.InvalidArgument
	case 401:
		return codes.Unauthenticated
	case 403:
		return codes.PermissionDenied
	case 404:
		return codes.NotFound
	case 408, 504:
		return codes.DeadlineExceeded
	case 409:
		return codes.Aborted
	case 412:
		return codes.FailedPrecondition
	case 429:
		return codes.ResourceExhausted
	case 499:
		return codes.Canceled
	case 501:
		return codes.Unimplemented
	case 502, 503:
		return codes.Unavailable
	default:
		return codes.Internal
	}
}

func stringContext(ectx map[string]any) map[string]string {
	if len(ectx) == 0 {
		return nil
	}
	out := make(map[string]string, len(ectx))
	for k, v := range ectx {
		if s, ok := v.(string); ok {
			out[k] = s
		} else {
			out[k] = fmt.Sprintf("%v", v)
		}
	}
	return out
}
