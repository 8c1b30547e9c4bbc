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

package grpcx

import (
	"context"
	"errors"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"

	ultraerr "ultrasuite.dev/ultraerr"
)

func TestStatusError(t *testing.T) {
	e := ultraerr.E("RECORD_NOT_FOUND", 404, "the record could not be found",
		ultraerr.WithContextOption("table", "widgets"),
		ultraerr.WithContextOption("attempt", 2),
	)
	err := StatusError(e)

	st, ok := status.FromError(err)
	if !ok {
		t.Fatalf("not a status error: %v", err)
	}
	if st.Code() != codes.NotFound || st.Message() != "the record could not be found" {
		t.Fatalf("status = %v %q", st.Code(), st.Message())
	}

	info, ok := ExtractInfo(err)
	if !ok {
		t.Fatalf("no ErrorInfo detail")
	}
	want := &errdetails.ErrorInfo{
		Reason: "RECORD_NOT_FOUND",
		Domain: Domain,
		Metadata: map[string]string{
			"table":   "widgets",
			"attempt": "2",
		},
	}
	if !proto.Equal(info, want) {
		t.Fatalf("info = %v, want %v", info, want)
	}
	if got := CodeOf(err); got != "RECORD_NOT_FOUND" {
		t.Fatalf("CodeOf = %s", got)
	}
}

func TestGRPCCodeTable(t *testing.T) {
	tests := []struct {
		http int
		want codes.Code
	}{
		{400, codes.InvalidArgument},
		{401, codes.Unauthenticated},
		{403, codes.PermissionDenied},
		{404, codes.NotFound},
		{409, codes.Aborted},
		{422, codes.InvalidArgument},
		{429, codes.ResourceExhausted},
		{500, codes.Internal},
		{503, codes.Unavailable},
		{0, codes.Internal},
	}
	for _, tt := range tests {
		if got := grpcCode(tt.http); got != tt.want {
			t.Errorf("grpcCode(%d) = %v, want %v", tt.http, got, tt.want)
		}
	}
}

func TestUnaryServerInterceptor(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	ic := UnaryServerInterceptor(log)
	info := &grpc.UnaryServerInfo{FullMethod: "/widgets.v1.Widgets/Get"}

	// Pipeline exceptions become status errors.
	_, err := ic(context.Background(), nil, info, func(context.Context, any) (any, error) {
		return nil, ultraerr.E("AUTHENTICATION_ERROR", 401, "sign in required")
	})
	if st, ok := status.FromError(err); !ok || st.Code() != codes.Unauthenticated {
		t.Fatalf("err = %v", err)
	}
	if hook.LastEntry() == nil || hook.LastEntry().Data["error_code"] != "AUTHENTICATION_ERROR" {
		t.Fatalf("interceptor did not log the failure")
	}

	// Other errors pass through untouched.
	plain := errors.New("plain")
	_, err = ic(context.Background(), nil, info, func(context.Context, any) (any, error) {
		return nil, plain
	})
	if !errors.Is(err, plain) {
		t.Fatalf("err = %v", err)
	}

	// Successes pass through.
	resp, err := ic(context.Background(), nil, info, func(context.Context, any) (any, error) {
		return "ok", nil
	})
	if err != nil || resp != "ok" {
		t.Fatalf("resp = %v, err = %v", resp, err)
	}
}
