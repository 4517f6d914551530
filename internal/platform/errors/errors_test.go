package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCode(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeDecode, http.StatusUnprocessableEntity},
		{ErrorCodeDuplicateKey, http.StatusConflict},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodeIO, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{999, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestErrorCodeString(t *testing.T) {
	if ErrorCodeDecode.String() != "decode" || ErrorCodeNotFound.String() != "not_found" {
		t.Fatalf("names mismatch")
	}
	if ErrorCode(999).String() != "code(999)" {
		t.Fatalf("unknown code = %q", ErrorCode(999).String())
	}
}

func TestErrorRendering(t *testing.T) {
	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Fatalf("nil render = %q", nilErr.Error())
	}

	cause := stderrs.New("no such file")
	err := WithOp(Wrap(cause, ErrorCodeNotFound, "open corpus"), "pgnfile.Open")
	if got := err.Error(); got != "pgnfile.Open: open corpus: no such file" {
		t.Fatalf("Error() = %q", got)
	}
	if !stderrs.Is(err, cause) {
		t.Fatalf("cause lost")
	}
	if Root(err) != cause {
		t.Fatalf("Root = %v", Root(err))
	}
	if Root(nil) != nil {
		t.Fatalf("Root(nil) should be nil")
	}
}

func TestCodeOfAndAs(t *testing.T) {
	e := InvalidArgf("bad encoding %q", "ebcdic")
	wrapped := fmt.Errorf("ingest: %w", e)

	if CodeOf(wrapped) != ErrorCodeInvalidArgument || !IsCode(wrapped, ErrorCodeInvalidArgument) {
		t.Fatalf("CodeOf through fmt wrap = %v", CodeOf(wrapped))
	}
	if CodeOf(stderrs.New("plain")) != ErrorCodeUnknown {
		t.Fatalf("foreign error should be Unknown")
	}
	if _, ok := As(stderrs.New("plain")); ok {
		t.Fatalf("As on foreign error should fail")
	}
	if HTTPStatus(wrapped) != http.StatusUnprocessableEntity {
		t.Fatalf("HTTPStatus = %d", HTTPStatus(wrapped))
	}
}

func TestWire(t *testing.T) {
	if (WireFrom(nil) != Wire{}) {
		t.Fatalf("WireFrom(nil) not zero")
	}
	w := WireFrom(WithField(New(ErrorCodeValidation, "must be one of 1 -1 0 -999"), "result"))
	if w.Code != ErrorCodeValidation || w.Field != "result" {
		t.Fatalf("wire = %+v", w)
	}
	// the cause never leaks into the wire message
	w = WireFrom(Wrap(stderrs.New("dial tcp 10.0.0.1"), ErrorCodeDB, "query games"))
	if w.Message != "query games" {
		t.Fatalf("wire message = %q", w.Message)
	}
	if f := WireFrom(stderrs.New("x")); f.Code != ErrorCodeUnknown || f.Message != "x" {
		t.Fatalf("foreign wire = %+v", f)
	}

	status, body := HTTP(NotFoundf("run %s", "abc"))
	if status != http.StatusNotFound || body.Message != "run abc" {
		t.Fatalf("HTTP = %d %+v", status, body)
	}
	if status, _ := HTTP(nil); status != http.StatusOK {
		t.Fatalf("HTTP(nil) = %d", status)
	}
}

func TestMutatorsLeaveForeignErrors(t *testing.T) {
	plain := stderrs.New("plain")
	if WithField(plain, "x") != plain || WithOp(plain, "y") != plain {
		t.Fatalf("mutators must not touch foreign errors")
	}
	orig := New(ErrorCodeDB, "x")
	_ = WithField(orig, "col")
	if e, _ := As(orig); e.Field() != "" {
		t.Fatalf("WithField mutated the original")
	}
}

func TestConstructors(t *testing.T) {
	cases := []struct {
		err  error
		code ErrorCode
	}{
		{NotFoundf("a"), ErrorCodeNotFound},
		{InvalidArgf("a"), ErrorCodeInvalidArgument},
		{DBf("a"), ErrorCodeDB},
		{JSONErrf("a"), ErrorCodeJSON},
		{PanicErrf("a"), ErrorCodePanic},
		{Unavailablef("a"), ErrorCodeUnavailable},
		{Internalf("a"), ErrorCodeUnknown},
		{Wrapf(stderrs.New("c"), ErrorCodeIO, "write %s", "x.parquet"), ErrorCodeIO},
	}
	for _, c := range cases {
		if CodeOf(c.err) != c.code {
			t.Fatalf("%v has code %v, want %v", c.err, CodeOf(c.err), c.code)
		}
	}
	if WrapIf(nil, ErrorCodeDB, "x") != nil {
		t.Fatalf("WrapIf(nil) should be nil")
	}
	if CodeOf(WrapIf(stderrs.New("c"), ErrorCodeDB, "x")) != ErrorCodeDB {
		t.Fatalf("WrapIf lost code")
	}
}

func TestRetryable(t *testing.T) {
	if !Retryable(Unavailablef("clickhouse down")) {
		t.Fatalf("unavailable should be retryable")
	}
	if Retryable(context.Canceled) || Retryable(nil) {
		t.Fatalf("cancel and nil are not retryable")
	}
	if !Retryable(stderrs.New("ERROR: deadlock detected")) {
		t.Fatalf("deadlock text should be retryable")
	}
}
