package ch

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"pgnframe/internal/platform/testkit"
)

func TestOpen_BadDSN(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), Config{URL: "://bad"}); err == nil || !strings.Contains(err.Error(), "parse dsn") {
		t.Fatalf("want parse error, got %v", err)
	}
}

func TestOpen_DialError(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &openConn, func(*clickhouse.Options) (driver.Conn, error) {
		return nil, errors.New("no route to host")
	})

	_, err := Open(context.Background(), Config{URL: "clickhouse://ch:9000/default"})
	if err == nil || !strings.Contains(err.Error(), "ch: open: no route to host") {
		t.Fatalf("err = %v", err)
	}
}

func TestBuildClientInfo(t *testing.T) {
	t.Parallel()

	ci := BuildClientInfo("ingest", "")
	if len(ci.Products) != 5 {
		t.Fatalf("products=%d", len(ci.Products))
	}
	if ci.Products[0].Name != "pgnframe" || ci.Products[0].Version != "unknown" {
		t.Fatalf("first product=%+v", ci.Products[0])
	}
	if ci.Products[1].Version != "ingest" {
		t.Fatalf("role=%+v", ci.Products[1])
	}
}

func TestAppendRows_RejectsNonSlice(t *testing.T) {
	t.Parallel()

	if err := appendRows(nil, 42); err == nil {
		t.Fatalf("want error for non slice")
	}
}
