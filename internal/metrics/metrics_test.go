package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNormalizePath(t *testing.T) {
	cases := map[string]string{
		"/":                                                 "/",
		"/post/create":                                      "/post/create",
		"/post/delete/3f1c2a9e-8b4d-4c6e-9f00-112233445566": "/post/delete/{id}",
		"/post/delete/42/":                                  "/post/delete/{id}/",
	}
	for in, want := range cases {
		if got := NormalizePath(in); got != want {
			t.Errorf("NormalizePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRecordRequest(t *testing.T) {
	before := testutil.ToFloat64(RequestTotal.WithLabelValues("GET", "/post/delete/{id}", "200"))
	RecordRequest("GET", "/post/delete/3f1c2a9e-8b4d-4c6e-9f00-112233445566", 200, 0.01)
	after := testutil.ToFloat64(RequestTotal.WithLabelValues("GET", "/post/delete/{id}", "200"))
	if after-before != 1 {
		t.Errorf("expected counter to grow by 1, got %v", after-before)
	}
}

func TestSetTotals(t *testing.T) {
	SetTotals(map[string]int{"guest": 4, "member": 2}, 7)
	if got := testutil.ToFloat64(Users.WithLabelValues("member")); got != 2 {
		t.Errorf("members gauge: got %v, want 2", got)
	}
	if got := testutil.ToFloat64(Posts); got != 7 {
		t.Errorf("posts gauge: got %v, want 7", got)
	}
}
