package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newContext(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestFromContext_Defaults(t *testing.T) {
	p := FromContext(newContext("/"))

	if p.Limit != DefaultLimit {
		t.Errorf("expected default limit %d, got %d", DefaultLimit, p.Limit)
	}
	if p.Offset != 0 {
		t.Errorf("expected default offset 0, got %d", p.Offset)
	}
}

func TestFromContext_CustomValues(t *testing.T) {
	p := FromContext(newContext("/?limit=50&offset=10"))

	if p.Limit != 50 {
		t.Errorf("expected limit 50, got %d", p.Limit)
	}
	if p.Offset != 10 {
		t.Errorf("expected offset 10, got %d", p.Offset)
	}
}

func TestFromContext_MaxLimit(t *testing.T) {
	p := FromContext(newContext("/?limit=500"))
	if p.Limit != MaxLimit {
		t.Errorf("expected limit capped at %d, got %d", MaxLimit, p.Limit)
	}
}

func TestFromContext_InvalidValues(t *testing.T) {
	p := FromContext(newContext("/?limit=abc&offset=-4"))
	if p.Limit != DefaultLimit {
		t.Errorf("expected default limit, got %d", p.Limit)
	}
	if p.Offset != 0 {
		t.Errorf("expected offset 0, got %d", p.Offset)
	}
}

func TestPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name    string
		params  Params
		want    []int
		hasMore bool
	}{
		{"first page", Params{Limit: 2, Offset: 0}, []int{1, 2}, true},
		{"last page", Params{Limit: 2, Offset: 4}, []int{5}, false},
		{"past end", Params{Limit: 2, Offset: 10}, []int{}, false},
		{"everything", Params{Limit: 20, Offset: 0}, []int{1, 2, 3, 4, 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := Page(items, tt.params)
			got, ok := resp.Data.([]int)
			if !ok {
				t.Fatalf("expected []int data, got %T", resp.Data)
			}
			if got == nil {
				t.Fatal("page must never be nil")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("expected %v, got %v", tt.want, got)
				}
			}
			if resp.Total != len(items) {
				t.Errorf("expected total %d, got %d", len(items), resp.Total)
			}
			if resp.HasMore != tt.hasMore {
				t.Errorf("expected has_more %v, got %v", tt.hasMore, resp.HasMore)
			}
		})
	}
}

func TestParams_HasNext(t *testing.T) {
	p := Params{Limit: 10, Offset: 0}
	if !p.HasNext(11) {
		t.Error("expected next page when total exceeds limit")
	}
	if p.HasNext(10) {
		t.Error("did not expect next page when total equals limit")
	}
}
