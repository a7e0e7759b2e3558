package routerhelper

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func TestRouteGroupPrefixes(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		sub    string
		path   string
		want   string
	}{
		{name: "api group", prefix: "/api", path: "/wind", want: "/api/wind"},
		{name: "trailing slash", prefix: "/api/", path: "wind", want: "/api/wind"},
		{name: "root group", prefix: "/", path: "/healthz", want: "/healthz"},
		{name: "nested group", prefix: "/api", sub: "v1", path: "/wind", want: "/api/v1/wind"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := httprouter.New()
			group := NewRouteGroup(router, tt.prefix)
			if tt.sub != "" {
				group = group.NewGroup(tt.sub)
			}
			group.GET(tt.path, func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
				w.WriteHeader(http.StatusTeapot)
			})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.want, nil))
			assert.Equal(t, http.StatusTeapot, rec.Code)
		})
	}
}
