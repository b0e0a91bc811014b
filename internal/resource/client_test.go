package resource_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/deskboard/internal/resource"
)

type row struct {
	resource.Key
	Description string `json:"description"`
	Method      string `json:"method"`
	Status      string `json:"status,omitempty"`
}

func rowIDs(rows []row) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.RecordID()
	}

	return ids
}

func serve(t *testing.T, status int, contentType, body string) *resource.API {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}

		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	return resource.NewAPI(srv.URL)
}

func TestClient_List(t *testing.T) {
	type testCase struct {
		name        string
		status      int
		body        string
		want        resource.ListResult[row]
		wantIDs     []string
		errContains string
	}

	tests := []testCase{
		{
			name:    "BareArray",
			status:  http.StatusOK,
			body:    `[{"id":1,"description":"a"},{"id":"2","description":"b"}]`,
			want:    resource.ListResult[row]{Success: true},
			wantIDs: []string{"1", "2"},
		},
		{
			name:    "DataWrapper",
			status:  http.StatusOK,
			body:    `{"data":[{"_id":"abc"}]}`,
			want:    resource.ListResult[row]{Success: true},
			wantIDs: []string{"abc"},
		},
		{
			name:    "Paged",
			status:  http.StatusOK,
			body:    `{"success":true,"data":[{"id":"1"}],"total":25,"page":2,"totalPages":3}`,
			want:    resource.ListResult[row]{Success: true, Total: 25, Page: 2, TotalPages: 3, HasTotals: true},
			wantIDs: []string{"1"},
		},
		{
			name:    "AckWithoutData",
			status:  http.StatusOK,
			body:    `{"success":true}`,
			want:    resource.ListResult[row]{Success: true},
			wantIDs: []string{},
		},
		{
			name:   "FailureEnvelope",
			status: http.StatusOK,
			body:   `{"success":false,"error":"forbidden"}`,
			want:   resource.ListResult[row]{Error: "forbidden"},
		},
		{
			name:   "ServerErrorWithFieldErrors",
			status: http.StatusUnprocessableEntity,
			body:   `{"error":"invalid","fieldErrors":{"status":"unknown"}}`,
			want: resource.ListResult[row]{
				Error:       "invalid",
				FieldErrors: map[string]string{"status": "unknown"},
			},
		},
		{
			name:   "ServerErrorPlainText",
			status: http.StatusBadGateway,
			body:   "upstream down",
			want:   resource.ListResult[row]{Error: "request failed with status 502: upstream down"},
		},
		{
			name:        "MalformedJSON",
			status:      http.StatusOK,
			body:        `{"data":[`,
			errContains: "Network error: malformed response",
		},
		{
			name:        "ObjectInsteadOfCollection",
			status:      http.StatusOK,
			body:        `{"id":"1"}`,
			errContains: "Network error: malformed response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := serve(t, tt.status, "application/json", tt.body)
			c := resource.NewClient[row](api, "transactions")

			got := c.List(context.Background(), resource.ListParams{Page: 1, Limit: 10})

			if tt.errContains != "" {
				assert.False(t, got.Success)
				assert.Contains(t, got.Error, tt.errContains)

				return
			}

			assert.Equal(t, tt.want.Success, got.Success)
			assert.Equal(t, tt.want.Error, got.Error)
			assert.Equal(t, tt.want.FieldErrors, got.FieldErrors)
			assert.Equal(t, tt.want.HasTotals, got.HasTotals)
			assert.Equal(t, tt.want.Total, got.Total)
			assert.Equal(t, tt.want.Page, got.Page)
			assert.Equal(t, tt.want.TotalPages, got.TotalPages)

			if tt.wantIDs != nil {
				assert.Equal(t, tt.wantIDs, rowIDs(got.Data))
			}
		})
	}
}

func TestClient_ListQuery(t *testing.T) {
	var (
		gotQuery string
		gotAuth  string
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")

		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	api := resource.NewAPI(srv.URL+"/", resource.WithToken("secret"))
	c := resource.NewClient[row](api, "/invoices/")

	res := c.List(context.Background(), resource.ListParams{Page: 2, Limit: 10, Status: "paid"})
	require.True(t, res.Success)
	assert.Equal(t, "limit=10&page=2&status=paid", gotQuery)
	assert.Equal(t, "Bearer secret", gotAuth)

	res = c.List(context.Background(), resource.ListParams{Page: 1, Limit: 10, Status: resource.StatusAll})
	require.True(t, res.Success)
	assert.Equal(t, "limit=10&page=1", gotQuery)
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := resource.NewClient[row](resource.NewAPI(url), "tickets")

	list := c.List(context.Background(), resource.ListParams{Page: 1, Limit: 10})
	assert.False(t, list.Success)
	assert.True(t, strings.HasPrefix(list.Error, "Network error: "))

	del := c.Delete(context.Background(), "1")
	assert.False(t, del.Success)
	assert.True(t, strings.HasPrefix(del.Error, "Network error: "))
}

func TestClient_Mutations(t *testing.T) {
	type call struct {
		method string
		path   string
		body   map[string]any
	}

	var last call

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		last = call{method: r.Method, path: r.URL.Path}

		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&last.body)
		}

		w.Header().Set("Content-Type", "application/json")

		switch r.Method {
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"success":true,"data":{"id":"9","description":"new"},"message":"created"}`)
		case http.MethodPatch:
			_, _ = io.WriteString(w, `{"success":true,"data":{"id":"9","description":"renamed"}}`)
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	c := resource.NewClient[row](resource.NewAPI(srv.URL), "projects", resource.WithUpdateMethod(http.MethodPatch))

	created := c.Create(context.Background(), map[string]any{"description": "new"})
	require.True(t, created.Success)
	require.NotNil(t, created.Data)
	assert.Equal(t, "9", created.Data.RecordID())
	assert.Equal(t, "created", created.Message)
	assert.Equal(t, call{method: http.MethodPost, path: "/projects", body: map[string]any{"description": "new"}}, last)

	updated := c.Update(context.Background(), "9", map[string]any{"description": "renamed"})
	require.True(t, updated.Success)
	assert.Equal(t, "renamed", updated.Data.Description)
	assert.Equal(t, http.MethodPatch, last.method)
	assert.Equal(t, "/projects/9", last.path)

	deleted := c.Delete(context.Background(), "9")
	assert.True(t, deleted.Success)
	assert.Nil(t, deleted.Data)
	assert.Equal(t, http.MethodDelete, last.method)
}

func TestClient_Get(t *testing.T) {
	t.Run("DataWrapper", func(t *testing.T) {
		api := serve(t, http.StatusOK, "application/json", `{"success":true,"data":{"_id":42,"description":"detail"}}`)

		got := resource.NewClient[row](api, "invoices").Get(context.Background(), "42")
		require.True(t, got.Success)
		assert.Equal(t, "42", got.Data.RecordID())
		assert.Equal(t, "detail", got.Data.Description)
	})

	t.Run("NotFound", func(t *testing.T) {
		api := serve(t, http.StatusNotFound, "application/json", `{"success":false,"message":"invoice not found"}`)

		got := resource.NewClient[row](api, "invoices").Get(context.Background(), "42")
		assert.False(t, got.Success)
		assert.Nil(t, got.Data)
		assert.Equal(t, "invoice not found", got.Error)
	})

	t.Run("Latin1Body", func(t *testing.T) {
		body := "{\"id\":\"1\",\"description\":\"Projecto Sa\xfade\"}"
		api := serve(t, http.StatusOK, "application/json; charset=iso-8859-1", body)

		got := resource.NewClient[row](api, "projects").Get(context.Background(), "1")
		require.True(t, got.Success)
		assert.Equal(t, "Projecto Saúde", got.Data.Description)
	})
}

func TestGetOne(t *testing.T) {
	type summary struct {
		TotalRevenue float64 `json:"total_revenue"`
	}

	api := serve(t, http.StatusOK, "application/json", `{"success":true,"data":{"total_revenue":1200.5}}`)

	got := resource.GetOne[summary](context.Background(), api, "accounting/summary")
	require.True(t, got.Success)
	assert.InEpsilon(t, 1200.5, got.Data.TotalRevenue, 0.0001)
}

func TestNewAPI_TimeoutLeavesClientUntouched(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(500 * time.Millisecond):
		}

		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	shared := &http.Client{}

	api := resource.NewAPI(srv.URL,
		resource.WithHTTPClient(shared),
		resource.WithTimeout(20*time.Millisecond),
	)

	assert.Zero(t, shared.Timeout)

	res := resource.NewClient[row](api, "transactions").List(context.Background(), resource.ListParams{})
	assert.False(t, res.Success)
	assert.True(t, strings.HasPrefix(res.Error, "Network error:"), res.Error)

	resource.NewAPI(srv.URL, resource.WithHTTPClient(http.DefaultClient), resource.WithTimeout(time.Second))
	assert.Zero(t, http.DefaultClient.Timeout)
}
